package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query represents a list query predicate understood by the document database
type Query string

// Equal filters documents where attribute equals value
func Equal(attribute string, value any) Query {
	encoded, _ := json.Marshal(value)
	return Query(fmt.Sprintf("equal(%q,%s)", attribute, encoded))
}

// OrderDesc sorts documents by attribute descending
func OrderDesc(attribute string) Query {
	return Query(fmt.Sprintf("orderDesc(%q)", attribute))
}

// OrderAsc sorts documents by attribute ascending
func OrderAsc(attribute string) Query {
	return Query(fmt.Sprintf("orderAsc(%q)", attribute))
}

// Limit caps the number of returned documents
func Limit(n int) Query {
	return Query("limit(" + strconv.Itoa(n) + ")")
}

// Offset skips the first n documents
func Offset(n int) Query {
	return Query("offset(" + strconv.Itoa(n) + ")")
}

// documentList is the wire shape of a list response
type documentList struct {
	Total     int               `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

// ListDocuments fetches all documents of a collection matching the queries
// and decodes them into out, which must be a pointer to a slice.
// Vendor system fields ($id, $createdAt) are normalized into the
// application's id/createdAt fields before decoding.
func (c *Client) ListDocuments(ctx context.Context, collection string, queries []Query, out any) error {
	path := c.collectionPath(collection) + "/documents"
	if len(queries) > 0 {
		params := url.Values{}
		for _, q := range queries {
			params.Add("queries[]", string(q))
		}
		path += "?" + params.Encode()
	}

	var list documentList
	if err := c.do(ctx, "GET", path, nil, &list); err != nil {
		return fmt.Errorf("failed to list %s documents: %w", collection, err)
	}

	normalized := make([]json.RawMessage, 0, len(list.Documents))
	for _, doc := range list.Documents {
		clean, err := normalizeDocument(doc)
		if err != nil {
			return fmt.Errorf("failed to normalize %s document: %w", collection, err)
		}
		normalized = append(normalized, clean)
	}

	merged, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("failed to merge %s documents: %w", collection, err)
	}
	if err := json.Unmarshal(merged, out); err != nil {
		return fmt.Errorf("failed to decode %s documents: %w", collection, err)
	}
	return nil
}

// CreateDocument creates a document with a vendor-assigned identifier and
// decodes the created document (with its new id and creation timestamp)
// into out when out is non-nil
func (c *Client) CreateDocument(ctx context.Context, collection string, data any, out any) error {
	body := map[string]any{
		"documentId": "unique()",
		"data":       data,
	}

	var raw json.RawMessage
	if err := c.do(ctx, "POST", c.collectionPath(collection)+"/documents", body, &raw); err != nil {
		return fmt.Errorf("failed to create %s document: %w", collection, err)
	}
	return decodeDocument(raw, out)
}

// UpdateDocument replaces the application fields of an existing document
func (c *Client) UpdateDocument(ctx context.Context, collection, documentID string, data any, out any) error {
	body := map[string]any{"data": data}

	var raw json.RawMessage
	if err := c.do(ctx, "PATCH", c.collectionPath(collection)+"/documents/"+documentID, body, &raw); err != nil {
		return fmt.Errorf("failed to update %s document %s: %w", collection, documentID, err)
	}
	return decodeDocument(raw, out)
}

// DeleteDocument removes a document
func (c *Client) DeleteDocument(ctx context.Context, collection, documentID string) error {
	if err := c.do(ctx, "DELETE", c.collectionPath(collection)+"/documents/"+documentID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete %s document %s: %w", collection, documentID, err)
	}
	return nil
}

// collectionPath builds the database path prefix for a collection
func (c *Client) collectionPath(collection string) string {
	return "/databases/" + c.databaseID + "/collections/" + collection
}

// decodeDocument normalizes a single document and decodes it into out
func decodeDocument(raw json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	clean, err := normalizeDocument(raw)
	if err != nil {
		return fmt.Errorf("failed to normalize document: %w", err)
	}
	if err := json.Unmarshal(clean, out); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// normalizeDocument maps the vendor's system fields onto application
// field names and drops the remaining vendor metadata
func normalizeDocument(raw json.RawMessage) (json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	if id, ok := doc["$id"]; ok {
		doc["id"] = id
	}
	if createdAt, ok := doc["$createdAt"]; ok {
		doc["createdAt"] = createdAt
	}
	for key := range doc {
		if strings.HasPrefix(key, "$") {
			delete(doc, key)
		}
	}

	return json.Marshal(doc)
}
