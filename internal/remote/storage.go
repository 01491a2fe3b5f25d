package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// File represents an uploaded file in the storage bucket
type File struct {
	ID   string `json:"$id"`
	Name string `json:"name"`
}

// UploadFile uploads a single file to the storage bucket and returns the
// stored file with its vendor-assigned identifier
func (c *Client) UploadFile(ctx context.Context, name string, reader io.Reader) (*File, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("fileId", "unique()"); err != nil {
		return nil, fmt.Errorf("failed to write file id field: %w", err)
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, reader); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	path := "/storage/buckets/" + c.bucketID + "/files"
	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	var file File
	if err := c.decodeResponse(resp, &file); err != nil {
		return nil, fmt.Errorf("failed to upload file %s: %w", name, err)
	}
	return &file, nil
}

// ViewURL builds the deterministic public view URL for a stored file
func (c *Client) ViewURL(fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?project=%s",
		c.endpoint, c.bucketID, fileID, c.projectID)
}
