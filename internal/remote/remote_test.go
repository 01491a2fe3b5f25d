package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/islamizindagi/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient builds a client pointed at the given test server
func testClient(serverURL string) *Client {
	return NewClient(config.RemoteConfig{
		Endpoint:        serverURL,
		ProjectID:       "proj",
		DatabaseID:      "db",
		StorageBucketID: "bucket",
		AdminTeamID:     "admins",
	}, "server-key")
}

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/databases/db/collections/dars/documents", r.URL.Path)
		assert.Equal(t, "proj", r.Header.Get("X-Project-ID"))
		assert.Equal(t, "user-secret", r.Header.Get("X-Session"))
		assert.Empty(t, r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total": 2,
			"documents": [
				{"$id": "d1", "$createdAt": "2025-01-10T10:00:00Z", "$permissions": [], "title": "Intro to Fiqh"},
				{"$id": "d2", "$createdAt": "2025-01-11T10:00:00Z", "title": "Tawheed Basics"}
			]
		}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	ctx := WithSessionSecret(context.Background(), "user-secret")

	var docs []struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		CreatedAt string `json:"createdAt"`
	}
	err := client.ListDocuments(ctx, "dars", nil, &docs)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "d1", docs[0].ID)
	assert.Equal(t, "Intro to Fiqh", docs[0].Title)
	assert.Equal(t, "2025-01-10T10:00:00Z", docs[0].CreatedAt)
	assert.Equal(t, "d2", docs[1].ID)
}

func TestListDocuments_Queries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries := r.URL.Query()["queries[]"]
		require.Len(t, queries, 2)
		assert.Equal(t, `equal("userId","u1")`, queries[0])
		assert.Equal(t, `orderDesc("lastVisitedAt")`, queries[1])
		w.Write([]byte(`{"total":0,"documents":[]}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	var docs []map[string]any
	err := client.ListDocuments(context.Background(), "dars_progress", []Query{
		Equal("userId", "u1"),
		OrderDesc("lastVisitedAt"),
	}, &docs)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCreateDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		// No session in context, so the server API key is used
		assert.Equal(t, "server-key", r.Header.Get("X-API-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "unique()", body["documentId"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "Tafsir Series", data["name"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"$id": "s1", "$createdAt": "2025-02-01T09:00:00Z", "name": "Tafsir Series"}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	err := client.CreateDocument(context.Background(), "series", map[string]string{"name": "Tafsir Series"}, &created)
	require.NoError(t, err)
	assert.Equal(t, "s1", created.ID)
	assert.Equal(t, "Tafsir Series", created.Name)
}

func TestDeleteDocument_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code": 404, "type": "document_not_found", "message": "Document not found"}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	err := client.DeleteDocument(context.Background(), "dars", "missing")
	require.Error(t, err)

	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 404, svcErr.Code)
	assert.Equal(t, "Document not found", svcErr.Message)
	assert.Equal(t, 404, ErrorCode(err))
}

func TestErrorCode_NonRemoteError(t *testing.T) {
	assert.Equal(t, 0, ErrorCode(assert.AnError))
}

func TestUploadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/buckets/bucket/files", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "unique()", r.FormValue("fileId"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.pdf", header.Filename)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"$id": "f1", "name": "notes.pdf"}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	file, err := client.UploadFile(context.Background(), "notes.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "f1", file.ID)
	assert.Equal(t, "notes.pdf", file.Name)
}

func TestViewURL(t *testing.T) {
	client := testClient("https://backend.example.com/v1")
	url := client.ViewURL("f1")
	assert.Equal(t, "https://backend.example.com/v1/storage/buckets/bucket/files/f1/view?project=proj", url)
}

func TestCreateSessionAndListTeams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/account/sessions/email":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "user@example.com", body["email"])
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"$id": "sess1", "userId": "u1", "secret": "sekrit"}`))
		case "/teams":
			assert.Equal(t, "sekrit", r.Header.Get("X-Session"))
			w.Write([]byte(`{"total": 1, "teams": [{"$id": "admins", "name": "Administrators"}]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	session, err := client.CreateSession(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "sekrit", session.Secret)

	teams, err := client.ListTeams(WithSessionSecret(context.Background(), session.Secret))
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "admins", teams[0].ID)
}
