package documents

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() http.Handler {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadAcceptedTypes(t *testing.T) {
	router := newRouter()
	for _, name := range []string{"nid.jpg", "nid.jpeg", "photo.PNG", "certificate.pdf"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, multipartUpload(t, "file", name, []byte("content")))
		require.Equal(t, http.StatusOK, rec.Code, "file %s", name)

		var resp uploadResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "success", resp.Status)
		assert.NotEmpty(t, resp.FileID)
		assert.Equal(t, name, resp.FileName)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	router := newRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "file", "malware.exe", []byte("content")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	router := newRouter()
	rec := httptest.NewRecorder()
	big := bytes.Repeat([]byte("a"), maxUploadBytes+1)
	router.ServeHTTP(rec, multipartUpload(t, "file", "huge.pdf", big))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadMissingFileField(t *testing.T) {
	router := newRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "attachment", "nid.jpg", []byte("content")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadNotMultipart(t *testing.T) {
	router := newRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadedIDsAreUnique(t *testing.T) {
	router := newRouter()
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, multipartUpload(t, "file", "nid.jpg", []byte("content")))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp uploadResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.False(t, seen[resp.FileID])
		seen[resp.FileID] = true
	}
}
