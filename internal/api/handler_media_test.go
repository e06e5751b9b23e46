package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func urlQueryEscape(s string) string { return url.QueryEscape(s) }

func multipartUpload(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadMedia(t *testing.T) {
	env := setupTestServer(t)
	token := env.adminToken(t)

	body, contentType := multipartUpload(t, "tiger.png", []byte("fake png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/media/gallery", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.server.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201\nbody: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	url := resp["url"]
	if !strings.Contains(url, "/media/gallery/") {
		t.Errorf("url: got %q, want a /media/gallery/ prefix", url)
	}
	if !strings.HasSuffix(url, "tiger.png") {
		t.Errorf("url: got %q, want a tiger.png suffix", url)
	}

	// The uploaded file is retrievable through the media file server.
	getReq := httptest.NewRequest(http.MethodGet, strings.TrimPrefix(url, "http://localhost:8080"), nil)
	getW := httptest.NewRecorder()
	env.server.ServeHTTP(getW, getReq)
	if getW.Code != http.StatusOK {
		t.Errorf("media fetch: got %d, want 200", getW.Code)
	}
	if got := getW.Body.String(); got != "fake png bytes" {
		t.Errorf("media body: got %q", got)
	}
}

func TestUploadMedia_RequiresAuth(t *testing.T) {
	env := setupTestServer(t)

	body, contentType := multipartUpload(t, "tiger.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/media/gallery", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.server.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", w.Code)
	}
}

func TestUploadMedia_MissingFileField(t *testing.T) {
	env := setupTestServer(t)
	token := env.adminToken(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "not a file")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/media/gallery", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.server.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400\nbody: %s", w.Code, w.Body.String())
	}
}

func TestDeleteMedia(t *testing.T) {
	env := setupTestServer(t)
	token := env.adminToken(t)

	body, contentType := multipartUpload(t, "tiger.png", []byte("fake png bytes"))
	uploadReq := httptest.NewRequest(http.MethodPost, "/v1/admin/media/gallery", body)
	uploadReq.Header.Set("Content-Type", contentType)
	uploadReq.Header.Set("Authorization", "Bearer "+token)
	uploadW := httptest.NewRecorder()
	env.server.ServeHTTP(uploadW, uploadReq)

	var resp map[string]string
	if err := json.NewDecoder(uploadW.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/media?url="+urlQueryEscape(resp["url"]), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.server.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204\nbody: %s", w.Code, w.Body.String())
	}

	// The object is gone.
	getReq := httptest.NewRequest(http.MethodGet, strings.TrimPrefix(resp["url"], "http://localhost:8080"), nil)
	getW := httptest.NewRecorder()
	env.server.ServeHTTP(getW, getReq)
	if getW.Code != http.StatusNotFound {
		t.Errorf("media fetch after delete: got %d, want 404", getW.Code)
	}
}

func TestDeleteMedia_AbsentObjectSucceeds(t *testing.T) {
	env := setupTestServer(t)
	token := env.adminToken(t)

	url := "http://localhost:8080/media/gallery/nonexistent.png"
	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/media?url="+urlQueryEscape(url), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.server.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204\nbody: %s", w.Code, w.Body.String())
	}
}

func TestDeleteMedia_ForeignURLRejected(t *testing.T) {
	env := setupTestServer(t)
	token := env.adminToken(t)

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/media?url="+urlQueryEscape("https://evil.example.com/media/x.png"), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.server.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400\nbody: %s", w.Code, w.Body.String())
	}
}
