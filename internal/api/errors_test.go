package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taehan09/studio/internal/repository"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, 201, map[string]string{"hello": "world"})

	if w.Code != 201 {
		t.Errorf("status: got %d, want 201", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type: got %q", got)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body: got %v", body)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, 404, "not found")

	if w.Code != 404 {
		t.Errorf("status: got %d, want 404", w.Code)
	}

	var body errorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "not found" {
		t.Errorf("error: got %q", body.Error)
	}
}

func TestValidationError_FieldLocations(t *testing.T) {
	verr := &repository.ValidationError{Fields: []repository.FieldError{
		{Field: "title", Message: "title is required"},
		{Field: "items[1].question", Message: "question is required"},
	}}

	err := validationError(verr)
	status, ok := err.(huma.StatusError)
	if !ok {
		t.Fatalf("expected a huma status error, got %T", err)
	}
	if status.GetStatus() != 422 {
		t.Errorf("status: got %d, want 422", status.GetStatus())
	}

	model, ok := err.(*huma.ErrorModel)
	if !ok {
		t.Fatalf("expected *huma.ErrorModel, got %T", err)
	}
	if len(model.Errors) != 2 {
		t.Fatalf("details: got %d, want 2", len(model.Errors))
	}
	if model.Errors[0].Location != "body.title" {
		t.Errorf("location: got %q, want body.title", model.Errors[0].Location)
	}
}
