package jsonapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jwstechnologies/hackportal/internal/app/system/jsonapi"
)

func TestDecode(t *testing.T) {
	var v struct {
		Email string `json:"email"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.c"}`))
	if err := jsonapi.Decode(httptest.NewRecorder(), req, &v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Email != "a@b.c" {
		t.Errorf("email = %q", v.Email)
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	if err := jsonapi.Decode(httptest.NewRecorder(), req, &v); err == nil {
		t.Error("malformed body accepted")
	}
}

func TestWriteAndError(t *testing.T) {
	rec := httptest.NewRecorder()
	jsonapi.Write(rec, http.StatusOK, map[string]string{"message": "hi"})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}

	rec = httptest.NewRecorder()
	jsonapi.Error(rec, http.StatusNotFound, "team not found")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "team not found") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestFieldError(t *testing.T) {
	rec := httptest.NewRecorder()
	jsonapi.FieldError(rec, "college", "college is required")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"field":"college"`) {
		t.Errorf("body = %s", body)
	}
}
