package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type samplePayload struct {
	Nombre   string `json:"nombre" validate:"required"`
	Cantidad int    `json:"cantidad" validate:"gte=0"`
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nombre":"Panela","cantidad":3}`))

	var dest samplePayload
	if err := DecodeJSONBody(req, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Nombre != "Panela" || dest.Cantidad != 3 {
		t.Fatalf("payload not decoded: %+v", dest)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nombre":"Panela","extra":true}`))

	var dest samplePayload
	err := DecodeJSONBody(req, &dest)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldsByJSONTag(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"cantidad":1}`))

	var dest samplePayload
	err := DecodeJSONBody(req, &dest)
	coded := pkgerrors.As(err)
	if coded == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := coded.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected detail map, got %T", coded.Details())
	}
	if details["nombre"] != "is required" {
		t.Fatalf("expected json-tag field name in details, got %v", details)
	}
}

func TestParseQueryIntBounds(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=200", nil)
	if _, err := ParseQueryInt(req, "limit", 25, 1, 100); pkgerrors.As(err) == nil {
		t.Fatalf("expected out-of-range error")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	got, err := ParseQueryInt(req, "limit", 25, 1, 100)
	if err != nil || got != 25 {
		t.Fatalf("expected default 25, got %d err=%v", got, err)
	}
}

func TestParseCursorParamsDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?cursor=abc", nil)
	params, err := ParseCursorParams(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Limit != pagination.DefaultLimit {
		t.Fatalf("expected default limit, got %d", params.Limit)
	}
	if params.Cursor != "abc" {
		t.Fatalf("cursor not carried through")
	}
}
