package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/tradehub/marketplace-backend/pkg/errors"
)

type sampleBody struct {
	ProductID   string   `json:"product_id" validate:"required,uuid"`
	Quantity    int      `json:"quantity" validate:"gt=0"`
	PaymentType string   `json:"payment_type" validate:"required,payment_type"`
	Tags        []string `json:"tags" validate:"omitempty,dive,uuid"`
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"6f1c1b9e-8f57-4d43-9d1b-0d9b6c5b9a11","quantity":3,"payment_type":"cash"}`))
	var body sampleBody
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Quantity != 3 {
		t.Fatalf("unexpected quantity %d", body.Quantity)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"nope","quantity":0,"payment_type":"BARTER","tags":["x"]}`))
	var body sampleBody
	err := DecodeJSONBody(req, &body)

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details type %T", typed.Details())
	}
	want := map[string]string{
		"product_id":   "must be a valid uuid",
		"quantity":     "must be greater than 0",
		"payment_type": "must be CASH or CREDIT",
		"tags[0]":      "must be a valid uuid",
	}
	for field, msg := range want {
		if details[field] != msg {
			t.Fatalf("field %s: expected %q got %q (all: %v)", field, msg, details[field], details)
		}
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"6f1c1b9e-8f57-4d43-9d1b-0d9b6c5b9a11","quantity":1,"payment_type":"CASH","discount":99}`))
	var body sampleBody
	if err := DecodeJSONBody(req, &body); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseUUIDParam(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productId", "6f1c1b9e-8f57-4d43-9d1b-0d9b6c5b9a11")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	id, err := ParseUUIDParam(req, "productId")
	if err != nil || id.String() != "6f1c1b9e-8f57-4d43-9d1b-0d9b6c5b9a11" {
		t.Fatalf("unexpected result %s %v", id, err)
	}
	if _, err := ParseUUIDParam(req, "missing"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for missing param, got %v", err)
	}
}

func TestParseOptionalUUID(t *testing.T) {
	if id, err := ParseOptionalUUID("  ", "buyer_id"); err != nil || id != nil {
		t.Fatalf("expected nil for blank input, got %v %v", id, err)
	}
	if _, err := ParseOptionalUUID("abc", "buyer_id"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
