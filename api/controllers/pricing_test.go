package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradehub/marketplace-backend/api/middleware"
	"github.com/tradehub/marketplace-backend/internal/pricing"
	"github.com/tradehub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/tradehub/marketplace-backend/pkg/errors"
	"github.com/tradehub/marketplace-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubPricingService struct {
	calculateReq pricing.CalculationRequest
	bulkReq      pricing.BulkCalculationRequest
	infoID       uuid.UUID
	err          error
}

func (s *stubPricingService) Calculate(ctx context.Context, req pricing.CalculationRequest) (*pricing.CalculationResult, error) {
	s.calculateReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &pricing.CalculationResult{
		ProductID:   req.ProductID,
		ProductName: "Widget",
		PaymentType: req.PaymentType,
		Breakdown:   pricing.PriceBreakdown{FinalPrice: decimal.RequireFromString("8502.41")},
	}, nil
}

func (s *stubPricingService) CalculateBulk(ctx context.Context, req pricing.BulkCalculationRequest) ([]pricing.CalculationResult, error) {
	s.bulkReq = req
	if s.err != nil {
		return nil, s.err
	}
	results := make([]pricing.CalculationResult, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		results = append(results, pricing.CalculationResult{ProductID: id})
	}
	return results, nil
}

func (s *stubPricingService) ProductPriceInfo(ctx context.Context, productID uuid.UUID) (*pricing.ProductPriceInfo, error) {
	s.infoID = productID
	if s.err != nil {
		return nil, s.err
	}
	return &pricing.ProductPriceInfo{ProductID: productID, ProductName: "Widget", AvailableDiscounts: []pricing.AvailableDiscount{}}, nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
	return body
}

func TestCalculatePrice(t *testing.T) {
	logg := testLogger()
	productID := uuid.New()
	tokenBuyer := uuid.New()

	serve := func(svc pricing.Service, ctx context.Context, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/price-calculation/calculate", strings.NewReader(body)).WithContext(ctx)
		rec := httptest.NewRecorder()
		CalculatePrice(svc, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("success uses token buyer", func(t *testing.T) {
		stub := &stubPricingService{}
		ctx := middleware.WithBuyerID(context.Background(), tokenBuyer.String())
		rec := serve(stub, ctx, `{"product_id":"`+productID.String()+`","quantity":10,"payment_type":"credit"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.calculateReq.BuyerID == nil || *stub.calculateReq.BuyerID != tokenBuyer {
			t.Fatalf("expected token buyer to be used, got %v", stub.calculateReq.BuyerID)
		}
		if stub.calculateReq.PaymentType != enums.PaymentTypeCredit {
			t.Fatalf("expected CREDIT, got %s", stub.calculateReq.PaymentType)
		}
		if stub.calculateReq.CategoryID != nil {
			t.Fatalf("expected no category")
		}
		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		breakdown := data["breakdown"].(map[string]any)
		if breakdown["final_price"] != "8502.41" {
			t.Fatalf("unexpected final price %v", breakdown["final_price"])
		}
	})

	t.Run("body buyer wins over token", func(t *testing.T) {
		stub := &stubPricingService{}
		bodyBuyer := uuid.New()
		categoryID := uuid.New()
		ctx := middleware.WithBuyerID(context.Background(), tokenBuyer.String())
		rec := serve(stub, ctx, `{"product_id":"`+productID.String()+`","quantity":2,"payment_type":"CASH","buyer_id":"`+bodyBuyer.String()+`","category_id":"`+categoryID.String()+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if *stub.calculateReq.BuyerID != bodyBuyer {
			t.Fatalf("expected body buyer, got %s", stub.calculateReq.BuyerID)
		}
		if *stub.calculateReq.CategoryID != categoryID {
			t.Fatalf("expected category %s, got %s", categoryID, stub.calculateReq.CategoryID)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		rec := serve(&stubPricingService{}, context.Background(), `{"product_id":"nope","quantity":0,"payment_type":"BARTER"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		errBody := decodeEnvelope(t, rec)["error"].(map[string]any)
		if errBody["code"] != string(pkgerrors.CodeValidation) {
			t.Fatalf("unexpected code %v", errBody["code"])
		}
	})

	t.Run("minimum order rejection", func(t *testing.T) {
		stub := &stubPricingService{err: pkgerrors.New(pkgerrors.CodeValidation, "Minimum order quantity is 10 units")}
		rec := serve(stub, context.Background(), `{"product_id":"`+productID.String()+`","quantity":3,"payment_type":"CASH"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		errBody := decodeEnvelope(t, rec)["error"].(map[string]any)
		if errBody["message"] != "Minimum order quantity is 10 units" {
			t.Fatalf("unexpected message %v", errBody["message"])
		}
	})

	t.Run("product not found", func(t *testing.T) {
		stub := &stubPricingService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		rec := serve(stub, context.Background(), `{"product_id":"`+productID.String()+`","quantity":3,"payment_type":"CASH"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("nil service", func(t *testing.T) {
		rec := serve(nil, context.Background(), `{}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestCalculateBulkPrice(t *testing.T) {
	logg := testLogger()
	first, second := uuid.New(), uuid.New()

	serve := func(svc pricing.Service, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/price-calculation/calculate-bulk", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CalculateBulkPrice(svc, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("success keeps order", func(t *testing.T) {
		stub := &stubPricingService{}
		rec := serve(stub, `{"product_ids":["`+first.String()+`","`+second.String()+`"],"quantities":[1,2],"payment_type":"CASH"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(stub.bulkReq.ProductIDs) != 2 || stub.bulkReq.ProductIDs[0] != first || stub.bulkReq.ProductIDs[1] != second {
			t.Fatalf("unexpected product ids %v", stub.bulkReq.ProductIDs)
		}
		if stub.bulkReq.BuyerID != nil {
			t.Fatalf("expected no buyer without token or body")
		}
		data := decodeEnvelope(t, rec)["data"].([]any)
		if len(data) != 2 {
			t.Fatalf("expected 2 results, got %d", len(data))
		}
	})

	t.Run("mismatch is passed to the engine", func(t *testing.T) {
		stub := &stubPricingService{err: pkgerrors.New(pkgerrors.CodeValidation, "product_ids and quantities must have the same length")}
		rec := serve(stub, `{"product_ids":["`+first.String()+`"],"quantities":[],"payment_type":"CASH"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if len(stub.bulkReq.Quantities) != 0 || len(stub.bulkReq.ProductIDs) != 1 {
			t.Fatalf("unexpected forwarded request %+v", stub.bulkReq)
		}
	})

	t.Run("invalid product id", func(t *testing.T) {
		stub := &stubPricingService{}
		rec := serve(stub, `{"product_ids":["bad"],"quantities":[1],"payment_type":"CASH"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.bulkReq.ProductIDs != nil {
			t.Fatalf("service should not be called")
		}
	})
}

func TestProductPriceInfo(t *testing.T) {
	logg := testLogger()
	productID := uuid.New()

	serve := func(svc pricing.Service, param string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/price-calculation/product/"+param+"/info", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("productId", param)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		ProductPriceInfo(svc, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		stub := &stubPricingService{}
		rec := serve(stub, productID.String())
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.infoID != productID {
			t.Fatalf("expected %s, got %s", productID, stub.infoID)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := serve(&stubPricingService{}, "not-a-uuid")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("dependency failure", func(t *testing.T) {
		stub := &stubPricingService{err: pkgerrors.Wrap(pkgerrors.CodeDependency, io.ErrUnexpectedEOF, "load product")}
		rec := serve(stub, productID.String())
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}
