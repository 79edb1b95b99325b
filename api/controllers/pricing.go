package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tradehub/marketplace-backend/api/middleware"
	"github.com/tradehub/marketplace-backend/api/responses"
	"github.com/tradehub/marketplace-backend/api/validators"
	"github.com/tradehub/marketplace-backend/internal/pricing"
	"github.com/tradehub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/tradehub/marketplace-backend/pkg/errors"
	"github.com/tradehub/marketplace-backend/pkg/logger"
)

// CalculatePrice prices one product for the caller's payment context.
func CalculatePrice(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload calculatePriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req, err := payload.toCalculationRequest(middleware.BuyerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Calculate(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CalculateBulkPrice prices a batch; the first failing item aborts it.
func CalculateBulkPrice(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload calculateBulkPriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req, err := payload.toBulkRequest(middleware.BuyerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results, err := svc.CalculateBulk(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, results)
	}
}

func ProductPriceInfo(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		info, err := svc.ProductPriceInfo(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, info)
	}
}

type calculatePriceRequest struct {
	ProductID   string  `json:"product_id" validate:"required,uuid"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	PaymentType string  `json:"payment_type" validate:"required,payment_type"`
	BuyerID     *string `json:"buyer_id,omitempty" validate:"omitempty,uuid"`
	CategoryID  *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
}

// Quantities are validated by the engine so errors carry the item index.
type calculateBulkPriceRequest struct {
	ProductIDs  []string `json:"product_ids" validate:"dive,uuid"`
	Quantities  []int    `json:"quantities"`
	PaymentType string   `json:"payment_type" validate:"required,payment_type"`
	BuyerID     *string  `json:"buyer_id,omitempty" validate:"omitempty,uuid"`
}

func (p calculatePriceRequest) toCalculationRequest(tokenBuyerID string) (pricing.CalculationRequest, error) {
	paymentType, err := enums.ParsePaymentType(p.PaymentType)
	if err != nil {
		return pricing.CalculationRequest{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment type")
	}
	buyerID, err := resolveBuyerID(p.BuyerID, tokenBuyerID)
	if err != nil {
		return pricing.CalculationRequest{}, err
	}
	categoryID, err := validators.ParseOptionalUUID(lo.FromPtr(p.CategoryID), "category_id")
	if err != nil {
		return pricing.CalculationRequest{}, err
	}

	return pricing.CalculationRequest{
		ProductID:   uuid.MustParse(p.ProductID),
		Quantity:    p.Quantity,
		PaymentType: paymentType,
		BuyerID:     buyerID,
		CategoryID:  categoryID,
	}, nil
}

func (p calculateBulkPriceRequest) toBulkRequest(tokenBuyerID string) (pricing.BulkCalculationRequest, error) {
	paymentType, err := enums.ParsePaymentType(p.PaymentType)
	if err != nil {
		return pricing.BulkCalculationRequest{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment type")
	}
	buyerID, err := resolveBuyerID(p.BuyerID, tokenBuyerID)
	if err != nil {
		return pricing.BulkCalculationRequest{}, err
	}

	return pricing.BulkCalculationRequest{
		ProductIDs: lo.Map(p.ProductIDs, func(id string, _ int) uuid.UUID {
			return uuid.MustParse(id)
		}),
		Quantities:  lo.Ternary(p.Quantities == nil, []int{}, p.Quantities),
		PaymentType: paymentType,
		BuyerID:     buyerID,
	}, nil
}

// resolveBuyerID prefers the body value and falls back to the token's buyer.
func resolveBuyerID(fromBody *string, fromToken string) (*uuid.UUID, error) {
	if id := lo.FromPtr(fromBody); id != "" {
		return validators.ParseOptionalUUID(id, "buyer_id")
	}
	return validators.ParseOptionalUUID(fromToken, "buyer_id")
}
