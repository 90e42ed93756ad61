package transport

import (
	"net/http"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"storefront/pkg/domain/service"
)

type paymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *handler) createPaymentIntent(w http.ResponseWriter, r *http.Request) error {
	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	secret, err := h.Payments.CreatePaymentIntent(r.Context(), req.Amount)
	if err != nil {
		return err
	}

	respond(w, http.StatusCreated, envelope{"client_secret": secret})
	return nil
}

type couponRequest struct {
	Coupon   string      `json:"coupon"`
	Discount interface{} `json:"discount"`
	ExpireAt string      `json:"expireAt"`
}

func (h *handler) newCoupon(w http.ResponseWriter, r *http.Request) error {
	var req couponRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	input := service.CouponInput{
		Code:     strings.TrimSpace(req.Coupon),
		Discount: cast.ToFloat64(req.Discount),
	}
	if req.ExpireAt != "" {
		expireAt, err := dateparse.ParseAny(req.ExpireAt)
		if err == nil {
			input.ExpireAt = expireAt
		}
	}

	if _, err := h.Coupons.CreateCoupon(r.Context(), input); err != nil {
		return err
	}

	respond(w, http.StatusCreated, envelope{"message": "Coupon created successfully"})
	return nil
}

func (h *handler) applyDiscount(w http.ResponseWriter, r *http.Request) error {
	discount, err := h.Coupons.ApplyDiscount(r.Context(), r.URL.Query().Get("coupon"))
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"discount": discount})
	return nil
}

func (h *handler) allCoupons(w http.ResponseWriter, r *http.Request) error {
	coupons, err := h.Coupons.AllCoupons(r.Context())
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"coupons": coupons})
	return nil
}

func (h *handler) deleteCoupon(w http.ResponseWriter, r *http.Request) error {
	if err := h.Coupons.DeleteCoupon(r.Context(), mux.Vars(r)["id"]); err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"message": "Coupon deleted successfully"})
	return nil
}
