package transport

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/domain/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const msgInvalidBody = "Invalid request body"

type envelope map[string]interface{}

// handlerFunc is an HTTP handler that reports failures instead of writing them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			respondError(w, r, err)
		}
	}
}

var errorResponses = []struct {
	err     error
	status  int
	message string
}{
	{model.ErrInvalidID, http.StatusBadRequest, "Invalid ID"},
	{model.ErrCouponCodeTaken, http.StatusBadRequest, "Coupon code already exists"},
	{model.ErrEmailTaken, http.StatusBadRequest, "Email is already registered"},
	{model.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{model.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{model.ErrUserHasNoOrders, http.StatusNotFound, "You have no orders"},
	{model.ErrNoOrders, http.StatusNotFound, "No orders found"},
	{model.ErrUserNotFound, http.StatusNotFound, "Invalid Id"},
	{model.ErrCouponNotFound, http.StatusNotFound, "Coupon not found"},
	{model.ErrNoCoupons, http.StatusNotFound, "No coupons found"},
	{model.ErrInvalidCoupon, http.StatusNotFound, "Invalid coupon"},
	{model.ErrCouponExpired, http.StatusNotFound, "The coupon has already expired."},
	{model.ErrCacheInvalidation, http.StatusInternalServerError, "Cache invalidation failed"},
}

func statusOf(err error) (int, string) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message
	}
	for _, e := range errorResponses {
		if errors.Is(err, e.err) {
			return e.status, e.message
		}
	}
	message := err.Error()
	if message == "" {
		message = "Internal Server Error"
	}
	return http.StatusInternalServerError, message
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusOf(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"url":    r.URL,
		}).Error("request failed")
	}
	writeJSON(w, status, envelope{"success": false, "message": message})
}

func respond(w http.ResponseWriter, status int, payload envelope) {
	payload["success"] = true
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	b, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(b); err != nil {
		log.WithField("err", err).Error("write response status")
	}
}

// decodeBody reads a JSON body. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return model.NewValidationError(msgInvalidBody)
	}
	return nil
}
