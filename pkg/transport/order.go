package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

type newOrderRequest struct {
	ShippingInfo   *model.ShippingInfo `json:"shippingInfo"`
	OrderItems     []model.OrderItem   `json:"orderItems"`
	User           string              `json:"user"`
	Subtotal       float64             `json:"subtotal"`
	Tax            float64             `json:"tax"`
	ShippingCharge float64             `json:"shippingCharge"`
	Discount       float64             `json:"discount"`
	Total          float64             `json:"total"`
}

func (h *handler) newOrder(w http.ResponseWriter, r *http.Request) error {
	var req newOrderRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	_, err := h.Orders.PlaceOrder(r.Context(), service.NewOrderInput{
		ShippingInfo:   req.ShippingInfo,
		Items:          req.OrderItems,
		UserID:         req.User,
		Subtotal:       req.Subtotal,
		Tax:            req.Tax,
		ShippingCharge: req.ShippingCharge,
		Discount:       req.Discount,
		Total:          req.Total,
	})
	if err != nil {
		return err
	}

	respond(w, http.StatusCreated, envelope{"message": "Order placed successfully"})
	return nil
}

func (h *handler) myOrders(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.Orders.MyOrders(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"orders": orders})
	return nil
}

func (h *handler) allOrders(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.Orders.AllOrders(r.Context())
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"orders": orders})
	return nil
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) error {
	order, err := h.Orders.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"order": order})
	return nil
}

func (h *handler) processOrder(w http.ResponseWriter, r *http.Request) error {
	if _, err := h.Orders.ProcessOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"message": "Order processed successfully"})
	return nil
}

func (h *handler) deleteOrder(w http.ResponseWriter, r *http.Request) error {
	if err := h.Orders.DeleteOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"message": "Order deleted successfully"})
	return nil
}
