package transport

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/domain/service"
	"storefront/pkg/infrastructure/upload"
)

type Services struct {
	Products  service.ProductService
	Orders    service.OrderService
	Payments  service.PaymentService
	Coupons   service.CouponService
	Users     service.UserService
	Dashboard service.DashboardService
	Uploads   *upload.Store
}

func Router(services Services) http.Handler {
	h := &handler{Services: services}

	r := mux.NewRouter()
	r.HandleFunc("/", apiStatus).Methods(http.MethodGet)
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(services.Uploads.Dir()))),
	).Methods(http.MethodGet)

	s := r.PathPrefix("/api/v1").Subrouter()

	user := s.PathPrefix("/user").Subrouter()
	user.HandleFunc("/new", handle(h.newUser)).Methods(http.MethodPost)
	user.HandleFunc("/all", handle(h.allUsers)).Methods(http.MethodGet)
	user.HandleFunc("/{id}", handle(h.getUser)).Methods(http.MethodGet)
	user.HandleFunc("/{id}", handle(h.deleteUser)).Methods(http.MethodDelete)

	product := s.PathPrefix("/product").Subrouter()
	product.HandleFunc("/new", handle(h.createProduct)).Methods(http.MethodPost)
	product.HandleFunc("/latest", handle(h.latestProducts)).Methods(http.MethodGet)
	product.HandleFunc("/search", handle(h.searchProducts)).Methods(http.MethodGet)
	product.HandleFunc("/categories", handle(h.categories)).Methods(http.MethodGet)
	product.HandleFunc("/admin-products", handle(h.adminProducts)).Methods(http.MethodGet)
	product.HandleFunc("/{id}", handle(h.getProduct)).Methods(http.MethodGet)
	product.HandleFunc("/{id}", handle(h.updateProduct)).Methods(http.MethodPut)
	product.HandleFunc("/{id}", handle(h.deleteProduct)).Methods(http.MethodDelete)

	order := s.PathPrefix("/order").Subrouter()
	order.HandleFunc("/new", handle(h.newOrder)).Methods(http.MethodPost)
	order.HandleFunc("/my-orders", handle(h.myOrders)).Methods(http.MethodGet)
	order.HandleFunc("/all-orders", handle(h.allOrders)).Methods(http.MethodGet)
	order.HandleFunc("/{id}", handle(h.getOrder)).Methods(http.MethodGet)
	order.HandleFunc("/{id}", handle(h.processOrder)).Methods(http.MethodPut)
	order.HandleFunc("/{id}", handle(h.deleteOrder)).Methods(http.MethodDelete)

	payment := s.PathPrefix("/payment").Subrouter()
	payment.HandleFunc("/create", handle(h.createPaymentIntent)).Methods(http.MethodPost)
	payment.HandleFunc("/discount", handle(h.applyDiscount)).Methods(http.MethodGet)
	payment.HandleFunc("/coupon/new", handle(h.newCoupon)).Methods(http.MethodPost)
	payment.HandleFunc("/coupon/all", handle(h.allCoupons)).Methods(http.MethodGet)
	payment.HandleFunc("/coupon/{id}", handle(h.deleteCoupon)).Methods(http.MethodDelete)

	dashboard := s.PathPrefix("/dashboard").Subrouter()
	dashboard.HandleFunc("/stats", handle(h.stats)).Methods(http.MethodGet)
	dashboard.HandleFunc("/pie", handle(h.pieCharts)).Methods(http.MethodGet)
	dashboard.HandleFunc("/bar", handle(h.barCharts)).Methods(http.MethodGet)
	dashboard.HandleFunc("/line", handle(h.lineCharts)).Methods(http.MethodGet)

	return logMiddleware(r)
}

type handler struct {
	Services
}

func apiStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, "API is working"); err != nil {
		log.WithField("err", err).Error("write response status")
	}
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
