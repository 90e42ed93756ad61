package transport

import "net/http"

func (h *handler) stats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"stats": stats})
	return nil
}

func (h *handler) pieCharts(w http.ResponseWriter, r *http.Request) error {
	charts, err := h.Dashboard.PieCharts(r.Context())
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"charts": charts})
	return nil
}

func (h *handler) barCharts(w http.ResponseWriter, r *http.Request) error {
	charts, err := h.Dashboard.BarCharts(r.Context())
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"charts": charts})
	return nil
}

func (h *handler) lineCharts(w http.ResponseWriter, r *http.Request) error {
	charts, err := h.Dashboard.LineCharts(r.Context())
	if err != nil {
		return err
	}
	respond(w, http.StatusOK, envelope{"charts": charts})
	return nil
}
