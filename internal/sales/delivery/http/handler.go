package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	catalogdomain "github.com/tiendita/ventas/internal/catalog/domain"
	"github.com/tiendita/ventas/internal/sales/domain"
	"github.com/tiendita/ventas/internal/sales/usecase/command"
	"github.com/tiendita/ventas/internal/sales/usecase/query"
	"github.com/tiendita/ventas/kafka"
	"github.com/tiendita/ventas/pkg/apperrors"
	"github.com/tiendita/ventas/pkg/logger"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_requests_total",
			Help: "Total number of requests to sales endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sales_request_duration_seconds",
			Help:    "Duration of sales requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	salesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_recorded_total",
			Help: "Total number of sales appended to the ledger",
		},
	)

	stockConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_stock_conflicts_total",
			Help: "Total number of sales rejected for insufficient stock",
		},
	)
)

// SaleHandler handles HTTP requests for the sales ledger
type SaleHandler struct {
	recordHandler *command.RecordSaleHandler
	listHandler   *query.ListSalesHandler
	publisher     *kafka.Publisher
}

// NewSaleHandler creates a new sale handler. publisher may be nil, in which
// case no events are emitted.
func NewSaleHandler(products catalogdomain.ProductRepository, sales domain.SaleRepository, publisher *kafka.Publisher) *SaleHandler {
	return &SaleHandler{
		recordHandler: command.NewRecordSaleHandler(products, sales),
		listHandler:   query.NewListSalesHandler(sales),
		publisher:     publisher,
	}
}

// RegisterRoutes mounts the sales endpoints on the router.
func (h *SaleHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/venta", h.metricsMiddleware("/venta", h.RecordSale)).Methods("POST")
	router.HandleFunc("/ventas", h.metricsMiddleware("/ventas", h.ListSales)).Methods("GET")
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *SaleHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// RecordSale handles POST /venta
func (h *SaleHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID *string `json:"userId"`
		Items  []struct {
			ProductID int64 `json:"productId"`
			Quantity  int   `json:"quantity"`
		} `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid request body"))
		return
	}

	cmd := command.RecordSaleCommand{UserID: req.UserID}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, command.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	sale, err := h.recordHandler.Handle(r.Context(), cmd)
	if err != nil {
		var conflict *apperrors.ConflictError
		if errors.As(err, &conflict) {
			stockConflicts.Inc()
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to record sale")
		respondError(w, err)
		return
	}

	salesRecorded.Inc()

	logger.Info(r.Context()).
		Str("sale_id", sale.ID).
		Float64("total", sale.Total).
		Int("items", len(sale.Items)).
		Msg("Sale recorded")

	// Fire and forget: a publishing failure never fails the sale.
	if err := h.publisher.PublishSaleRecorded(r.Context(), kafka.SaleRecordedEvent{
		SaleID:    sale.ID,
		UserID:    sale.UserID,
		Total:     sale.Total,
		ItemCount: len(sale.Items),
	}); err != nil {
		logger.Warn(r.Context()).Err(err).Str("sale_id", sale.ID).Msg("Failed to publish sale event")
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "sale recorded",
		"sale":    sale,
	})
}

// ListSales handles GET /ventas
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.listHandler.Handle(r.Context(), query.ListSalesQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list sales")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sales)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		conflictErr   *apperrors.ConflictError
		storageErr    *apperrors.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		respondJSON(w, http.StatusNotFound, map[string]interface{}{"error": notFoundErr.Message})
	case errors.As(err, &conflictErr):
		respondJSON(w, http.StatusConflict, map[string]interface{}{
			"error": conflictErr.Error(),
			"detail": map[string]interface{}{
				"productId": conflictErr.ProductID,
				"available": conflictErr.Available,
				"requested": conflictErr.Requested,
			},
		})
	case errors.As(err, &storageErr):
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":  "storage failure",
			"detail": storageErr.Error(),
		})
	default:
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal error"})
	}
}
