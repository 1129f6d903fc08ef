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

	"github.com/tiendita/ventas/internal/catalog/domain"
	"github.com/tiendita/ventas/internal/catalog/usecase/command"
	"github.com/tiendita/ventas/internal/catalog/usecase/query"
	"github.com/tiendita/ventas/pkg/apperrors"
	"github.com/tiendita/ventas/pkg/logger"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of requests to catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_total_products",
			Help: "Total number of products in the catalog, active or not",
		},
	)
)

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	createHandler     *command.CreateProductHandler
	updateHandler     *command.UpdateProductHandler
	deactivateHandler *command.DeactivateProductHandler
	listHandler       *query.ListProductsHandler

	repo      domain.ProductRepository
	jwtSecret string
}

// NewProductHandler creates a new product handler. An empty jwtSecret leaves
// the mutation endpoints unguarded.
func NewProductHandler(repo domain.ProductRepository, jwtSecret string) *ProductHandler {
	return &ProductHandler{
		createHandler:     command.NewCreateProductHandler(repo),
		updateHandler:     command.NewUpdateProductHandler(repo),
		deactivateHandler: command.NewDeactivateProductHandler(repo),
		listHandler:       query.NewListProductsHandler(repo),
		repo:              repo,
		jwtSecret:         jwtSecret,
	}
}

// RegisterRoutes mounts the catalog endpoints on the router.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	admin := AdminMiddleware(h.jwtSecret)

	router.HandleFunc("/productos", h.metricsMiddleware("/productos", h.ListProducts)).Methods("GET")
	router.HandleFunc("/producto", h.metricsMiddleware("/producto", admin(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/producto", h.metricsMiddleware("/producto", admin(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/producto", h.metricsMiddleware("/producto", admin(h.DeactivateProduct))).Methods("DELETE")
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
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// ListProducts handles GET /productos
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /producto
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Stock int     `json:"stock"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid request body"))
		return
	}

	cmd := command.CreateProductCommand{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondError(w, err)
		return
	}

	h.updateProductsMetric(r)

	logger.Info(r.Context()).
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("Product created")

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "product created",
		"product": product,
	})
}

// UpdateProduct handles PUT /producto
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     int64    `json:"id"`
		Name   *string  `json:"name"`
		Price  *float64 `json:"price"`
		Stock  *int     `json:"stock"`
		Active *bool    `json:"active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid request body"))
		return
	}

	cmd := command.UpdateProductCommand{
		ID:     req.ID,
		Name:   req.Name,
		Price:  req.Price,
		Stock:  req.Stock,
		Active: req.Active,
	}

	product, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Int64("product_id", req.ID).Msg("Failed to update product")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "product updated",
		"product": product,
	})
}

// DeactivateProduct handles DELETE /producto
func (h *ProductHandler) DeactivateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid request body"))
		return
	}

	cmd := command.DeactivateProductCommand{ID: req.ID}
	if err := h.deactivateHandler.Handle(r.Context(), cmd); err != nil {
		logger.Error(r.Context()).Err(err).Int64("product_id", req.ID).Msg("Failed to deactivate product")
		respondError(w, err)
		return
	}

	logger.Info(r.Context()).Int64("product_id", req.ID).Msg("Product deactivated")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "product deactivated",
	})
}

// RegisterHealthCheck mounts /health, probing store readability.
func (h *ProductHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.repo.Count(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"error": "storage unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "ok",
		})
	}).Methods("GET")
}

// updateProductsMetric refreshes the total products gauge
func (h *ProductHandler) updateProductsMetric(r *http.Request) {
	count, err := h.repo.Count(r.Context())
	if err == nil {
		totalProducts.Set(float64(count))
	}
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
