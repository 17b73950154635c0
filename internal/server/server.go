package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bunchesapp/bunches-go/internal/extract"
	"github.com/bunchesapp/bunches-go/internal/grocery"
	"github.com/bunchesapp/bunches-go/internal/handler"
	"github.com/bunchesapp/bunches-go/internal/logger"
	"github.com/bunchesapp/bunches-go/internal/metrics"
	"github.com/bunchesapp/bunches-go/internal/recipe"
	"github.com/bunchesapp/bunches-go/internal/sse"
	"github.com/bunchesapp/bunches-go/internal/storage"
	"github.com/bunchesapp/bunches-go/internal/undo"
)

type Server struct {
	httpServer *http.Server
	store      storage.Store
	recipes    recipe.Store
	groceries  grocery.Store
	undoStack  *undo.Stack
	extractor  extract.Service
}

// NewServer creates a new Server instance. hub may be nil to disable the
// event stream.
func NewServer(port int, apiKey string, trustedProxies []string, store storage.Store, recipes recipe.Store, groceries grocery.Store, undoStack *undo.Stack, extractor extract.Service, hub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Recipe routes
		recipeHandler := handler.NewRecipeHandler(recipes, extractor)
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeHandler.HandleListRecipes)
			r.Post("/", recipeHandler.HandleSaveRecipe)
			r.Post("/extract", recipeHandler.HandleExtractRecipe)
			r.Post("/bulk-delete", recipeHandler.HandleBulkDelete)
			r.Post("/empty-trash", recipeHandler.HandleEmptyTrash)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", recipeHandler.HandleUpdateRecipe)
				r.Delete("/", recipeHandler.HandlePermanentlyDelete)
				r.Post("/delete", recipeHandler.HandleDeleteRecipe)
				r.Post("/restore", recipeHandler.HandleRestoreRecipe)
				r.Post("/favorite", recipeHandler.HandleToggleFavorite)
				r.Post("/move", recipeHandler.HandleMoveRecipe)
			})
		})

		// Folder routes
		folderHandler := handler.NewFolderHandler(recipes)
		r.Route("/folders", func(r chi.Router) {
			r.Get("/", folderHandler.HandleListFolders)
			r.Post("/", folderHandler.HandleAddFolder)
			r.Post("/rename", folderHandler.HandleRenameFolder)
			r.Post("/delete", folderHandler.HandleDeleteFolder)
		})

		// Grocery list routes
		groceryHandler := handler.NewGroceryHandler(groceries, recipes, undoStack)
		r.Route("/grocery", func(r chi.Router) {
			r.Get("/", groceryHandler.HandleGetGrocery)
			r.Post("/items", groceryHandler.HandleAddItems)
			r.Post("/items/{id}/toggle", groceryHandler.HandleToggleItem)
			r.Delete("/items/{id}", groceryHandler.HandleRemoveItem)
			r.Post("/clear-checked", groceryHandler.HandleClearChecked)
			r.Post("/clear", groceryHandler.HandleClearAll)
		})

		// Undo routes
		undoHandler := handler.NewUndoHandler(undoStack)
		r.Route("/undo", func(r chi.Router) {
			r.Get("/", undoHandler.HandleGetState)
			r.Post("/", undoHandler.HandlePerformUndo)
		})

		// Share code routes
		shareHandler := handler.NewShareHandler(recipes, extractor)
		r.Route("/share", func(r chi.Router) {
			r.Post("/export", shareHandler.HandleExport)
			r.Post("/import", shareHandler.HandleImport)
		})

		// Live event stream
		if hub != nil {
			r.Get("/events", sse.Handler(hub))
		}
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		store:     store,
		recipes:   recipes,
		groceries: groceries,
		undoStack: undoStack,
		extractor: extractor,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps streaming responses working through the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
