package chi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stylematch/internal/domain"
	"github.com/kailas-cloud/stylematch/internal/domain/search/request"
	"github.com/kailas-cloud/stylematch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/stylematch/internal/logger"
	healthuc "github.com/kailas-cloud/stylematch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/stylematch/internal/usecase/recommend"
	"github.com/kailas-cloud/stylematch/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the recommendation HTTP API.
type Server struct {
	recommend     *recommenduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(recommend *recommenduc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		recommend: recommend,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		dataErrorHandler,
		sentinelHandler(domain.ErrInvalidCorpus, http.StatusUnprocessableEntity, ErrorResponseCodeInvalidCorpus),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrModelNotReady, http.StatusServiceUnavailable, ErrorResponseCodeModelNotReady),
	}
	return s
}

// Routes registers the API routes on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/recommendations", s.Recommend)
	r.Get("/corpus", s.GetCorpus)
	r.Post("/corpus/reload", s.ReloadCorpus)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Recommend handles GET /recommendations?q=<text>&top_k=<n>.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	topK := 0
	if raw := q.Get("top_k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "top_k must be an integer")
			return
		}
		topK = n
	}

	req, err := request.New(q.Get("q"), topK)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results, err := s.recommend.Recommend(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]RecommendationItem, len(results))
	for i := range results {
		items[i] = recommendationToDTO(&results[i])
	}
	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Query: req.Query(),
		TopK:  req.TopK(),
		Items: items,
	})
}

// GetCorpus handles GET /corpus.
func (s *Server) GetCorpus(w http.ResponseWriter, r *http.Request) {
	stats, err := s.recommend.Stats()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, corpusToDTO(&stats))
}

// ReloadCorpus handles POST /corpus/reload. On failure the previous model stays active.
func (s *Server) ReloadCorpus(w http.ResponseWriter, r *http.Request) {
	stats, err := s.recommend.Load(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, corpusToDTO(&stats))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.String(),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidCorpus,
		domain.ErrInvalidRequest,
		domain.ErrModelNotReady,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// dataErrorHandler reports corpus problems with their offending columns or records.
func dataErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	var de *domain.DataError
	if !errors.As(err, &de) {
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Code:    ErrorResponseCodeInvalidCorpus,
		Message: msg + ": " + de.Reason,
		Details: de.Fields,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContext(r.Context(), s.logger)
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func recommendationToDTO(r *result.Result) RecommendationItem {
	return RecommendationItem{
		ID:    r.ID(),
		Name:  r.Name(),
		Image: r.Image(),
		Score: r.Score(),
	}
}

func corpusToDTO(s *recommenduc.Stats) CorpusResponse {
	malformed := s.MalformedFields
	if malformed == nil {
		malformed = map[string]int{}
	}
	return CorpusResponse{
		Items:           s.Items,
		VocabularySize:  s.VocabularySize,
		MaxFeatures:     s.MaxFeatures,
		Fingerprint:     s.Fingerprint,
		BuiltAt:         s.BuiltAt,
		BuildDurationMs: s.BuildDuration.Milliseconds(),
		MalformedFields: malformed,
	}
}
