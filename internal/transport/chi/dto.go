package chi

import "time"

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned in ErrorResponse.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeModelNotReady    ErrorResponseCode = "model_not_ready"
	ErrorResponseCodeInvalidCorpus    ErrorResponseCode = "invalid_corpus"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Details []string          `json:"details,omitempty"`
}

// RecommendationItem is one ranked catalog item.
type RecommendationItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Score float64 `json:"score"`
}

// RecommendationsResponse is the body of GET /recommendations.
type RecommendationsResponse struct {
	Query string               `json:"query"`
	TopK  int                  `json:"top_k"`
	Items []RecommendationItem `json:"items"`
}

// CorpusResponse describes the active corpus model.
type CorpusResponse struct {
	Items           int            `json:"items"`
	VocabularySize  int            `json:"vocabulary_size"`
	MaxFeatures     int            `json:"max_features"`
	Fingerprint     string         `json:"fingerprint"`
	BuiltAt         time.Time      `json:"built_at"`
	BuildDurationMs int64          `json:"build_duration_ms"`
	MalformedFields map[string]int `json:"malformed_fields"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}
