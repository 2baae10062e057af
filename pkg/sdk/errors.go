package stylematch

import "github.com/kailas-cloud/stylematch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidCorpus  = domain.ErrInvalidCorpus
	ErrModelNotReady  = domain.ErrModelNotReady
	ErrInvalidRequest = domain.ErrInvalidRequest
)

// DataError details which records or columns made a corpus invalid.
// Use errors.As() to extract it; it also matches ErrInvalidCorpus.
type DataError = domain.DataError
