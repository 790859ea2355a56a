package matchmaker

import "github.com/dealbridge/matchmaker/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDealNotFound           = domain.ErrDealNotFound
	ErrContactNotFound        = domain.ErrContactNotFound
	ErrCriteriaNotFound       = domain.ErrCriteriaNotFound
	ErrEmbeddingNotFound      = domain.ErrEmbeddingNotFound
	ErrVectorDimMismatch      = domain.ErrVectorDimMismatch
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrExplainProviderError   = domain.ErrExplainProviderError
	ErrInvalidRecord          = domain.ErrInvalidRecord
)
