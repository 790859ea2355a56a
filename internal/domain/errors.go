package domain

import "errors"

var (
	// ErrDealNotFound signals a missing deal record.
	ErrDealNotFound = errors.New("deal not found")
	// ErrContactNotFound signals a missing contact record.
	ErrContactNotFound = errors.New("contact not found")
	// ErrCriteriaNotFound signals a contact without buyer criteria.
	ErrCriteriaNotFound = errors.New("buyer criteria not found")
	// ErrEmbeddingNotFound signals that an entity has not been embedded yet.
	ErrEmbeddingNotFound = errors.New("embedding not found")
	// ErrVectorDimMismatch signals a vector whose length differs from the index dimension.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrExplainProviderError signals a chat completion provider failure.
	ErrExplainProviderError = errors.New("explanation provider error")
	// ErrInvalidRecord signals a malformed record in a request.
	ErrInvalidRecord = errors.New("invalid record")
)
