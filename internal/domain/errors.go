package domain

import "errors"

// Sentinel errors for the ingestion and question pipeline. Wrap them with
// fmt.Errorf("...: %w", err) so callers can classify with errors.Is.
var (
	// ErrEmptyDocument is returned when the uploaded text is empty or
	// whitespace-only. Never retried.
	ErrEmptyDocument = errors.New("document text is empty")

	// ErrDimensionMismatch is returned when vectors handed to the index do
	// not share the index's embedding dimension. Never retried.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexNotReady is returned by index queries before a build completed.
	ErrIndexNotReady = errors.New("index not built yet")

	// ErrNoDocument is returned when a question arrives before any document
	// has been ingested.
	ErrNoDocument = errors.New("no document ingested")

	// ErrEmbeddingService marks transient embedding-backend failures,
	// retried a bounded number of times by the service layer.
	ErrEmbeddingService = errors.New("embedding service failure")

	// ErrGenerationService marks transient generation-backend failures,
	// retried a bounded number of times by the service layer.
	ErrGenerationService = errors.New("generation service failure")
)
