package backend

import (
	"context"

	"bankreport/internal/engine"
	"bankreport/internal/services"
	"bankreport/internal/sources"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the wired components and a cleanup function
type BackendResult struct {
	Reader    sources.TransactionReader
	Engine    engine.Engine
	Publisher services.Publisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates the reader, engine and optional publisher for a run
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}
