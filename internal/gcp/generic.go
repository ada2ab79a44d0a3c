package gcp

import (
	"context"
	"fmt"
)

// EnsureFuncs defines the functions required for generic convergence of a
// single resource.
type EnsureFuncs[T any] struct {
	// Get retrieves the resource by name, (nil, nil) when absent.
	Get func(ctx context.Context, name string) (*T, error)
	// Create creates the resource.
	Create func(ctx context.Context) (*T, error)
}

// EnsureResource converges a resource on existence: an already-present
// resource is adopted as-is, an absent one is created. This is what makes
// re-running the sequencer after a partial failure safe.
func EnsureResource[T any](ctx context.Context, name string, funcs EnsureFuncs[T]) (*T, bool, error) {
	resource, err := funcs.Get(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get resource %s: %w", name, err)
	}

	if resource != nil {
		return resource, false, nil
	}

	resource, err = funcs.Create(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create resource %s: %w", name, err)
	}

	return resource, true, nil
}
