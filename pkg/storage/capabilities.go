package storage

import "context"

// AsVisibilityAdapter returns the adapter as a VisibilityAdapter if it
// supports the visibility capability, otherwise nil.
//
// Usage:
//
//	if vis := storage.AsVisibilityAdapter(adapter); vis != nil {
//	    v, err := vis.Visibility(ctx, path)
//	} else {
//	    // Branch for backends without access hints
//	}
func AsVisibilityAdapter(a Adapter) VisibilityAdapter {
	if vis, ok := a.(VisibilityAdapter); ok {
		return vis
	}
	return nil
}

// Capabilities describes the optional capabilities of an adapter.
type Capabilities struct {
	// Visibility indicates the public/private access hint is available.
	// When true, the adapter implements VisibilityAdapter.
	Visibility bool
}

// GetCapabilities returns the optional capabilities of an adapter.
// The result is resolved once from the adapter's static type, not from
// backend state, so it is stable for the lifetime of the instance.
func GetCapabilities(a Adapter) Capabilities {
	return Capabilities{
		Visibility: AsVisibilityAdapter(a) != nil,
	}
}

// GetVisibility returns the visibility of path, or ErrNotSupported when the
// adapter lacks the capability. Convenience for callers that prefer a
// uniform error branch over an interface assertion.
func GetVisibility(ctx context.Context, a Adapter, path string) (Visibility, error) {
	vis := AsVisibilityAdapter(a)
	if vis == nil {
		return "", ErrNotSupported
	}
	return vis.Visibility(ctx, path)
}

// SetVisibility mutates the visibility of path, or returns ErrNotSupported
// when the adapter lacks the capability.
func SetVisibility(ctx context.Context, a Adapter, path string, visibility Visibility) (Entry, error) {
	vis := AsVisibilityAdapter(a)
	if vis == nil {
		return Entry{}, ErrNotSupported
	}
	return vis.SetVisibility(ctx, path, visibility)
}
