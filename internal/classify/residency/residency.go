// Package residency implements the classification engine's C2 data
// residency layer: placing host buffers into the form kernels consume,
// under one of two interchangeable disciplines.
package residency

import "fmt"

// Mode selects how a Handle's backing memory relates to the caller's buffer.
type Mode int

const (
	// Borrowed wraps the caller's buffer directly; no copy is made.
	Borrowed Mode = iota
	// Owned copies the caller's buffer into a new allocation.
	Owned
)

// Handle is the uniform access object kernels dereference, regardless of
// which Mode produced it.
type Handle[T any] struct {
	data     []T
	mode     Mode
	released bool
}

// Stage returns a ready-to-use handle over host. In Borrowed mode the
// returned handle aliases host directly; in Owned mode host is copied into
// a new backing slice first.
func Stage[T any](host []T, mode Mode) (*Handle[T], error) {
	switch mode {
	case Owned:
		buf := make([]T, len(host))
		copy(buf, host)
		return &Handle[T]{data: buf, mode: mode}, nil
	case Borrowed:
		return &Handle[T]{data: host, mode: mode}, nil
	default:
		return nil, fmt.Errorf("residency: unknown mode %d", mode)
	}
}

// Data exposes the handle's backing slice. Kernels are expected to use this
// directly rather than re-deriving addressing; the slice is shared memory
// owned by the handle until Release.
func (h *Handle[T]) Data() []T {
	return h.data
}

// Retrieve copies the handle's current contents back into host. In Borrowed
// mode host already aliases the same memory the kernel wrote, so this is a
// no-op guard rather than a real copy; in Owned mode it copies back.
func (h *Handle[T]) Retrieve(host []T) error {
	if h.released {
		return fmt.Errorf("residency: retrieve from released handle")
	}
	if h.mode == Owned {
		n := copy(host, h.data)
		if n < len(h.data) {
			return fmt.Errorf("residency: host buffer too small for retrieve")
		}
	}
	return nil
}

// Release idempotently frees the handle. In Owned mode it drops the
// engine-owned backing slice; in Borrowed mode there is nothing to free
// since the memory belongs to the caller.
func (h *Handle[T]) Release() {
	if h.released {
		return
	}
	h.released = true
	if h.mode == Owned {
		h.data = nil
	}
}
