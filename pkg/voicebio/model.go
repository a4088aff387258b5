package voicebio

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Model owns the inference lifecycle around a Backend: single-flight
// artifact loading, atomic weight replacement, and disposal.
//
// Load and LoadFile are idempotent: reloading the same weights leaves
// the model in the same state. Concurrent LoadFile calls for one path
// converge on a single read-decode-install; none observe a partial
// load. Predict calls running during a reload see either the old or
// the new weights, never a mix.
type Model struct {
	backend Backend
	group   singleflight.Group
	loaded  atomic.Bool
}

// NewModel wraps a backend with lifecycle management. A nil backend
// selects the built-in net backend.
func NewModel(b Backend) *Model {
	if b == nil {
		b = NewNetBackend()
	}
	return &Model{backend: b}
}

// Load validates and installs weights directly. Single-flight
// convergence applies to LoadFile only; concurrent direct Loads each
// install their own set, with the atomic swap in the backend keeping
// every install complete and ordered.
func (m *Model) Load(w *Weights) error {
	if err := m.backend.Load(w); err != nil {
		return err
	}
	m.loaded.Store(true)
	return nil
}

// LoadFile reads, decodes, and installs a weights artifact.
// Concurrent calls for the same path share one in-flight load.
func (m *Model) LoadFile(path string) error {
	_, err, _ := m.group.Do(path, func() (any, error) {
		w, err := ReadWeightsFile(path)
		if err != nil {
			return nil, err
		}
		return nil, m.Load(w)
	})
	return err
}

// Predict runs the forward pass against the active weights.
func (m *Model) Predict(vec Vector) (RawPredictions, error) {
	return m.backend.Predict(vec)
}

// Loaded reports whether a successful load has occurred and the model
// has not been disposed since.
func (m *Model) Loaded() bool {
	return m.loaded.Load()
}

// Dispose releases the active weights. A later Load brings the model
// back to the ready state.
func (m *Model) Dispose() error {
	m.loaded.Store(false)
	return m.backend.Close()
}
