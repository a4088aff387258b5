package voicebio

import "errors"

var (
	// ErrNotInitialized is returned by Engine.Analyze before weights
	// have been loaded.
	ErrNotInitialized = errors.New("voicebio: engine not initialized")

	// ErrModelNotLoaded is returned by Predict when no weights are
	// active (never loaded, or disposed).
	ErrModelNotLoaded = errors.New("voicebio: model not loaded")

	// ErrInference is returned when the forward pass produces a
	// non-finite value.
	ErrInference = errors.New("voicebio: inference failed")

	// ErrInvalidWeights is returned when a weights artifact does not
	// match the network architecture.
	ErrInvalidWeights = errors.New("voicebio: invalid weights")
)
