// Package voicebio derives health indices from recorded speech.
//
// # Architecture
//
// The engine processes one recording through five stages:
//
//  1. wave.Decode: recorded WAV → normalized 16 kHz mono waveform
//  2. acoustic.Analyze: waveform → short-time acoustic descriptors
//  3. BuildVector: descriptors → fixed 128-length feature vector
//  4. Backend.Predict: vector → five calibrated risk scores
//  5. synthesize: scores + descriptors → immutable Result
//
// Data flows strictly forward; no stage reaches back upstream. All
// per-call state is created and discarded within one Analyze call.
//
// # Model Lifecycle
//
// Weights are loaded once and held immutably. Load is idempotent and
// single-flight: concurrent callers share one in-flight load. A later
// load atomically replaces the active weights; Dispose frees them.
// Predict before any successful load fails with ErrModelNotLoaded.
//
// # Scope
//
// The engine performs inference only. The bundled weight initializer
// produces a seeded placeholder artifact, not a trained model: scores
// have no validated predictive value until weights trained on labeled
// clinical data are supplied. Results are acoustic proxies, not
// physiological measurements.
package voicebio
