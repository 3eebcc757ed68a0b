// Package testutil provides test-only infrastructure for fixedlru behavior
// and fuzz testing.
//
// It includes a deterministic byte stream, an operation decoder, and a
// model-vs-real harness that applies every operation to both the reference
// model and the real cache and compares the results.
package testutil
