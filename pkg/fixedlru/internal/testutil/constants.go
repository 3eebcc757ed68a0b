package testutil

// DefaultMaxFuzzOperations is the default maximum number of operations
// to run in a single fuzz iteration or deterministic behavior test.
//
// 300 operations over a key space a few times larger than the capacity are
// enough to fill, evict, drain and refill small caches several times.
const DefaultMaxFuzzOperations = 300
