package md2docx

import "runtime"

const (
	// MinPoolSize is the smallest worker count.
	MinPoolSize = 1

	// MaxPoolSize bounds automatic and validated worker counts. Every
	// worker holds a whole package in memory while it renders.
	MaxPoolSize = 8
)

// ResolvePoolSize returns how many workers should convert jobs files.
// A positive workers value is taken as given; otherwise half of GOMAXPROCS
// is used, clamped to [MinPoolSize, MaxPoolSize]. The result never exceeds
// jobs when jobs is positive, so a single file gets a single worker.
func ResolvePoolSize(workers, jobs int) int {
	n := workers
	if n <= 0 {
		// GOMAXPROCS already reflects container CPU quotas (automaxprocs).
		n = min(MaxPoolSize, max(MinPoolSize, runtime.GOMAXPROCS(0)/2))
	}
	if jobs > 0 {
		n = min(n, jobs)
	}
	return n
}
