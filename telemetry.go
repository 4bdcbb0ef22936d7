package jpeg2000part2

import "sync"

// AllocationTelemetry is a thread-safe counter of the allocation sizes
// passed to Record. None of this module's engines call Record. It is strictly
// observational: nothing on the correctness path reads it back, and the
// zero value is a working no-op sink (Record is a no-op until Enable is
// called).
//
// This surface is a placeholder: today it only counts allocations. A port
// that wires real instrumentation should replace the counter with whatever
// sink fits (a metrics client, a log line) behind the same Record call,
// without touching callers.
type AllocationTelemetry struct {
	mu      sync.Mutex
	enabled bool
	bytes   int64
	count   int64
}

// DefaultTelemetry is a package-wide sink that callers may enable and
// record into; this module's engines do not report to it. It starts
// disabled.
var DefaultTelemetry AllocationTelemetry

// Enable turns recording on or off.
func (t *AllocationTelemetry) Enable(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

// Record adds n allocated bytes to the running total. It is a no-op when
// the sink is disabled.
func (t *AllocationTelemetry) Record(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	t.bytes += n
	t.count++
}

// Snapshot returns the current totals.
func (t *AllocationTelemetry) Snapshot() (bytes, count int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bytes, t.count
}

// Reset zeroes the running totals without changing the enabled state.
func (t *AllocationTelemetry) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bytes = 0
	t.count = 0
}
