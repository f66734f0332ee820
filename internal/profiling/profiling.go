package profiling

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Recorder accumulates wall time per named stage. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	order  []string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{totals: make(map[string]time.Duration)}
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer rec.Track("meshing.Build")()
func (r *Recorder) Track(name string) func() {
	start := time.Now()
	return func() {
		r.Add(name, time.Since(start))
	}
}

// Add records d under name.
func (r *Recorder) Add(name string, d time.Duration) {
	r.mu.Lock()
	if _, ok := r.totals[name]; !ok {
		r.order = append(r.order, name)
	}
	r.totals[name] += d
	r.mu.Unlock()
}

// Snapshot returns a copy of current totals.
func (r *Recorder) Snapshot() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Duration, len(r.totals))
	for k, v := range r.totals {
		out[k] = v
	}
	return out
}

// Stages returns stage names in the order they were first recorded.
func (r *Recorder) Stages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// TopN formats the N slowest stages.
// Example: "meshing.Build:4.2ms, world.Populate:2.1ms"
func (r *Recorder) TopN(n int) string {
	ss := r.Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur != list[j].dur {
			return list[i].dur > list[j].dur
		}
		return list[i].name < list[j].name
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, list[i].name+":"+FormatDuration(list[i].dur))
	}
	return strings.Join(parts, ", ")
}

// FormatDuration renders d in milliseconds with one decimal, e.g. "4.2ms".
func FormatDuration(d time.Duration) string {
	return formatMs(float64(d.Microseconds()) / 1000.0)
}

func formatMs(ms float64) string {
	return trimTrailingZerosF(ms) + "ms"
}

func trimTrailingZerosF(f float64) string {
	// one decimal place; drop .0 if integer
	whole := int64(f)
	frac := int64((f-float64(whole))*10.0 + 0.0001)
	if frac <= 0 {
		return itoa(whole)
	}
	return itoa(whole) + "." + itoa(frac)
}

func itoa(i int64) string {
	if i == 0 {
		return "0"
	}
	neg := false
	if i < 0 {
		neg = true
		i = -i
	}
	buf := make([]byte, 0, 20)
	for i > 0 {
		d := i % 10
		buf = append(buf, byte('0'+d))
		i /= 10
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}
