package profiling

import (
	"sync"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	r := NewRecorder()
	stop := r.Track("stage")
	time.Sleep(time.Millisecond)
	stop()
	r.Add("stage", 5*time.Millisecond)

	got := r.Snapshot()["stage"]
	if got < 6*time.Millisecond {
		t.Errorf("stage total = %v, want at least 6ms", got)
	}
}

func TestStagesKeepFirstSeenOrder(t *testing.T) {
	r := NewRecorder()
	r.Add("b", time.Millisecond)
	r.Add("a", time.Millisecond)
	r.Add("b", time.Millisecond)

	got := r.Stages()
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("Stages() = %v, want [b a]", got)
	}
}

func TestTopN(t *testing.T) {
	r := NewRecorder()
	r.Add("fast", 1500*time.Microsecond)
	r.Add("slow", 4200*time.Microsecond)
	r.Add("mid", 2*time.Millisecond)

	if got, want := r.TopN(2), "slow:4.2ms, mid:2ms"; got != want {
		t.Errorf("TopN(2) = %q, want %q", got, want)
	}
	if got, want := r.TopN(10), "slow:4.2ms, mid:2ms, fast:1.5ms"; got != want {
		t.Errorf("TopN(10) = %q, want %q", got, want)
	}
}

func TestConcurrentAdd(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Add("shared", time.Microsecond)
			}
		}()
	}
	wg.Wait()
	if got := r.Snapshot()["shared"]; got != 800*time.Microsecond {
		t.Errorf("shared = %v, want 800µs", got)
	}
}

func TestItoa(t *testing.T) {
	cases := map[int64]string{0: "0", 7: "7", 42: "42", -13: "-13", 1000: "1000"}
	for in, want := range cases {
		if got := itoa(in); got != want {
			t.Errorf("itoa(%d) = %q, want %q", in, got, want)
		}
	}
}
