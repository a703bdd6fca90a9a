package interviewinfra_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview/interviewinfra"
)

func TestInMemoryLocker_BusyKeyTimesOut(t *testing.T) {
	l := interviewinfra.NewInMemoryLocker(50 * time.Millisecond)
	ctx := context.Background()

	release, err := l.Lock(ctx, "interviewer:u1")
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	_, err = l.Lock(ctx, "application:a1", "interviewer:u1")
	if !errx.IsCode(err, interview.CodeSchedulingBusy) {
		t.Fatalf("got %v, want scheduling busy", err)
	}

	// the partially acquired key must have been released
	other, err := l.Lock(ctx, "application:a1")
	if err != nil {
		t.Fatalf("application key should be free after a failed lock: %v", err)
	}
	other()
}

func TestInMemoryLocker_ReleaseIsIdempotent(t *testing.T) {
	l := interviewinfra.NewInMemoryLocker(50 * time.Millisecond)
	ctx := context.Background()

	release, err := l.Lock(ctx, "session:s1")
	if err != nil {
		t.Fatal(err)
	}
	release()
	release()

	again, err := l.Lock(ctx, "session:s1", "session:s1")
	if err != nil {
		t.Fatalf("relock after release: %v", err)
	}
	again()
}

func TestInMemoryLocker_ContextCancelled(t *testing.T) {
	l := interviewinfra.NewInMemoryLocker(time.Second)
	release, _ := l.Lock(context.Background(), "interviewer:u1")
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Lock(ctx, "interviewer:u1"); err == nil {
		t.Error("Lock should fail on a cancelled context")
	}
}

func TestInMemoryLocker_MutualExclusion(t *testing.T) {
	l := interviewinfra.NewInMemoryLocker(5 * time.Second)

	var (
		wg      sync.WaitGroup
		inside  atomic.Int32
		maxSeen atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// opposite key orders would deadlock without sorted acquisition
			keys := []string{"interviewer:u1", "application:a1"}
			if i%2 == 1 {
				keys = []string{"application:a1", "interviewer:u1"}
			}
			release, err := l.Lock(context.Background(), keys...)
			if err != nil {
				t.Error(err)
				return
			}
			n := inside.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			release()
		}(i)
	}
	wg.Wait()

	if maxSeen.Load() != 1 {
		t.Errorf("%d holders at once, want 1", maxSeen.Load())
	}
}
