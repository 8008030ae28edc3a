package tracker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"focal/internal/domain"
	"focal/internal/ports"
)

// scriptedSampler returns its steps in order, repeating the last one.
type scriptedSampler struct {
	mu    sync.Mutex
	steps []sampleStep
	pos   int
}

type sampleStep struct {
	win ports.ForegroundWindow
	err error
}

func (s *scriptedSampler) Sample() (ports.ForegroundWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step := s.steps[s.pos]
	if s.pos < len(s.steps)-1 {
		s.pos++
	}
	return step.win, step.err
}

func window(app, title string) sampleStep {
	return sampleStep{win: ports.ForegroundWindow{AppName: app, Title: title}}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type emitted struct {
	mu         sync.Mutex
	activities []domain.Activity
}

func (e *emitted) add(a domain.Activity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activities = append(e.activities, a)
}

func (e *emitted) all() []domain.Activity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Activity(nil), e.activities...)
}

func newTestTracker(sampler ports.ForegroundSampler, clock *fakeClock) (*Tracker, *emitted) {
	var out emitted
	t := New(sampler, domain.DefaultClassifier(), out.add, zerolog.Nop(),
		WithInterval(5*time.Millisecond),
		WithClock(clock.Now),
	)
	return t, &out
}

func TestTickSegmentsOnIdentityChange(t *testing.T) {
	sampler := &scriptedSampler{steps: []sampleStep{
		window("notepad", "untitled.txt"),
		window("notepad", "untitled.txt"),
		window("chrome", "Funny Cat Video - YouTube"),
	}}
	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)}
	tr, out := newTestTracker(sampler, clock)
	tr.SetProject(7)

	tr.tick() // opens notepad
	if got := out.all(); len(got) != 0 {
		t.Fatalf("first tick emitted %d activities, expected 0", len(got))
	}
	open, ok := tr.Current()
	if !ok || open.AppName != "notepad" {
		t.Fatalf("expected open notepad activity, got %+v", open)
	}
	if open.ProjectID != 7 {
		t.Errorf("open activity project = %d, expected 7", open.ProjectID)
	}

	clock.Advance(time.Second)
	tr.tick() // same identity: end time bump only
	if got := out.all(); len(got) != 0 {
		t.Fatalf("same-identity tick emitted %d activities, expected 0", len(got))
	}
	open, _ = tr.Current()
	if open.Seconds() != 1 {
		t.Errorf("open activity advanced %ds, expected 1s", open.Seconds())
	}

	clock.Advance(time.Second)
	tr.tick() // identity change: close notepad, open chrome
	got := out.all()
	if len(got) != 1 {
		t.Fatalf("boundary tick emitted %d activities, expected 1", len(got))
	}
	closed := got[0]
	if closed.AppName != "notepad" || closed.Seconds() != 2 {
		t.Errorf("closed = %s/%ds, expected notepad/2s", closed.AppName, closed.Seconds())
	}

	open, _ = tr.Current()
	if open.AppName != "chrome" || open.WindowTitle != "Funny Cat Video" {
		t.Errorf("new open activity = %s/%q", open.AppName, open.WindowTitle)
	}
	if open.DomainInfo != "YouTube" {
		t.Errorf("new open activity domain = %q, expected YouTube", open.DomainInfo)
	}
	if open.StartTime.Before(closed.EndTime) {
		t.Errorf("new activity starts %v, before previous end %v", open.StartTime, closed.EndTime)
	}
}

func TestTickSkipsEmptyTitles(t *testing.T) {
	sampler := &scriptedSampler{steps: []sampleStep{
		window("notepad", "untitled.txt"),
		window("explorer", "   "),
	}}
	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)}
	tr, out := newTestTracker(sampler, clock)

	tr.tick()
	clock.Advance(time.Second)
	tr.tick() // blank title: tick skipped entirely

	if got := out.all(); len(got) != 0 {
		t.Fatalf("emitted %d activities, expected 0", len(got))
	}
	open, ok := tr.Current()
	if !ok {
		t.Fatal("open activity lost on skipped tick")
	}
	if open.Seconds() != 0 {
		t.Errorf("skipped tick advanced the open activity to %ds", open.Seconds())
	}
}

func TestTickSkipsSamplerErrors(t *testing.T) {
	sampler := &scriptedSampler{steps: []sampleStep{
		window("notepad", "untitled.txt"),
		{err: errors.New("no foreground window")},
		window("notepad", "untitled.txt"),
	}}
	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)}
	tr, out := newTestTracker(sampler, clock)

	tr.tick()
	clock.Advance(time.Second)
	tr.tick() // error: skipped
	clock.Advance(time.Second)
	tr.tick() // same identity resumes

	if got := out.all(); len(got) != 0 {
		t.Fatalf("emitted %d activities, expected 0", len(got))
	}
	open, _ := tr.Current()
	if open.Seconds() != 2 {
		t.Errorf("open activity advanced %ds, expected 2s", open.Seconds())
	}
}

func TestEmittedActivitiesNeverOverlap(t *testing.T) {
	sampler := &scriptedSampler{steps: []sampleStep{
		window("notepad", "a"),
		window("notepad", "a"),
		window("chrome", "b - Google Chrome"),
		window("code", "c"),
		window("code", "c"),
	}}
	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)}
	tr, out := newTestTracker(sampler, clock)

	for i := 0; i < 5; i++ {
		tr.tick()
		clock.Advance(time.Second)
	}

	got := out.all()
	if len(got) != 2 {
		t.Fatalf("emitted %d activities, expected 2", len(got))
	}
	for i, a := range got {
		if a.EndTime.Before(a.StartTime) {
			t.Errorf("activity %d ends before it starts", i)
		}
		if i > 0 {
			prev := got[i-1]
			if a.StartTime.Before(prev.EndTime) {
				t.Errorf("activity %d starts %v before previous end %v", i, a.StartTime, prev.EndTime)
			}
		}
	}
}

func TestStartStopFlushesOpenActivity(t *testing.T) {
	sampler := &scriptedSampler{steps: []sampleStep{
		window("notepad", "untitled.txt"),
	}}
	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)}
	tr, out := newTestTracker(sampler, clock)

	tr.Start()
	if !tr.IsTracking() {
		t.Fatal("IsTracking() = false after Start")
	}
	tr.Start() // idempotent
	time.Sleep(30 * time.Millisecond)
	tr.Stop()
	if tr.IsTracking() {
		t.Fatal("IsTracking() = true after Stop")
	}

	got := out.all()
	if len(got) != 1 {
		t.Fatalf("stop flushed %d activities, expected 1", len(got))
	}
	if got[0].AppName != "notepad" {
		t.Errorf("flushed activity = %s", got[0].AppName)
	}
	if got[0].EndTime.Before(got[0].StartTime) {
		t.Error("flushed activity ends before it starts")
	}
	if _, ok := tr.Current(); ok {
		t.Error("activity still open after Stop")
	}
}

func TestStopWithoutOpenActivityEmitsNothing(t *testing.T) {
	sampler := &scriptedSampler{steps: []sampleStep{
		{err: errors.New("no foreground window")},
	}}
	clock := &fakeClock{now: time.Now()}
	tr, out := newTestTracker(sampler, clock)

	tr.Start()
	time.Sleep(20 * time.Millisecond)
	tr.Stop()
	tr.Stop() // idempotent

	if got := out.all(); len(got) != 0 {
		t.Fatalf("emitted %d activities, expected 0", len(got))
	}
}

func TestRestartBeginsFreshSegment(t *testing.T) {
	sampler := &scriptedSampler{steps: []sampleStep{
		window("notepad", "untitled.txt"),
	}}
	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)}
	tr, out := newTestTracker(sampler, clock)

	tr.Start()
	time.Sleep(20 * time.Millisecond)
	tr.Stop()

	tr.Start()
	time.Sleep(20 * time.Millisecond)
	tr.Stop()

	got := out.all()
	if len(got) != 2 {
		t.Fatalf("emitted %d activities across two sessions, expected 2", len(got))
	}
}
