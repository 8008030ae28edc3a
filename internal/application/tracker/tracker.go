package tracker

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"focal/internal/domain"
	"focal/internal/ports"
)

const (
	defaultInterval = time.Second
	stopTimeout     = time.Second
)

// EmitFunc receives each completed activity. Emission is synchronous and
// ordered: a segment closed at tick N is delivered before any later
// segment closes.
type EmitFunc func(domain.Activity)

// Tracker samples the foreground window at a fixed cadence and segments
// the observations into non-overlapping activities. At most one activity
// is open at any instant.
type Tracker struct {
	sampler    ports.ForegroundSampler
	classifier *domain.Classifier
	emit       EmitFunc
	log        zerolog.Logger
	interval   time.Duration
	now        func() time.Time

	mu        sync.Mutex
	tracking  bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	current   *domain.Activity
	lastIdent string
	projectID int64
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithInterval overrides the sampling cadence. The default is one second.
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) { t.interval = d }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New creates a tracker. Emitted activities are attributed to the project
// selected with SetProject; until then they go to project 0, so callers
// should select a project before starting.
func New(sampler ports.ForegroundSampler, classifier *domain.Classifier, emit EmitFunc, log zerolog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		sampler:    sampler,
		classifier: classifier,
		emit:       emit,
		log:        log,
		interval:   defaultInterval,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetProject selects the project newly opened activities belong to.
// The currently open activity, if any, keeps its project.
func (t *Tracker) SetProject(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.projectID = id
}

// IsTracking reports whether the sampling loop is running.
func (t *Tracker) IsTracking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tracking
}

// Current returns a copy of the open activity, or false when none is open.
func (t *Tracker) Current() (domain.Activity, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return domain.Activity{}, false
	}
	return *t.current, true
}

// Start begins the sampling loop. Calling Start while already tracking is
// a no-op. Start never blocks on the loop.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tracking {
		return
	}
	t.tracking = true
	t.lastIdent = ""
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	go t.run(t.stopCh, t.doneCh)
	t.log.Info().Dur("interval", t.interval).Msg("tracking started")
}

// Stop signals the sampling loop, waits for it to exit (bounded by one
// second), then closes and emits the open activity, if any. The join
// happens before finalizing so an in-flight tick can never race the final
// segment. Calling Stop while not tracking is a no-op.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.tracking {
		t.mu.Unlock()
		return
	}
	t.tracking = false
	stopCh, doneCh := t.stopCh, t.doneCh
	t.mu.Unlock()

	close(stopCh)
	select {
	case <-doneCh:
	case <-time.After(stopTimeout):
		t.log.Warn().Msg("sampling loop did not exit before timeout")
	}

	t.mu.Lock()
	open := t.current
	t.current = nil
	t.lastIdent = ""
	t.mu.Unlock()

	if open != nil {
		open.EndTime = t.now()
		t.emit(*open)
	}
	t.log.Info().Msg("tracking stopped")
}

func (t *Tracker) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		t.tick()
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}
	}
}

// tick performs one observation. Sampling errors and empty titles skip the
// tick; they never stop the loop.
func (t *Tracker) tick() {
	win, err := t.sampler.Sample()
	if err != nil {
		t.log.Debug().Err(err).Msg("skipping tick: foreground window unavailable")
		return
	}
	if strings.TrimSpace(win.Title) == "" {
		// System or background window.
		return
	}

	title, domainInfo := t.classifier.Classify(win.AppName, win.Title)
	ident := win.AppName + "::" + title
	now := t.now()

	t.mu.Lock()
	if ident == t.lastIdent && t.current != nil {
		t.current.EndTime = now
		t.mu.Unlock()
		return
	}
	closed := t.current
	t.current = nil
	t.mu.Unlock()

	// Close-then-open: the finished segment is emitted before the new one
	// exists, so handed-off activities never overlap.
	if closed != nil {
		closed.EndTime = now
		t.emit(*closed)
	}

	t.mu.Lock()
	t.current = &domain.Activity{
		Kind:        domain.KindApplication,
		ProjectID:   t.projectID,
		AppName:     win.AppName,
		WindowTitle: title,
		ShortTitle:  domain.ShortTitle(title),
		DomainInfo:  domainInfo,
		StartTime:   now,
		EndTime:     now,
	}
	t.lastIdent = ident
	t.mu.Unlock()
}
