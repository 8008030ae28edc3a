package tracker

import (
	"github.com/rs/zerolog"

	"focal/internal/domain"
	"focal/internal/ports"
)

// Recorder is the downstream consumer of completed activities: it appends
// each one to the store and bumps the owning project's last-active
// timestamp. A failed save is logged and the data point dropped; each
// activity is emitted at most once.
type Recorder struct {
	store   ports.ActivityStore
	log     zerolog.Logger
	onSaved func(domain.Activity)
}

// NewRecorder creates a recorder. onSaved, when non-nil, is invoked after
// each successful save (e.g. to refresh a view).
func NewRecorder(store ports.ActivityStore, log zerolog.Logger, onSaved func(domain.Activity)) *Recorder {
	return &Recorder{store: store, log: log, onSaved: onSaved}
}

// Record persists one completed activity.
func (r *Recorder) Record(a domain.Activity) {
	if err := r.store.SaveActivity(&a); err != nil {
		r.log.Error().Err(err).
			Str("app", a.AppName).
			Str("title", a.ShortTitle).
			Msg("failed to save activity")
		return
	}
	if err := r.store.TouchProjectLastActive(a.ProjectID); err != nil {
		r.log.Warn().Err(err).Int64("project", a.ProjectID).Msg("failed to touch project")
	}
	r.log.Debug().
		Str("app", a.AppName).
		Str("title", a.ShortTitle).
		Str("duration", a.DurationFormatted()).
		Msg("activity recorded")
	if r.onSaved != nil {
		r.onSaved(a)
	}
}
