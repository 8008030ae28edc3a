package domain

import (
	"fmt"
	"slices"
	"time"
)

// KindApplication is the kind tag for application-focus activities.
// It is the only kind currently recorded.
const KindApplication = "Application"

// Display titles longer than shortTitleMax runes are cut at shortTitleCut
// runes and suffixed with an ellipsis.
const (
	shortTitleMax = 30
	shortTitleCut = 27
)

// Activity is one contiguous period of foreground focus on a single
// (application, window title) pair. EndTime is never before StartTime.
type Activity struct {
	ID          int64
	ProjectID   int64
	Kind        string
	AppName     string // process name, extension stripped
	WindowTitle string // raw or browser-cleaned title
	ShortTitle  string
	DomainInfo  string
	StartTime   time.Time
	EndTime     time.Time
}

// Duration returns the elapsed time of the activity.
func (a Activity) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// Seconds returns the elapsed time truncated to whole seconds.
func (a Activity) Seconds() int64 {
	return int64(a.Duration().Seconds())
}

// DurationFormatted returns the elapsed time as a display string.
func (a Activity) DurationFormatted() string {
	return FormatDuration(a.Seconds())
}

// ShortTitle truncates a window title for display. Titles longer than 30
// runes are cut to 27 runes plus "...".
func ShortTitle(title string) string {
	runes := []rune(title)
	if len(runes) > shortTitleMax {
		return string(runes[:shortTitleCut]) + "..."
	}
	return title
}

// FormatDuration renders non-negative whole seconds as "1h 2m", "2m 5s"
// or "45s". Values are truncated, never rounded up.
func FormatDuration(totalSeconds int64) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// DefaultProjectName is the name of the seeded project that always exists
// and can never be deleted.
const DefaultProjectName = "Default Project"

// Project groups activities. LastActive is bumped every time an activity
// is saved under the project and is used for display ordering only.
type Project struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	LastActive  time.Time
}

// IsDefault reports whether the project is the seeded default project.
func (p Project) IsDefault() bool {
	return p.Name == DefaultProjectName
}

// SortProjectsByLastActive orders projects most-recently-active first.
func SortProjectsByLastActive(projects []Project) {
	slices.SortStableFunc(projects, func(a, b Project) int {
		if a.LastActive.After(b.LastActive) {
			return -1
		}
		if a.LastActive.Before(b.LastActive) {
			return 1
		}
		return 0
	})
}

// SortActivitiesByStart orders activities by start time ascending.
func SortActivitiesByStart(activities []Activity) {
	slices.SortStableFunc(activities, func(a, b Activity) int {
		return a.StartTime.Compare(b.StartTime)
	})
}
