package ports

import (
	"errors"
	"time"

	"focal/internal/domain"
)

// Errors adapters return for store contract violations.
var (
	// ErrNotFound is returned when a project does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned when a project name is already taken.
	ErrDuplicateName = errors.New("project name already exists")
	// ErrDefaultProject is returned when deleting the default project.
	ErrDefaultProject = errors.New("cannot delete the default project")
)

// ActivityStore is the persistence collaborator. Saves append; activities
// are never updated or deleted through this interface except by project
// deletion.
type ActivityStore interface {
	// Lifecycle
	Open(path string) error
	Close() error

	// Activities
	SaveActivity(a *domain.Activity) error
	// ActivitiesOn returns all activities whose start time falls on the
	// given calendar day (local time), optionally filtered by project.
	// Order is unspecified.
	ActivitiesOn(day time.Time, projectID *int64) ([]domain.Activity, error)

	// Projects
	DefaultProjectID() (int64, error)
	CreateProject(name, description string) (*domain.Project, error)
	// ListProjects returns projects ordered most-recently-active first.
	ListProjects() ([]domain.Project, error)
	UpdateProject(id int64, name, description string) error
	// DeleteProject removes a project. Its activities are transferred to
	// the default project when transferToDefault is true, deleted
	// otherwise. Deleting the default project fails with
	// ErrDefaultProject.
	DeleteProject(id int64, transferToDefault bool) error
	// TouchProjectLastActive bumps the project's last-active timestamp.
	// Best-effort, called after every successful save.
	TouchProjectLastActive(id int64) error
}
