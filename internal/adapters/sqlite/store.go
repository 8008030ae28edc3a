package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focal/internal/domain"
	"focal/internal/ports"

	_ "modernc.org/sqlite"
)

// timeLayout is how timestamps are stored; day queries match on the
// leading date portion.
const (
	timeLayout = "2006-01-02 15:04:05"
	dayLayout  = "2006-01-02"
)

// Store implements ports.ActivityStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements ActivityStore
var _ ports.ActivityStore = (*Store)(nil)

// NewStore creates a new SQLite store
func NewStore() *Store {
	return &Store{}
}

// Open initializes the store at the given database path
func (s *Store) Open(dbPath string) error {
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	s.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			description TEXT,
			created_at TEXT NOT NULL,
			last_active TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			app_name TEXT NOT NULL,
			window_title TEXT NOT NULL,
			short_title TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			domain_info TEXT NOT NULL DEFAULT 'Other',
			FOREIGN KEY (project_id) REFERENCES projects (id)
		);
		CREATE INDEX IF NOT EXISTS idx_activities_start ON activities(start_time);
		CREATE INDEX IF NOT EXISTS idx_activities_project ON activities(project_id);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := s.seedDefaultProject(); err != nil {
		db.Close()
		return fmt.Errorf("failed to seed default project: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// seedDefaultProject creates the default project on first open
func (s *Store) seedDefaultProject() error {
	now := time.Now().Format(timeLayout)
	_, err := s.db.Exec(`
		INSERT INTO projects (name, description, created_at, last_active)
		SELECT ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM projects WHERE name = ?)
	`, domain.DefaultProjectName, "Default project for all activities", now, now, domain.DefaultProjectName)
	return err
}

// SaveActivity appends one activity row and sets its ID
func (s *Store) SaveActivity(a *domain.Activity) error {
	result, err := s.db.Exec(`
		INSERT INTO activities (
			project_id, kind, app_name, window_title, short_title,
			start_time, end_time, domain_info
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ProjectID, a.Kind, a.AppName, a.WindowTitle, a.ShortTitle,
		a.StartTime.Format(timeLayout), a.EndTime.Format(timeLayout), a.DomainInfo)
	if err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		a.ID = id
	}
	return nil
}

// ActivitiesOn returns all activities whose start time falls on the given
// calendar day, optionally filtered by project
func (s *Store) ActivitiesOn(day time.Time, projectID *int64) ([]domain.Activity, error) {
	query := `
		SELECT id, project_id, kind, app_name, window_title, short_title,
		       start_time, end_time, domain_info
		FROM activities
		WHERE start_time LIKE ?
	`
	args := []any{day.Format(dayLayout) + "%"}

	if projectID != nil {
		query += " AND project_id = ?"
		args = append(args, *projectID)
	}
	query += " ORDER BY start_time"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var a domain.Activity
		var start, end string
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Kind, &a.AppName,
			&a.WindowTitle, &a.ShortTitle, &start, &end, &a.DomainInfo); err != nil {
			return nil, err
		}
		if a.StartTime, err = time.ParseInLocation(timeLayout, start, time.Local); err != nil {
			return nil, fmt.Errorf("bad start_time for activity %d: %w", a.ID, err)
		}
		if a.EndTime, err = time.ParseInLocation(timeLayout, end, time.Local); err != nil {
			return nil, fmt.Errorf("bad end_time for activity %d: %w", a.ID, err)
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}

// DefaultProjectID returns the ID of the seeded default project
func (s *Store) DefaultProjectID() (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM projects WHERE name = ?`, domain.DefaultProjectName).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ports.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreateProject creates a new project with a unique name
func (s *Store) CreateProject(name, description string) (*domain.Project, error) {
	var exists int
	err := s.db.QueryRow(`SELECT 1 FROM projects WHERE name = ?`, name).Scan(&exists)
	if err == nil {
		return nil, ports.ErrDuplicateName
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO projects (name, description, created_at, last_active)
		VALUES (?, ?, ?, ?)
	`, name, description, now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &domain.Project{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		LastActive:  now,
	}, nil
}

// ListProjects returns all projects, most recently active first
func (s *Store) ListProjects() ([]domain.Project, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, created_at, last_active
		FROM projects
		ORDER BY last_active DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		var description sql.NullString
		var created, active string
		if err := rows.Scan(&p.ID, &p.Name, &description, &created, &active); err != nil {
			return nil, err
		}
		p.Description = description.String
		if p.CreatedAt, err = time.ParseInLocation(timeLayout, created, time.Local); err != nil {
			return nil, fmt.Errorf("bad created_at for project %d: %w", p.ID, err)
		}
		if p.LastActive, err = time.ParseInLocation(timeLayout, active, time.Local); err != nil {
			return nil, fmt.Errorf("bad last_active for project %d: %w", p.ID, err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// UpdateProject renames a project or changes its description
func (s *Store) UpdateProject(id int64, name, description string) error {
	var takenBy int64
	err := s.db.QueryRow(`SELECT id FROM projects WHERE name = ?`, name).Scan(&takenBy)
	if err == nil && takenBy != id {
		return ports.ErrDuplicateName
	}
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	result, err := s.db.Exec(`
		UPDATE projects SET name = ?, description = ? WHERE id = ?
	`, name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// DeleteProject removes a project, transferring its activities to the
// default project or deleting them. The default project is protected.
func (s *Store) DeleteProject(id int64, transferToDefault bool) error {
	defaultID, err := s.DefaultProjectID()
	if err != nil {
		return err
	}
	if id == defaultID {
		return ports.ErrDefaultProject
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if transferToDefault {
		if _, err := tx.Exec(`UPDATE activities SET project_id = ? WHERE project_id = ?`, defaultID, id); err != nil {
			return fmt.Errorf("failed to transfer activities: %w", err)
		}
	} else {
		if _, err := tx.Exec(`DELETE FROM activities WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete activities: %w", err)
		}
	}

	result, err := tx.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ports.ErrNotFound
	}

	return tx.Commit()
}

// TouchProjectLastActive bumps the project's last-active timestamp
func (s *Store) TouchProjectLastActive(id int64) error {
	_, err := s.db.Exec(`
		UPDATE projects SET last_active = ? WHERE id = ?
	`, time.Now().Format(timeLayout), id)
	return err
}
