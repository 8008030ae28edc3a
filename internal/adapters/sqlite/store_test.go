package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"focal/internal/domain"
	"focal/internal/ports"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	if err := store.Open(filepath.Join(t.TempDir(), "focal.db")); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testActivity(projectID int64, app, title string, start time.Time, seconds int64) *domain.Activity {
	return &domain.Activity{
		ProjectID:   projectID,
		Kind:        domain.KindApplication,
		AppName:     app,
		WindowTitle: title,
		ShortTitle:  domain.ShortTitle(title),
		DomainInfo:  domain.DomainOther,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(seconds) * time.Second),
	}
}

func TestOpenSeedsDefaultProject(t *testing.T) {
	store := openTestStore(t)

	id, err := store.DefaultProjectID()
	if err != nil {
		t.Fatalf("DefaultProjectID: %v", err)
	}
	if id == 0 {
		t.Fatal("default project ID is 0")
	}

	projects, err := store.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != domain.DefaultProjectName {
		t.Errorf("projects after open = %+v", projects)
	}
}

func TestReopenDoesNotDuplicateDefaultProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "focal.db")

	for i := 0; i < 2; i++ {
		store := NewStore()
		if err := store.Open(path); err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		store.Close()
	}

	store := NewStore()
	if err := store.Open(path); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	projects, err := store.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("got %d projects after reopen, expected 1", len(projects))
	}
}

func TestSaveAndQueryActivities(t *testing.T) {
	store := openTestStore(t)
	defaultID, _ := store.DefaultProjectID()

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	a := testActivity(defaultID, "chrome", "Funny Cat Video", day.Add(9*time.Hour), 120)
	if err := store.SaveActivity(a); err != nil {
		t.Fatalf("SaveActivity: %v", err)
	}
	if a.ID == 0 {
		t.Error("SaveActivity did not assign an ID")
	}

	// Activity on another day must not be returned.
	other := testActivity(defaultID, "notepad", "untitled.txt", day.AddDate(0, 0, 1), 30)
	if err := store.SaveActivity(other); err != nil {
		t.Fatalf("SaveActivity: %v", err)
	}

	got, err := store.ActivitiesOn(day, nil)
	if err != nil {
		t.Fatalf("ActivitiesOn: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d activities, expected 1", len(got))
	}
	if got[0].AppName != "chrome" || got[0].Seconds() != 120 {
		t.Errorf("round-tripped activity = %s/%ds", got[0].AppName, got[0].Seconds())
	}
	if got[0].Kind != domain.KindApplication || got[0].DomainInfo != domain.DomainOther {
		t.Errorf("round-tripped kind/domain = %s/%s", got[0].Kind, got[0].DomainInfo)
	}
}

func TestActivitiesOnFiltersByProject(t *testing.T) {
	store := openTestStore(t)
	defaultID, _ := store.DefaultProjectID()
	project, err := store.CreateProject("Thesis", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	store.SaveActivity(testActivity(defaultID, "chrome", "a", day.Add(9*time.Hour), 60))
	store.SaveActivity(testActivity(project.ID, "code", "b", day.Add(10*time.Hour), 60))

	got, err := store.ActivitiesOn(day, &project.ID)
	if err != nil {
		t.Fatalf("ActivitiesOn: %v", err)
	}
	if len(got) != 1 || got[0].AppName != "code" {
		t.Errorf("scoped activities = %+v", got)
	}
}

func TestCreateProjectRejectsDuplicateName(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.CreateProject("Thesis", ""); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	_, err := store.CreateProject("Thesis", "again")
	if !errors.Is(err, ports.ErrDuplicateName) {
		t.Errorf("duplicate create error = %v, expected ErrDuplicateName", err)
	}
}

func TestUpdateProject(t *testing.T) {
	store := openTestStore(t)
	project, _ := store.CreateProject("Thesis", "old")

	if err := store.UpdateProject(project.ID, "Dissertation", "new"); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}

	projects, _ := store.ListProjects()
	found := false
	for _, p := range projects {
		if p.ID == project.ID {
			found = true
			if p.Name != "Dissertation" || p.Description != "new" {
				t.Errorf("updated project = %+v", p)
			}
		}
	}
	if !found {
		t.Fatal("updated project missing from list")
	}

	if err := store.UpdateProject(9999, "Ghost", ""); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("update missing project error = %v, expected ErrNotFound", err)
	}
}

func TestDeleteProjectTransfersActivities(t *testing.T) {
	store := openTestStore(t)
	defaultID, _ := store.DefaultProjectID()
	project, _ := store.CreateProject("Scratch", "")

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	store.SaveActivity(testActivity(project.ID, "code", "scratch.go", day.Add(9*time.Hour), 45))

	if err := store.DeleteProject(project.ID, true); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	got, err := store.ActivitiesOn(day, &defaultID)
	if err != nil {
		t.Fatalf("ActivitiesOn: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("transferred activities = %d, expected 1", len(got))
	}
}

func TestDeleteProjectRemovesActivities(t *testing.T) {
	store := openTestStore(t)
	project, _ := store.CreateProject("Scratch", "")

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	store.SaveActivity(testActivity(project.ID, "code", "scratch.go", day.Add(9*time.Hour), 45))

	if err := store.DeleteProject(project.ID, false); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	got, err := store.ActivitiesOn(day, nil)
	if err != nil {
		t.Fatalf("ActivitiesOn: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("activities after cascade delete = %d, expected 0", len(got))
	}
}

func TestDeleteDefaultProjectFails(t *testing.T) {
	store := openTestStore(t)
	defaultID, _ := store.DefaultProjectID()

	err := store.DeleteProject(defaultID, true)
	if !errors.Is(err, ports.ErrDefaultProject) {
		t.Errorf("delete default error = %v, expected ErrDefaultProject", err)
	}
}

func TestTouchProjectLastActiveReorders(t *testing.T) {
	store := openTestStore(t)
	first, _ := store.CreateProject("First", "")

	// Backdate so the touch moves it to the top unambiguously.
	if _, err := store.db.Exec(`UPDATE projects SET last_active = '2000-01-01 00:00:00'`); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	if err := store.TouchProjectLastActive(first.ID); err != nil {
		t.Fatalf("TouchProjectLastActive: %v", err)
	}

	projects, err := store.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if projects[0].ID != first.ID {
		t.Errorf("most recently active project = %q, expected First", projects[0].Name)
	}
}
