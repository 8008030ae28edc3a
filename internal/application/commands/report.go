package commands

import (
	"context"
	"fmt"
	"time"

	"focal/internal/domain"
	"focal/internal/ports"
)

// DailyReportCommand builds the hierarchical rollup
// (application → domain → window title) for one calendar day,
// optionally scoped to a project.
type DailyReportCommand struct {
	store     ports.ActivityStore
	Day       time.Time
	ProjectID *int64
}

// NewDailyReportCommand creates a new DailyReportCommand
func NewDailyReportCommand(store ports.ActivityStore, day time.Time, projectID *int64) *DailyReportCommand {
	return &DailyReportCommand{
		store:     store,
		Day:       day,
		ProjectID: projectID,
	}
}

// Execute runs the daily report command
func (c *DailyReportCommand) Execute(ctx context.Context) ([]domain.AppNode, error) {
	activities, err := c.store.ActivitiesOn(c.Day, c.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	return domain.AggregateHierarchical(activities), nil
}

// FlatReportCommand builds the flat (application, window title) rollup
// for one calendar day, optionally scoped to a project.
type FlatReportCommand struct {
	store     ports.ActivityStore
	Day       time.Time
	ProjectID *int64
}

// NewFlatReportCommand creates a new FlatReportCommand
func NewFlatReportCommand(store ports.ActivityStore, day time.Time, projectID *int64) *FlatReportCommand {
	return &FlatReportCommand{
		store:     store,
		Day:       day,
		ProjectID: projectID,
	}
}

// Execute runs the flat report command
func (c *FlatReportCommand) Execute(ctx context.Context) ([]domain.FlatEntry, error) {
	activities, err := c.store.ActivitiesOn(c.Day, c.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	return domain.AggregateFlat(activities), nil
}
