package commands

import (
	"context"
	"fmt"
	"strings"

	"focal/internal/application"
	"focal/internal/ports"
)

// UpdateProjectCommand renames a project or changes its description
type UpdateProjectCommand struct {
	store       ports.ActivityStore
	ProjectID   int64
	Name        string
	Description string
}

// NewUpdateProjectCommand creates a new UpdateProjectCommand
func NewUpdateProjectCommand(store ports.ActivityStore, projectID int64, name, description string) *UpdateProjectCommand {
	return &UpdateProjectCommand{
		store:       store,
		ProjectID:   projectID,
		Name:        name,
		Description: description,
	}
}

// Validate checks if the update operation is valid
func (c *UpdateProjectCommand) Validate() error {
	if c.ProjectID <= 0 {
		return &application.ValidationError{
			Field:   "projectID",
			Message: "project ID is required",
		}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "project name is required",
		}
	}
	return nil
}

// Execute runs the update project command
func (c *UpdateProjectCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := c.store.UpdateProject(c.ProjectID, strings.TrimSpace(c.Name), c.Description); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}
