package commands

import (
	"context"
	"fmt"

	"focal/internal/application"
	"focal/internal/ports"
)

// DeleteProjectCommand deletes a project. Its activities are either
// transferred to the default project or deleted with it.
type DeleteProjectCommand struct {
	store             ports.ActivityStore
	ProjectID         int64
	TransferToDefault bool
}

// NewDeleteProjectCommand creates a new DeleteProjectCommand
func NewDeleteProjectCommand(store ports.ActivityStore, projectID int64, transferToDefault bool) *DeleteProjectCommand {
	return &DeleteProjectCommand{
		store:             store,
		ProjectID:         projectID,
		TransferToDefault: transferToDefault,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteProjectCommand) Validate() error {
	if c.ProjectID <= 0 {
		return &application.ValidationError{
			Field:   "projectID",
			Message: "project ID is required",
		}
	}
	return nil
}

// Execute runs the delete project command
func (c *DeleteProjectCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := c.store.DeleteProject(c.ProjectID, c.TransferToDefault); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
