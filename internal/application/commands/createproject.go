package commands

import (
	"context"
	"fmt"
	"strings"

	"focal/internal/application"
	"focal/internal/domain"
	"focal/internal/ports"
)

// CreateProjectResult contains the result of creating a project
type CreateProjectResult struct {
	Project *domain.Project
	Message string
}

// CreateProjectCommand creates a new project
type CreateProjectCommand struct {
	store       ports.ActivityStore
	Name        string
	Description string
}

// NewCreateProjectCommand creates a new CreateProjectCommand
func NewCreateProjectCommand(store ports.ActivityStore, name, description string) *CreateProjectCommand {
	return &CreateProjectCommand{
		store:       store,
		Name:        name,
		Description: description,
	}
}

// Validate checks if the create operation is valid
func (c *CreateProjectCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "project name is required",
		}
	}
	return nil
}

// Execute runs the create project command
func (c *CreateProjectCommand) Execute(ctx context.Context) (*CreateProjectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	project, err := c.store.CreateProject(strings.TrimSpace(c.Name), c.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &CreateProjectResult{
		Project: project,
		Message: fmt.Sprintf("Created project: %s", project.Name),
	}, nil
}
