package commands

import (
	"context"
	"fmt"

	"focal/internal/domain"
	"focal/internal/ports"
)

// ListProjectsCommand lists all projects, most recently active first
type ListProjectsCommand struct {
	store ports.ActivityStore
}

// NewListProjectsCommand creates a new ListProjectsCommand
func NewListProjectsCommand(store ports.ActivityStore) *ListProjectsCommand {
	return &ListProjectsCommand{store: store}
}

// Execute runs the list projects command
func (c *ListProjectsCommand) Execute(ctx context.Context) ([]domain.Project, error) {
	projects, err := c.store.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}
