package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"focal/internal/application/commands"
	"focal/internal/ports"
)

// RegisterWriteTools adds all project-mutating tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store ports.ActivityStore) {
	s.AddTool(createProjectTool(), createProjectHandler(store))
	s.AddTool(updateProjectTool(), updateProjectHandler(store))
	s.AddTool(deleteProjectTool(), deleteProjectHandler(store))
}

// --- create_project ---

func createProjectTool() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create a new project for attributing tracked activity."),
		mcp.WithString("name",
			mcp.Description("Project name (must be unique)"),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("Optional project description"),
		),
	)
}

func createProjectHandler(store ports.ActivityStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		description := req.GetString("description", "")

		cmd := commands.NewCreateProjectCommand(store, name, description)
		if err := cmd.Validate(); err != nil {
			return toolError(err)
		}
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("Created project %q.", result.Project.Name)), nil
	}
}

// --- update_project ---

func updateProjectTool() mcp.Tool {
	return mcp.NewTool("update_project",
		mcp.WithDescription("Rename a project or change its description."),
		mcp.WithString("project",
			mcp.Description("Current project name"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("New project name"),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("New description (empty clears it)"),
		),
	)
}

func updateProjectHandler(store ports.ActivityStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := resolveProject(store, req.GetString("project", ""))
		if err != nil {
			return toolError(err)
		}
		if projectID == nil {
			return toolError(fmt.Errorf("project is required"))
		}

		name := req.GetString("name", "")
		description := req.GetString("description", "")

		cmd := commands.NewUpdateProjectCommand(store, *projectID, name, description)
		if err := cmd.Validate(); err != nil {
			return toolError(err)
		}
		if err := cmd.Execute(ctx); err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("Updated project %q.", name)), nil
	}
}

// --- delete_project ---

func deleteProjectTool() mcp.Tool {
	return mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project. Its activities are transferred to the default project unless purge is set."),
		mcp.WithString("project",
			mcp.Description("Project name"),
			mcp.Required(),
		),
		mcp.WithBoolean("purge",
			mcp.Description("Delete the project's activities instead of transferring them"),
		),
	)
}

func deleteProjectHandler(store ports.ActivityStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("project", "")
		projectID, err := resolveProject(store, name)
		if err != nil {
			return toolError(err)
		}
		if projectID == nil {
			return toolError(fmt.Errorf("project is required"))
		}
		purge := req.GetBool("purge", false)

		cmd := commands.NewDeleteProjectCommand(store, *projectID, !purge)
		if err := cmd.Validate(); err != nil {
			return toolError(err)
		}
		if err := cmd.Execute(ctx); err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("Deleted project %q.", name)), nil
	}
}
