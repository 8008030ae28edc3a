package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"focal/internal/application/commands"
	"focal/internal/domain"
	"focal/internal/ports"
)

const dayLayout = "2006-01-02"

// RegisterReadTools adds all read-only reporting tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.ActivityStore) {
	s.AddTool(dailyReportTool(), dailyReportHandler(store))
	s.AddTool(flatReportTool(), flatReportHandler(store))
	s.AddTool(listProjectsTool(), listProjectsHandler(store))
}

// --- daily_report ---

func dailyReportTool() mcp.Tool {
	return mcp.NewTool("daily_report",
		mcp.WithDescription("Hierarchical activity report for one day: time per application, per content bucket, per window title."),
		mcp.WithString("day",
			mcp.Description("Day to report on (YYYY-MM-DD). Defaults to today."),
		),
		mcp.WithString("project",
			mcp.Description("Project name to scope the report to. Omit for all projects."),
		),
	)
}

func dailyReportHandler(store ports.ActivityStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := parseDay(req.GetString("day", ""))
		if err != nil {
			return toolError(err)
		}
		projectID, err := resolveProject(store, req.GetString("project", ""))
		if err != nil {
			return toolError(err)
		}

		apps, err := commands.NewDailyReportCommand(store, day, projectID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(apps) == 0 {
			return mcp.NewToolResultText("No activity recorded."), nil
		}

		var sb strings.Builder
		for _, app := range apps {
			fmt.Fprintf(&sb, "%s (%s)\n", app.AppName, app.DurationFormatted)
			for _, d := range app.Domains {
				fmt.Fprintf(&sb, "  %s (%s)\n", d.Domain, d.DurationFormatted)
				for _, t := range d.Titles {
					fmt.Fprintf(&sb, "    %s (%s)\n", t.WindowTitle, t.DurationFormatted)
				}
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- flat_report ---

func flatReportTool() mcp.Tool {
	return mcp.NewTool("flat_report",
		mcp.WithDescription("Flat activity report for one day: time per (application, window title) pair."),
		mcp.WithString("day",
			mcp.Description("Day to report on (YYYY-MM-DD). Defaults to today."),
		),
		mcp.WithString("project",
			mcp.Description("Project name to scope the report to. Omit for all projects."),
		),
	)
}

func flatReportHandler(store ports.ActivityStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := parseDay(req.GetString("day", ""))
		if err != nil {
			return toolError(err)
		}
		projectID, err := resolveProject(store, req.GetString("project", ""))
		if err != nil {
			return toolError(err)
		}

		entries, err := commands.NewFlatReportCommand(store, day, projectID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText("No activity recorded."), nil
		}

		var sb strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&sb, "%s  %s: %s\n", e.DurationFormatted, e.AppName, e.WindowTitle)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_projects ---

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects, most recently active first."),
	)
}

func listProjectsHandler(store ports.ActivityStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := commands.NewListProjectsCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, p := range projects {
			sb.WriteString(formatProject(p))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation(dayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", s)
	}
	return day, nil
}

// resolveProject maps a project name to its ID. An empty name means no
// project scoping.
func resolveProject(store ports.ActivityStore, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	projects, err := store.ListProjects()
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Name == name {
			return &p.ID, nil
		}
	}
	return nil, fmt.Errorf("no project named %q", name)
}

func formatProject(p domain.Project) string {
	s := p.Name
	if p.Description != "" {
		s += "  " + p.Description
	}
	if p.IsDefault() {
		s += "  (default)"
	}
	return s
}
