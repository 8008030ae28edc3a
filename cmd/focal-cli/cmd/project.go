package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focal/internal/application/commands"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, most recently active first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := commands.NewListProjectsCommand(GetStore()).Execute(context.Background())
		if err != nil {
			return err
		}
		for _, p := range projects {
			line := p.Name
			if p.Description != "" {
				line += "  " + p.Description
			}
			if p.IsDefault() {
				line += "  (default)"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name> [description]",
	Short: "Create a new project",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := ""
		if len(args) > 1 {
			description = args[1]
		}

		create := commands.NewCreateProjectCommand(GetStore(), args[0], description)
		if err := create.Validate(); err != nil {
			return err
		}
		result, err := create.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename <name> <new-name> [description]",
	Short: "Rename a project or change its description",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := projectByName(args[0])
		if err != nil {
			return err
		}

		description := p.Description
		if len(args) > 2 {
			description = args[2]
		}

		update := commands.NewUpdateProjectCommand(GetStore(), p.ID, args[1], description)
		if err := update.Validate(); err != nil {
			return err
		}
		if err := update.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Updated project: %s\n", args[1])
		return nil
	},
}

var projectPurge bool

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a project",
	Long: `Delete a project. Its recorded activity moves to the default
project unless --purge is given, in which case it is deleted too. The
default project cannot be deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := projectByName(args[0])
		if err != nil {
			return err
		}

		del := commands.NewDeleteProjectCommand(GetStore(), p.ID, !projectPurge)
		if err := del.Validate(); err != nil {
			return err
		}
		if err := del.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Deleted project: %s\n", p.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectRenameCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectDeleteCmd.Flags().BoolVar(&projectPurge, "purge", false, "delete the project's activities instead of transferring them")
}
