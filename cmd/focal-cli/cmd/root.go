package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"focal/internal/adapters/sqlite"
	"focal/internal/config"
	"focal/internal/domain"
	"focal/internal/ports"
)

var (
	dbPath string
	store  *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "focal-cli",
	Short: "CLI for the focal time tracker",
	Long: `focal-cli is a command-line interface for the focal time tracker.

It records which window has keyboard focus, attributes the time to
projects, and reports where the day went, per application, per content
bucket, per window title.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		store = sqlite.NewStore()
		return store.Open(dbPath)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DatabasePath(), "path to the activity database")
}

// GetStore returns the initialized store
func GetStore() ports.ActivityStore {
	return store
}

// projectByName resolves a project by its exact name.
func projectByName(name string) (*domain.Project, error) {
	projects, err := GetStore().ListProjects()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].Name == name {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("no project named %q", name)
}
