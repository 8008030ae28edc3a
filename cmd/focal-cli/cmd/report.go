package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"focal/internal/application/commands"
)

const dayLayout = "2006-01-02"

var (
	reportFlat    bool
	reportProject string
	reportDay     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show where the day went",
	Long: `Show the activity report for one day, hierarchically by
application, content bucket, and window title, or flat per
(application, window title) pair with --flat.

Examples:
  focal-cli report
  focal-cli report --day 2025-03-01
  focal-cli report --flat --project Thesis`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		day := time.Now()
		if reportDay != "" {
			var err error
			day, err = time.ParseInLocation(dayLayout, reportDay, time.Local)
			if err != nil {
				return fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", reportDay)
			}
		}

		var projectID *int64
		if reportProject != "" {
			p, err := projectByName(reportProject)
			if err != nil {
				return err
			}
			projectID = &p.ID
		}

		if reportFlat {
			entries, err := commands.NewFlatReportCommand(GetStore(), day, projectID).Execute(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No activity recorded.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%-10s %s: %s\n", e.DurationFormatted, e.AppName, e.WindowTitle)
			}
			return nil
		}

		apps, err := commands.NewDailyReportCommand(GetStore(), day, projectID).Execute(ctx)
		if err != nil {
			return err
		}
		if len(apps) == 0 {
			fmt.Println("No activity recorded.")
			return nil
		}
		for _, app := range apps {
			fmt.Printf("%s (%s)\n", app.AppName, app.DurationFormatted)
			for _, d := range app.Domains {
				fmt.Printf("  %s (%s)\n", d.Domain, d.DurationFormatted)
				for _, t := range d.Titles {
					fmt.Printf("    %s (%s)\n", t.WindowTitle, t.DurationFormatted)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportFlat, "flat", false, "flat report per (application, title) pair")
	reportCmd.Flags().StringVarP(&reportProject, "project", "p", "", "scope the report to one project")
	reportCmd.Flags().StringVarP(&reportDay, "day", "d", "", "day to report on (YYYY-MM-DD, default today)")
}
