package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"focal/internal/adapters/xwindow"
	"focal/internal/application/tracker"
	"focal/internal/config"
	"focal/internal/domain"
)

var trackProject string

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track foreground window focus until interrupted",
	Long: `Track the foreground window once per second and record focus
segments into the database. Runs until interrupted (Ctrl+C), flushing
the open segment on the way out.

Examples:
  focal-cli track
  focal-cli track --project Thesis`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()

		projectID, err := trackProjectID()
		if err != nil {
			return err
		}

		recorder := tracker.NewRecorder(GetStore(), log, nil)
		trk := tracker.New(
			xwindow.NewSampler(),
			domain.DefaultClassifier(),
			recorder.Record,
			log,
			tracker.WithInterval(config.SampleInterval()),
		)
		trk.SetProject(projectID)

		trk.Start()
		log.Info().Msg("tracking, press Ctrl+C to stop")

		<-ctx.Done()
		trk.Stop()
		log.Info().Msg("stopped")
		return nil
	},
}

func trackProjectID() (int64, error) {
	if trackProject == "" {
		return GetStore().DefaultProjectID()
	}
	p, err := projectByName(trackProject)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().StringVarP(&trackProject, "project", "p", "", "project to attribute tracked time to")
}
