package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidkik/solvecopy/cmd/util"
	"github.com/sidkik/solvecopy/pkg/copier"
	"github.com/sidkik/solvecopy/pkg/errors"
	"github.com/sidkik/solvecopy/pkg/fswatch"
)

// Mocked for unit testing.
var (
	stdout      io.Writer = os.Stdout
	loadProject           = util.LoadProject
	runCopy               = copier.Run
	watchDir              = fswatch.Watch
)

// New creates a new `watch` command.
func New() *cobra.Command {
	var flags util.ProjectFlags
	var quiet time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Copy new solves whenever the downloads folder changes",
		Long: "Copy the missing solves, and then watch the downloads folder.\n" +
			"Every time new files finish downloading, the copy is run again.",
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := run(ctx, flags, quiet); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	flags.Register(cmd)
	cmd.Flags().DurationVar(&quiet, "quiet", 2*time.Second,
		"How long the downloads folder must be unchanged before copying.")
	return cmd
}

func run(ctx context.Context, flags util.ProjectFlags, quiet time.Duration) error {
	cfg, err := loadProject(flags)
	if err != nil {
		return err
	}
	opts := util.CopyOptions(cfg)

	// Start watching before the first copy so that downloads that finish
	// during the copy aren't missed.
	triggers, err := watchDir(ctx, opts.Source, clockwork.NewRealClock(), quiet)
	if err != nil {
		return errors.WithContext(err, "watch source")
	}

	if _, err := runCopy(opts, stdout); err != nil {
		return errors.WithContext(err, "copy solves")
	}

	fmt.Fprintf(stdout, "\nWatching %s for new files. Press Ctrl-C to stop.\n", opts.Source)
	for range triggers {
		log.WithField("dir", opts.Source).Debug("Downloads changed. Copying")
		fmt.Fprintln(stdout)
		if _, err := runCopy(opts, stdout); err != nil {
			return errors.WithContext(err, "copy solves")
		}
	}
	return nil
}
