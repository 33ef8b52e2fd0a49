package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	copyCmd "github.com/sidkik/solvecopy/cmd/copy"
	"github.com/sidkik/solvecopy/cmd/index"
	"github.com/sidkik/solvecopy/cmd/util"
	"github.com/sidkik/solvecopy/cmd/version"
	"github.com/sidkik/solvecopy/cmd/watch"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "SOLVECOPY_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	if err := New().Execute(); err != nil {
		util.HandleFatalError(err)
	}
}

// New creates the root command. Running it without a subcommand copies the
// missing solves, the same as `solvecopy copy`.
func New() *cobra.Command {
	var flags util.ProjectFlags
	rootCmd := &cobra.Command{
		Use:   "solvecopy",
		Short: "Copy downloaded SudokuPad solves into the project",
		Args:  cobra.NoArgs,

		// The call to rootCmd.Execute prints the error, so we silence errors
		// here to avoid double printing.
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(_ *cobra.Command, _ []string) {
			if err := copyCmd.Run(flags); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	flags.Register(rootCmd)

	rootCmd.AddCommand(
		copyCmd.New(),
		index.New(),
		version.New(),
		watch.New(),
	)
	return rootCmd
}
