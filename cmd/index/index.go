package index

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sidkik/solvecopy/cmd/util"
	"github.com/sidkik/solvecopy/pkg/errors"
	"github.com/sidkik/solvecopy/pkg/solves"
)

// Mocked for unit testing.
var (
	stdout      io.Writer = os.Stdout
	loadProject           = util.LoadProject
	generate              = solves.Generate
)

// New creates a new `index` command.
func New() *cobra.Command {
	var flags util.ProjectFlags
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the index of recorded solves",
		Long: "Match the files in the solves folder against the challenge\n" +
			"puzzles, and write the replay and gif for each solved puzzle\n" +
			"to the solves index.",
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(flags); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	flags.Register(cmd)
	return cmd
}

func run(flags util.ProjectFlags) error {
	cfg, err := loadProject(flags)
	if err != nil {
		return err
	}

	_, err = generate(cfg.ChallengeFile, cfg.Destination, cfg.IndexFile, stdout)
	return errors.WithContext(err, "generate index")
}
