package copy

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sidkik/solvecopy/cmd/util"
	"github.com/sidkik/solvecopy/pkg/copier"
	"github.com/sidkik/solvecopy/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout      io.Writer = os.Stdout
	loadProject           = util.LoadProject
	runCopy               = copier.Run
)

// New creates a new `copy` command.
func New() *cobra.Command {
	var flags util.ProjectFlags
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy new solves from the downloads folder into the project",
		Long: "Copy files that match the solve prefix from the downloads folder\n" +
			"into the project's solves folder. Files that already exist in\n" +
			"the solves folder are never overwritten.",
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			if err := Run(flags); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	flags.Register(cmd)
	return cmd
}

// Run copies the missing solves according to the project config.
func Run(flags util.ProjectFlags) error {
	cfg, err := loadProject(flags)
	if err != nil {
		return err
	}

	if _, err := runCopy(util.CopyOptions(cfg), stdout); err != nil {
		return errors.WithContext(err, "copy solves")
	}
	return nil
}
