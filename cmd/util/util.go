package util

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidkik/solvecopy/pkg/config"
	"github.com/sidkik/solvecopy/pkg/copier"
	"github.com/sidkik/solvecopy/pkg/errors"
)

// Mocked for unit testing.
var (
	exit                          = os.Exit
	stderr              io.Writer = os.Stderr
	getWorkingDirectory           = os.Getwd
	parseProject                  = config.ParseProject
)

// HandleFatalError prints err and exits with a non-zero status.
// FriendlyErrors are printed as-is. Other errors are logged along with their
// context.
func HandleFatalError(err error) {
	if friendlyErr, ok := errors.RootCause(err).(errors.FriendlyError); ok {
		fmt.Fprintln(stderr, friendlyErr.FriendlyMessage())
		log.WithError(err).Debug("Fatal error")
	} else {
		log.WithError(err).Error("Fatal error")
	}
	exit(1)
}

// HandlePanic recovers from a panic, logs it along with the stack trace, and
// exits. It must be deferred.
func HandlePanic() {
	if r := recover(); r != nil {
		log.WithField("stack", string(debug.Stack())).Errorf("Unexpected panic: %v", r)
		exit(1)
	}
}

// ProjectFlags are command line overrides for the project config.
type ProjectFlags struct {
	Source        string
	Destination   string
	Prefix        string
	ExcludeMarker string
}

// Register adds the flags to cmd.
func (f *ProjectFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Source, "source", "",
		"Directory to copy downloads from. "+
			"Optional: Defaults to the project config, or "+config.DefaultSource+".")
	cmd.Flags().StringVar(&f.Destination, "dest", "",
		"Directory to copy solves into. "+
			"Optional: Defaults to the project config, or "+config.DefaultDestination+".")
	cmd.Flags().StringVar(&f.Prefix, "prefix", "",
		"Only copy files whose name starts with this prefix. "+
			"Optional: Defaults to "+config.DefaultPrefix+".")
	cmd.Flags().StringVar(&f.ExcludeMarker, "exclude", "",
		"Never copy files whose name contains this text. "+
			"Optional: Defaults to "+config.DefaultExcludeMarker+".")
}

// LoadProject parses the config for the project in the working directory,
// and applies the overrides in flags.
func LoadProject(flags ProjectFlags) (config.Project, error) {
	root, err := getWorkingDirectory()
	if err != nil {
		return config.Project{}, errors.WithContext(err, "get working directory")
	}

	cfg, err := parseProject(root)
	if err != nil {
		return config.Project{}, errors.WithContext(err, "load project config")
	}

	if flags.Source != "" {
		if cfg.Source, err = config.ResolvePath(root, flags.Source); err != nil {
			return config.Project{}, errors.WithContext(err, "expand source")
		}
	}
	if flags.Destination != "" {
		if cfg.Destination, err = config.ResolvePath(root, flags.Destination); err != nil {
			return config.Project{}, errors.WithContext(err, "expand destination")
		}
	}
	if flags.Prefix != "" {
		cfg.Prefix = flags.Prefix
	}
	if flags.ExcludeMarker != "" {
		cfg.ExcludeMarker = flags.ExcludeMarker
	}
	return cfg, nil
}

// CopyOptions converts the project config into the options for a copy run.
func CopyOptions(cfg config.Project) copier.Options {
	return copier.Options{
		Source:        cfg.Source,
		Destination:   cfg.Destination,
		Prefix:        cfg.Prefix,
		ExcludeMarker: cfg.ExcludeMarker,
		Except:        cfg.Except,
	}
}
