package config

import (
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"

	"github.com/sidkik/solvecopy/pkg/errors"
)

const (
	// ProjectConfigPath is the name of the optional project config, relative
	// to the project root.
	ProjectConfigPath = "solvecopy.yaml"

	// InitialProjectConfigVersion is the first version of the project
	// config. Config files that do not specify a version will default to
	// this version.
	InitialProjectConfigVersion = "v1alpha1"

	// SupportedProjectConfigVersion is the version of the project config
	// understood by this binary.
	SupportedProjectConfigVersion = "v1alpha1"
)

// The built-in settings. A project without a config file copies SudokuPad
// exports from the browser's download folder into the site's solves folder.
const (
	DefaultSource        = "~/Downloads"
	DefaultDestination   = "public/solves"
	DefaultPrefix        = "sudokupad-"
	DefaultExcludeMarker = "(1)"
	DefaultChallengeFile = "src/data/challenge_100_puzzles.json"
	DefaultIndexFile     = "src/data/solves_index.json"
)

// Project contains the settings for copying solves into a project.
type Project struct {
	Version string `json:"version,omitempty"`

	// Source is the directory that downloaded solves are copied from.
	Source string `json:"source,omitempty"`

	// Destination is the directory that solves are copied into. It's
	// created if it doesn't exist.
	Destination string `json:"destination,omitempty"`

	// Prefix is the file name prefix that marks a download as a solve.
	Prefix string `json:"prefix,omitempty"`

	// ExcludeMarker is a substring that marks a duplicate download, such as
	// the "(1)" browsers append when a file is downloaded twice.
	ExcludeMarker string `json:"excludeMarker,omitempty"`

	// Except contains additional glob patterns for names that should never
	// be copied.
	Except []string `json:"except,omitempty"`

	ChallengeFile string `json:"challengeFile,omitempty"`
	IndexFile     string `json:"indexFile,omitempty"`
}

func (p Project) getVersion() string {
	return p.Version
}

// homedirExpand will be overridden in mock tests
var homedirExpand = homedir.Expand

// Default returns the built-in project settings, before path resolution.
func Default() Project {
	return Project{
		Version:       InitialProjectConfigVersion,
		Source:        DefaultSource,
		Destination:   DefaultDestination,
		Prefix:        DefaultPrefix,
		ExcludeMarker: DefaultExcludeMarker,
		ChallengeFile: DefaultChallengeFile,
		IndexFile:     DefaultIndexFile,
	}
}

// ParseProject loads the project settings for the project rooted at `root`.
// A missing config file is not an error: the built-in defaults are used
// instead. All paths in the returned config are absolute or relative to
// `root`, with `~` expanded.
func ParseProject(root string) (Project, error) {
	path := filepath.Join(root, ProjectConfigPath)

	cfg := Default()
	err := parseConfig(path, &cfg, SupportedProjectConfigVersion)
	switch err.(type) {
	case nil:
		log.WithField("path", path).Debug("Loaded project config")
	case errors.FileNotFound:
		log.WithField("path", path).Debug("No project config found. Using defaults")
		cfg = Default()
	default:
		return Project{}, errors.WithContext(err, "parse")
	}

	cfg = cfg.withDefaults()
	if err := cfg.resolvePaths(root); err != nil {
		return Project{}, err
	}
	return cfg, nil
}

// withDefaults fills in any fields that the config file explicitly blanked.
func (p Project) withDefaults() Project {
	def := Default()
	fill := func(field *string, val string) {
		if *field == "" {
			*field = val
		}
	}
	fill(&p.Source, def.Source)
	fill(&p.Destination, def.Destination)
	fill(&p.Prefix, def.Prefix)
	fill(&p.ExcludeMarker, def.ExcludeMarker)
	fill(&p.ChallengeFile, def.ChallengeFile)
	fill(&p.IndexFile, def.IndexFile)
	return p
}

// resolvePaths expands home directories, and evaluates relative paths
// relative to the project root.
func (p *Project) resolvePaths(root string) error {
	for _, path := range []*string{&p.Source, &p.Destination, &p.ChallengeFile, &p.IndexFile} {
		expanded, err := ResolvePath(root, *path)
		if err != nil {
			return errors.WithContext(err, "expand path")
		}
		*path = expanded
	}
	return nil
}

// ResolvePath expands `~` in path, and joins relative paths onto root.
func ResolvePath(root, path string) (string, error) {
	expanded, err := homedirExpand(path)
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(root, expanded)
	}
	return expanded, nil
}
