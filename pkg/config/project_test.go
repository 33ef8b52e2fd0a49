package config

import (
	"testing"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidkik/solvecopy/pkg/errors"
)

const (
	root       = "/project"
	configPath = "/project/solvecopy.yaml"
)

func mockHomedir() {
	homedirExpand = func(path string) (string, error) {
		if len(path) > 0 && path[0] == '~' {
			return "/home/solver" + path[1:], nil
		}
		return path, nil
	}
}

func resolvedDefaults() Project {
	return Project{
		Version:       InitialProjectConfigVersion,
		Source:        "/home/solver/Downloads",
		Destination:   "/project/public/solves",
		Prefix:        DefaultPrefix,
		ExcludeMarker: DefaultExcludeMarker,
		ChallengeFile: "/project/src/data/challenge_100_puzzles.json",
		IndexFile:     "/project/src/data/solves_index.json",
	}
}

func TestParseProjectMissingFile(t *testing.T) {
	fs = afero.NewMemMapFs()
	mockHomedir()

	cfg, err := ParseProject(root)
	require.NoError(t, err)
	assert.Equal(t, resolvedDefaults(), cfg)
}

func TestParseProject(t *testing.T) {
	mockHomedir()

	overrides := resolvedDefaults()
	overrides.Version = SupportedProjectConfigVersion
	overrides.Source = "/mnt/downloads"
	overrides.Destination = "/project/assets/replays"
	overrides.Prefix = "replay-"
	overrides.Except = []string{"*.crdownload"}

	tests := []struct {
		name      string
		input     string
		expConfig Project
		expError  error
	}{
		{
			name:      "EmptyFile",
			input:     "",
			expConfig: resolvedDefaults(),
		},
		{
			name:      "EmptyVersion",
			input:     "prefix: sudokupad-\n",
			expConfig: resolvedDefaults(),
		},
		{
			name: "Overrides",
			input: `
version: v1alpha1
source: /mnt/downloads
destination: assets/replays
prefix: replay-
except:
  - "*.crdownload"
`,
			expConfig: overrides,
		},
		{
			name:      "BlankedFieldKeepsDefault",
			input:     "excludeMarker: \"\"\n",
			expConfig: resolvedDefaults(),
		},
		{
			name:  "IncorrectVersion",
			input: "version: incorrect_version\nextra: fields\n",
			expError: errors.WithContext(incompatibleVersionError{
				path:   configPath,
				exp:    SupportedProjectConfigVersion,
				actual: "incorrect_version",
			}, "parse"),
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			fs = afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, configPath, []byte(test.input), 0644))

			cfg, err := ParseProject(root)
			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				assert.Equal(t, test.expConfig, cfg)
			}
		})
	}
}

func TestParseProjectExtraFields(t *testing.T) {
	fs = afero.NewMemMapFs()
	mockHomedir()

	input := "version: v1alpha1\nextra: fields\n"
	require.NoError(t, afero.WriteFile(fs, configPath, []byte(input), 0644))

	_, err := ParseProject(root)
	require.Error(t, err)

	friendly, ok := errors.RootCause(err).(errors.FriendlyError)
	require.True(t, ok)
	assert.Contains(t, friendly.FriendlyMessage(), configPath)
	assert.Contains(t, friendly.FriendlyMessage(), `unknown field "extra"`)
}

func TestParseWrittenProject(t *testing.T) {
	fs = afero.NewMemMapFs()
	mockHomedir()

	exp := resolvedDefaults()
	exp.Version = SupportedProjectConfigVersion
	exp.Except = []string{"*.tmp"}

	yamlBytes, err := yaml.Marshal(exp)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, configPath, yamlBytes, 0644))

	cfg, err := ParseProject(root)
	require.NoError(t, err)
	assert.Equal(t, exp, cfg)
}

func TestResolvePath(t *testing.T) {
	mockHomedir()

	tests := []struct {
		path, exp string
	}{
		{"~/Downloads", "/home/solver/Downloads"},
		{"/abs/path", "/abs/path"},
		{"rel/path", "/project/rel/path"},
	}
	for _, test := range tests {
		actual, err := ResolvePath(root, test.path)
		assert.NoError(t, err)
		assert.Equal(t, test.exp, actual)
	}
}
