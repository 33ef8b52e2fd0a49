package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidkik/solvecopy/pkg/config"
	"github.com/sidkik/solvecopy/pkg/copier"
	"github.com/sidkik/solvecopy/pkg/errors"
)

func mockExit() *int {
	code := -1
	exit = func(c int) { code = c }
	return &code
}

func TestHandleFatalErrorFriendly(t *testing.T) {
	code := mockExit()
	var out bytes.Buffer
	stderr = &out

	HandleFatalError(errors.WithContext(
		errors.NewFriendlyError("Please review %q.", "solvecopy.yaml"), "load"))
	assert.Equal(t, 1, *code)
	assert.Equal(t, "Please review \"solvecopy.yaml\".\n", out.String())
}

func TestHandleFatalErrorUnfriendly(t *testing.T) {
	code := mockExit()
	var out bytes.Buffer
	stderr = &out

	HandleFatalError(errors.New("disk full"))
	assert.Equal(t, 1, *code)
	assert.Empty(t, out.String())
}

func TestHandlePanic(t *testing.T) {
	code := mockExit()
	func() {
		defer HandlePanic()
		panic("boom")
	}()
	assert.Equal(t, 1, *code)
}

func TestLoadProject(t *testing.T) {
	getWorkingDirectory = func() (string, error) { return "/project", nil }
	base := config.Project{
		Source:        "/home/solver/Downloads",
		Destination:   "/project/public/solves",
		Prefix:        config.DefaultPrefix,
		ExcludeMarker: config.DefaultExcludeMarker,
		Except:        []string{"*.tmp"},
	}
	parseProject = func(root string) (config.Project, error) {
		assert.Equal(t, "/project", root)
		return base, nil
	}

	cfg, err := LoadProject(ProjectFlags{})
	require.NoError(t, err)
	assert.Equal(t, base, cfg)

	cfg, err = LoadProject(ProjectFlags{
		Source:        "/tmp/downloads",
		Destination:   "assets",
		Prefix:        "replay-",
		ExcludeMarker: "(copy)",
	})
	require.NoError(t, err)
	assert.Equal(t, config.Project{
		Source:        "/tmp/downloads",
		Destination:   "/project/assets",
		Prefix:        "replay-",
		ExcludeMarker: "(copy)",
		Except:        []string{"*.tmp"},
	}, cfg)

	assert.Equal(t, copier.Options{
		Source:        "/tmp/downloads",
		Destination:   "/project/assets",
		Prefix:        "replay-",
		ExcludeMarker: "(copy)",
		Except:        []string{"*.tmp"},
	}, CopyOptions(cfg))
}

func TestLoadProjectError(t *testing.T) {
	getWorkingDirectory = func() (string, error) { return "/project", nil }
	parseProject = func(string) (config.Project, error) {
		return config.Project{}, errors.New("bad yaml")
	}

	_, err := LoadProject(ProjectFlags{})
	assert.EqualError(t, err, "load project config: bad yaml")
}
