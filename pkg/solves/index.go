// Package solves maintains the index that maps challenge puzzles to the
// replay and gif files recorded for them.
package solves

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/solvecopy/pkg/errors"
)

const (
	replayExt = ".replay"
	gifExt    = ".gif"
)

// Entry holds the solve files recorded for a single puzzle.
type Entry struct {
	Replay string `json:"replay,omitempty"`
	Gif    string `json:"gif,omitempty"`
}

// Index maps puzzle IDs to their solve files.
type Index map[string]Entry

// challengePuzzle is an element of the challenge file. Only the ID matters
// here.
type challengePuzzle struct {
	PuzzleID string `json:"puzzle_id"`
}

// Generate rebuilds the index over the files in solvesDir for the puzzles
// listed in challengeFile, and writes it to indexFile.
func Generate(challengeFile, solvesDir, indexFile string, out io.Writer) (Index, error) {
	puzzleIDs, err := ReadPuzzleIDs(challengeFile)
	if err != nil {
		return nil, errors.WithContext(err, "read challenge puzzles")
	}

	files, err := ListSolves(solvesDir)
	if err != nil {
		return nil, errors.WithContext(err, "list solves")
	}

	index := Build(puzzleIDs, files)
	if err := Write(indexFile, index); err != nil {
		return nil, errors.WithContext(err, "write index")
	}

	fmt.Fprintf(out, "Generated %s with %d solved puzzles\n", filepath.Base(indexFile), len(index))
	return index, nil
}

// ReadPuzzleIDs returns the distinct puzzle IDs in the challenge file, in the
// order they first appear.
func ReadPuzzleIDs(path string) ([]string, error) {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound{Path: path}
		}
		return nil, errors.WithContext(err, "read")
	}

	var puzzles []challengePuzzle
	if err := json.Unmarshal(contents, &puzzles); err != nil {
		return nil, errors.NewFriendlyError(
			"The challenge file %q could not be parsed. It should be a JSON "+
				"array of objects with a \"puzzle_id\" field.\n\n"+
				"For reference, here is the error from the parser:\n%s", path, err)
	}

	seen := map[string]struct{}{}
	var ids []string
	for _, puzzle := range puzzles {
		if puzzle.PuzzleID == "" {
			continue
		}
		if _, ok := seen[puzzle.PuzzleID]; ok {
			continue
		}
		seen[puzzle.PuzzleID] = struct{}{}
		ids = append(ids, puzzle.PuzzleID)
	}
	return ids, nil
}

// ListSolves returns the names of the entries in dir. A directory that
// doesn't exist yet has no solves.
func ListSolves(dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("dir", dir).Debug("Solves directory doesn't exist")
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, fi := range entries {
		names = append(names, fi.Name())
	}
	return names, nil
}

// Build assigns each file to the first puzzle ID, in puzzleIDs order, that
// appears in its name. Files ending in .replay or .gif fill the matching
// field of the puzzle's entry. A matched puzzle gets an entry even if none of
// its files have a recognized extension.
func Build(puzzleIDs, files []string) Index {
	index := Index{}
	for _, file := range files {
		for _, id := range puzzleIDs {
			if !strings.Contains(file, id) {
				continue
			}

			entry := index[id]
			switch {
			case strings.HasSuffix(file, replayExt):
				entry.Replay = file
			case strings.HasSuffix(file, gifExt):
				entry.Gif = file
			}
			index[id] = entry
			break
		}
	}
	return index
}

// Write serializes the index as indented JSON followed by a newline.
func Write(path string, index Index) error {
	if index == nil {
		index = Index{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(index); err != nil {
		return errors.WithContext(err, "marshal")
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WithContext(err, "create parent directory")
	}
	return afero.WriteFile(fs, path, buf.Bytes(), 0644)
}
