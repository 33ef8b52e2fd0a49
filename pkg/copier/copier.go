package copier

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/solvecopy/pkg/errors"
)

// Options configures a single copy run.
type Options struct {
	// Source is the directory to copy from. It's never modified.
	Source string

	// Destination is the directory to copy into. It's created if missing.
	Destination string

	// Prefix, ExcludeMarker and Except select the Candidate Files. See
	// NewMatcher.
	Prefix        string
	ExcludeMarker string
	Except        []string
}

// Result summarizes a copy run.
type Result struct {
	// Existing is the number of files that were in the destination before
	// the run.
	Existing int

	// Candidates is the number of source files that matched the name rules,
	// whether or not they were copied.
	Candidates int

	// CopiedFiles contains the names of the copied files, in the order they
	// were copied.
	CopiedFiles []string
}

// Copied returns the number of files copied.
func (res Result) Copied() int {
	return len(res.CopiedFiles)
}

// Run copies every Candidate File in opts.Source whose name isn't already
// present in opts.Destination. The destination's contents are snapshotted
// once before copying begins, and existing files are never overwritten.
//
// Progress is written to out. The first error aborts the run.
func Run(opts Options, out io.Writer) (Result, error) {
	matcher, err := NewMatcher(opts.Prefix, opts.ExcludeMarker, opts.Except)
	if err != nil {
		return Result{}, errors.WithContext(err, "build matcher")
	}

	if err := ensureDir(opts.Destination); err != nil {
		return Result{}, errors.WithContext(err, "create destination")
	}

	existing, err := snapshotDestination(opts.Destination)
	if err != nil {
		return Result{}, errors.WithContext(err, "list destination")
	}
	fmt.Fprintf(out, "Found %d existing files in %s\n", len(existing), opts.Destination)

	candidates, err := listCandidates(opts.Source, matcher)
	if err != nil {
		return Result{}, errors.WithContext(err, "list source")
	}
	fmt.Fprintf(out, "Found %d %s* files in %s\n", len(candidates), opts.Prefix, opts.Source)

	res := Result{Existing: len(existing), Candidates: len(candidates)}
	for _, src := range candidates {
		name := src.Name()
		if _, ok := existing[name]; ok {
			log.WithField("name", name).Debug("Skipping file that already exists")
			continue
		}

		n, err := copyFile(filepath.Join(opts.Source, name),
			filepath.Join(opts.Destination, name), src)
		if err != nil {
			return res, errors.WithContext(err, fmt.Sprintf("copy %q", name))
		}

		fmt.Fprintf(out, "  Copied: %s (%s)\n", name, humanize.Bytes(uint64(n)))
		res.CopiedFiles = append(res.CopiedFiles, name)
	}

	fmt.Fprintf(out, "\nDone! Copied %d new files.\n", res.Copied())
	return res, nil
}

func ensureDir(dir string) error {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	fi, err := fs.Stat(dir)
	if err != nil {
		return err
	}

	if !fi.IsDir() {
		return errors.ErrDestinationNotDir
	}
	return nil
}

// snapshotDestination returns the names of the regular files directly inside
// dir.
func snapshotDestination(dir string) (map[string]struct{}, error) {
	files, err := readRegularFiles(dir)
	if err != nil {
		return nil, err
	}

	names := map[string]struct{}{}
	for _, fi := range files {
		names[fi.Name()] = struct{}{}
	}
	return names, nil
}

func listCandidates(dir string, matcher Matcher) ([]os.FileInfo, error) {
	files, err := readRegularFiles(dir)
	if err != nil {
		return nil, err
	}

	var candidates []os.FileInfo
	for _, fi := range files {
		if matcher.Match(fi.Name()) {
			candidates = append(candidates, fi)
		}
	}
	return candidates, nil
}

// readRegularFiles lists the regular files directly inside dir, sorted by
// name. Symlinks are followed, and dangling symlinks are ignored.
func readRegularFiles(dir string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound{Path: dir}
		}
		return nil, err
	}

	var files []os.FileInfo
	for _, fi := range entries {
		if fi.Mode()&os.ModeSymlink != 0 {
			target, err := fs.Stat(filepath.Join(dir, fi.Name()))
			if err != nil {
				log.WithError(err).WithField("name", fi.Name()).Debug("Ignoring unreadable symlink")
				continue
			}
			fi = target
		}

		if fi.Mode().IsRegular() {
			files = append(files, fi)
		}
	}
	return files, nil
}
