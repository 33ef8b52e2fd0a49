package copier

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/sidkik/solvecopy/pkg/errors"
)

const modeBits = os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky

// copyFile copies the contents, permission bits, and timestamps of src to
// dst. It fails if dst already exists. If the copy fails after dst was
// created, dst is removed so that the partial file isn't mistaken for a
// complete copy by later runs.
func copyFile(src, dst string, srcInfo os.FileInfo) (int64, error) {
	in, err := fs.Open(src)
	if err != nil {
		return 0, errors.WithContext(err, "open source")
	}
	defer in.Close()

	mode := srcInfo.Mode() & modeBits
	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return 0, errors.WithContext(err, "create destination")
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		removePartial(dst)
		return 0, errors.WithContext(err, "write")
	}

	if err := out.Close(); err != nil {
		removePartial(dst)
		return 0, errors.WithContext(err, "close")
	}

	// The mode passed to OpenFile is filtered by the umask.
	if err := fs.Chmod(dst, mode); err != nil {
		return 0, errors.WithContext(err, "chmod")
	}

	if err := fs.Chtimes(dst, accessTime(srcInfo), srcInfo.ModTime()); err != nil {
		return 0, errors.WithContext(err, "chtimes")
	}
	return n, nil
}

func removePartial(path string) {
	if err := fs.Remove(path); err != nil {
		log.WithError(err).WithField("path", path).Warn(
			"Failed to clean up partially copied file. Delete it before the next run.")
	}
}
