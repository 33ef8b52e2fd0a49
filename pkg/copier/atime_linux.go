package copier

import (
	"os"
	"syscall"
	"time"
)

// accessTime returns the last access time of the file, falling back to the
// modification time when the platform stat isn't available (e.g. for
// in-memory filesystems).
func accessTime(fi os.FileInfo) time.Time {
	if stat, ok := fi.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(stat.Atim.Sec), int64(stat.Atim.Nsec))
	}
	return fi.ModTime()
}
