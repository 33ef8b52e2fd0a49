//go:build !linux
// +build !linux

package copier

import (
	"os"
	"time"
)

func accessTime(fi os.FileInfo) time.Time {
	return fi.ModTime()
}
