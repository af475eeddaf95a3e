package data

import (
	"fmt"
	"path"
)

// FileRecord describes a single entry of a directory listing as reported
// by the card. Records are value types; once decoded they are never
// modified.
type FileRecord struct {
	// Directory the entry lives in, as reported by the device.
	Directory string

	// Base name of the file or directory.
	Name string

	// Size in bytes (0 for directories).
	Size uint64

	// Decoded attribute flags.
	Attr Attributes

	// Decoded FAT timestamp.
	Time DateTime
}

// Path returns the full remote path of the entry.
func (r FileRecord) Path() string {
	return path.Join(r.Directory, r.Name)
}

// IsDir returns true if the entry is a directory.
func (r FileRecord) IsDir() bool {
	return r.Attr.Directory
}

func (r FileRecord) String() string {
	if r.IsDir() {
		return fmt.Sprintf("%s/ | %s", r.Name, r.Time)
	}
	return fmt.Sprintf("%s | %d bytes | %s", r.Name, r.Size, r.Time)
}
