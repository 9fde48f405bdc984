// Package time contains time related helpers
package time

import "time"

const (
	// ArchiveLayout is the created_at format used in Twitter archive records
	ArchiveLayout = "Mon Jan 02 15:04:05 -0700 2006"

	// ISOLayout renders ISO-8601 with a numeric offset, never "Z"
	ISOLayout = "2006-01-02T15:04:05-07:00"
)

// ParseArchive parses an archive created_at value, keeping its offset
func ParseArchive(s string) (time.Time, error) {
	return time.Parse(ArchiveLayout, s)
}

// ISO renders t in ISOLayout
func ISO(t time.Time) string { return t.Format(ISOLayout) }
