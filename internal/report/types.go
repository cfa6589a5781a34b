// Package report holds the JSON documents printed by the --json flag of the
// scan and export commands.
package report

// Version is the current schema version.
const Version = 1

// Scan summarises a catalog.
type Scan struct {
	Version     int       `json:"version"`
	GeneratedAt string    `json:"generated_at"`
	Root        string    `json:"root"`
	Folders     []string  `json:"folders"`
	Images      []Image   `json:"images"`
	Stats       ScanStats `json:"stats"`
}

// Image lists the folders one image is available in.
type Image struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
}

// ScanStats aggregates catalog counts.
type ScanStats struct {
	Folders int `json:"folders"`
	Images  int `json:"images"`
	Files   int `json:"files"`  // image files across all folders
	Sparse  int `json:"sparse"` // images missing from at least one folder
}

// Export summarises one archive write.
type Export struct {
	Version     int     `json:"version"`
	GeneratedAt string  `json:"generated_at"`
	Path        string  `json:"path"`
	Written     int     `json:"written"`
	Bytes       int64   `json:"bytes"`
	Entries     []Entry `json:"entries"`
	Skipped     []Skip  `json:"skipped,omitempty"`
}

// Entry is one file inside the archive.
type Entry struct {
	Name   string `json:"name"`
	Folder string `json:"folder"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // 16 hex chars of xxhash64
}

// Skip is a selection that was not exported.
type Skip struct {
	Image  string `json:"image"`
	Folder string `json:"folder"`
	Reason string `json:"reason"`
}
