package source

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects how candidate datasets are enumerated.
type Mode string

const (
	ModeUpload Mode = "upload"
	ModeFolder Mode = "folder"
)

// ParseMode normalizes a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upload", "uploads", "":
		return ModeUpload, nil
	case "folder", "dir", "directory":
		return ModeFolder, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (use upload or folder)", s)
	}
}

// Candidate is a named dataset that has not been parsed yet.
type Candidate struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Source produces the candidate datasets for one render pass.
type Source interface {
	Mode() Mode
	Candidates() ([]Candidate, error)
}

// IsCSV reports whether filename carries a .csv extension.
func IsCSV(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".csv")
}

// Upload enumerates files submitted through a multi-file upload control.
type Upload struct {
	Files []*multipart.FileHeader

	skipped []string
}

func (u *Upload) Mode() Mode { return ModeUpload }

// Candidates returns the submitted .csv files in submission order.
// Non-CSV submissions are skipped and reported by Skipped.
func (u *Upload) Candidates() ([]Candidate, error) {
	u.skipped = nil
	out := make([]Candidate, 0, len(u.Files))
	for _, fh := range u.Files {
		if fh == nil {
			continue
		}
		if !IsCSV(fh.Filename) {
			u.skipped = append(u.skipped, fh.Filename)
			continue
		}
		fh := fh
		out = append(out, Candidate{
			Name: fh.Filename,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return out, nil
}

// Skipped lists uploads ignored by the last Candidates call.
func (u *Upload) Skipped() []string { return u.skipped }

// Folder enumerates every .csv file of a directory.
type Folder struct {
	Dir string
}

func (f Folder) Mode() Mode { return ModeFolder }

// Candidates lists the directory on every call; entries come back in
// lexical order as returned by os.ReadDir.
func (f Folder) Candidates() ([]Candidate, error) {
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		return nil, fmt.Errorf("list data dir: %w", err)
	}
	var out []Candidate
	for _, e := range entries {
		if e.IsDir() || !IsCSV(e.Name()) {
			continue
		}
		path := filepath.Join(f.Dir, e.Name())
		out = append(out, Candidate{
			Name: e.Name(),
			Open: func() (io.ReadCloser, error) { return os.Open(path) },
		})
	}
	return out, nil
}

// Paths enumerates explicit file paths, named by their base name.
// Two paths sharing a base name collide exactly like two uploads
// sharing a filename.
type Paths struct {
	Files []string
}

func (p Paths) Mode() Mode { return ModeUpload }

func (p Paths) Candidates() ([]Candidate, error) {
	out := make([]Candidate, 0, len(p.Files))
	for _, path := range p.Files {
		path := path
		out = append(out, Candidate{
			Name: filepath.Base(path),
			Open: func() (io.ReadCloser, error) { return os.Open(path) },
		})
	}
	return out, nil
}

// Names returns the distinct candidate names in first-seen order.
func Names(cands []Candidate) []string {
	seen := make(map[string]struct{}, len(cands))
	names := make([]string, 0, len(cands))
	for _, c := range cands {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}
	return names
}
