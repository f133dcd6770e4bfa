package site

import (
	"fmt"
	"os"
	"regexp"
	"sort"
)

var editionDirRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ListEditions scans the output directory for edition directories and
// returns their date names in reverse-chronological order. The archive is
// never persisted anywhere else; the filesystem is the source of truth.
func (a *Assembler) ListEditions() ([]string, error) {
	entries, err := os.ReadDir(a.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan output dir: %w", err)
	}

	var dates []string
	for _, e := range entries {
		if e.IsDir() && editionDirRe.MatchString(e.Name()) {
			dates = append(dates, e.Name())
		}
	}

	// ISO dates sort lexicographically; newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}
