package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/pixr/internal/naming"
)

// imageExtensions are the inputs target-size can process (lowercase, with
// leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// IsCandidate reports whether path has a processable image extension and is
// not an output pixr wrote itself.
func IsCandidate(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return imageExtensions[strings.ToLower(filepath.Ext(base))] && !naming.IsDerived(path)
}

// Discover lists candidate images directly inside dir (no recursion),
// sorted lexicographically for deterministic processing order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if IsCandidate(path) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}
