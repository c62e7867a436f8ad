package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver hands out output paths so that two inputs never write
// the same file during one run: photo.jpg and photo.jpeg both target-size
// to photo_targeted.jpg, so the second gets photo_targeted-2.jpg. An input
// asking again receives the path it already holds. Safe for concurrent use.
type CollisionResolver struct {
	mu     sync.Mutex
	claims map[string]string // output path → input holding it
}

// NewCollisionResolver returns an empty resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{claims: make(map[string]string)}
}

// Resolve claims output (or its first free "-N" variant, N ≥ 2) for input.
func (cr *CollisionResolver) Resolve(input, output string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	candidate := output
	for n := 2; ; n++ {
		holder, taken := cr.claims[candidate]
		if !taken || holder == input {
			cr.claims[candidate] = input
			return candidate
		}
		candidate = variant(output, n)
	}
}

// variant inserts "-n" before the extension of path.
func variant(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), n, ext)
}
