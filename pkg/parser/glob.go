package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
)

// ExpandGlobs expands chat-file paths and glob patterns into a sorted, deduplicated
// list. Directories are left out. A pattern matching nothing is kept as a literal path
// so that opening it later yields a readable error.
func ExpandGlobs(patterns []string) ([]string, error) {
	var result []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			result = append(result, pattern)
			continue
		}

		result = append(result, lo.Filter(matches, func(m string, _ int) bool {
			info, err := os.Stat(m)
			return err != nil || !info.IsDir()
		})...)
	}

	result = lo.Uniq(result)
	sort.Strings(result)
	return result, nil
}
