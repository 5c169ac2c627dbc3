package metadata

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

const taxonomyFileName = "taxonomy.txt"

//go:embed taxonomy.txt
var bundledTaxonomy embed.FS

// Taxonomy returns Google product categories from taxonomy file, one per non-empty line.
// Missing or empty file results in empty list.
func (s *Service) Taxonomy() ([]string, error) {
	content, err := fs.ReadFile(s.taxonomy, s.taxonomyFile)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("can't read taxonomy: %w", err)
	}

	categories := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		categories = append(categories, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("can't read taxonomy: %w", err)
	}

	return categories, nil
}
