package config

import (
	"fmt"
	"os"

	"github.com/biometric-hris/attendance-processor/internal/domain/attendance"
	"github.com/pelletier/go-toml/v2"
)

// layoutFile is the TOML document holding extra layout schemas:
//
//	[[layouts]]
//	name = "compact"
//	header_labels = ["emp no"]
//	min_day_columns = 5
//	block_marker = "No:"
//	id_column = 1
//	name_column = 4
type layoutFile struct {
	Layouts []attendance.LayoutSchema `toml:"layouts"`
}

// LoadLayouts reads layout schemas from a TOML file. An empty path yields
// no layouts.
func LoadLayouts(path string) ([]attendance.LayoutSchema, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	return ParseLayouts(data)
}

// ParseLayouts decodes and validates layout schemas. Names must be unique.
func ParseLayouts(data []byte) ([]attendance.LayoutSchema, error) {
	var file layoutFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse layout file: %w", err)
	}

	seen := make(map[string]bool, len(file.Layouts))
	for i, layout := range file.Layouts {
		if err := layout.Validate(); err != nil {
			return nil, fmt.Errorf("layout %d (%q): %w", i+1, layout.Name, err)
		}
		if seen[layout.Name] {
			return nil, fmt.Errorf("duplicate layout name %q", layout.Name)
		}
		seen[layout.Name] = true
	}

	return file.Layouts, nil
}
