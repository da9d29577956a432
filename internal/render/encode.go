package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/shiplog/internal/model"
	"gopkg.in/yaml.v3"
)

// YAML encodes the release list as a YAML document.
func YAML(releases []model.Release, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(releases); err != nil {
		return fmt.Errorf("encoding releases as YAML: %w", err)
	}
	return enc.Close()
}

// JSON encodes the release list as indented JSON.
func JSON(releases []model.Release, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(releases); err != nil {
		return fmt.Errorf("encoding releases as JSON: %w", err)
	}
	return nil
}
