// Package output serializes run manifests.
package output

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
)

// ManifestToJSON serializes a manifest.
func ManifestToJSON(m *models.Manifest, pretty bool) ([]byte, error) {
	return toJSON(m, pretty)
}

// ToJSON serializes any result value the same way as ManifestToJSON.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	return toJSON(v, pretty)
}

func toJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteFile writes v as pretty JSON to path, creating parent directories.
func WriteFile(path string, v interface{}) error {
	data, err := toJSON(v, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
