package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"eantienda/domain/layout"
	"eantienda/internal/errors"
)

// LoadLayouts reads layout presets from a YAML file. Keys missing from the
// file keep their built-in values; an empty path returns the defaults.
func LoadLayouts(path string) (layout.Presets, error) {
	presets := layout.DefaultPresets()
	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Presets{}, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to read layout file %s", path))
	}
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return layout.Presets{}, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to parse layout file %s", path))
	}
	if err := presets.Validate(); err != nil {
		return layout.Presets{}, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return presets, nil
}
