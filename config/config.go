// Package config loads the geometry parameters (ImageParams, SinoParams,
// SVParams) that drive system-matrix construction from JSON or YAML files,
// giving cmd/sysmat-build a concrete file format to parse (the original C
// implementation took these as caller-populated structs with no file
// format of its own).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dyang37/go-sysmat/model"
)

// Geometry bundles the three parameter structs ComputeA needs. The
// reconstruction mask is not part of it; the caller resolves the mask
// separately, since a mask is a raw byte array rather than small scalar
// geometry.
type Geometry struct {
	Image model.ImageParams `json:"image" yaml:"image"`
	Sino  model.SinoParams  `json:"sino" yaml:"sino"`
	SV    model.SVParams    `json:"sv" yaml:"sv"`
}

// Load reads a Geometry from path, dispatching on its extension: ".yaml" or
// ".yml" decodes YAML, anything else is treated as JSON.
func Load(path string) (Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Geometry{}, fmt.Errorf("%w: %s: %v", model.ErrIO, path, err)
	}

	var g Geometry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &g); err != nil {
			return Geometry{}, fmt.Errorf("%w: %s: %v", model.ErrShape, path, err)
		}
	default:
		if err := json.Unmarshal(data, &g); err != nil {
			return Geometry{}, fmt.Errorf("%w: %s: %v", model.ErrShape, path, err)
		}
	}
	return g, nil
}
