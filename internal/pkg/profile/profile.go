package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// File is a cleaner profile definition: a registered profile name plus the
// overrides applied on top of it.
//
//	profile: v1
//	overrides:
//	  preserve_strings: [Zwoozh]
//	  character_replacements:
//	    "&": " og "
type File struct {
	Profile   string                 `yaml:"profile" toml:"profile" json:"profile"`
	Overrides map[string]interface{} `yaml:"overrides" toml:"overrides" json:"overrides"`
}

// Load reads a profile file. The format follows the extension: .yaml, .yml,
// .toml or .json.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes profile data in the format named by ext
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, apperrors.FileParseError(err, "YAML")
		}
	case "toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, apperrors.FileParseError(err, "TOML")
		}
	case "json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, apperrors.FileParseError(err, "JSON")
		}
	default:
		return nil, apperrors.UnsupportedFormat(ext)
	}

	if f.Overrides == nil {
		f.Overrides = make(map[string]interface{})
	}
	return &f, nil
}

// Resolve returns the profile name and overrides to use. An explicit profile
// name wins over the file's; overrides always come from the file.
func Resolve(profile, path string) (string, map[string]interface{}, error) {
	if path == "" {
		return profile, nil, nil
	}
	f, err := Load(path)
	if err != nil {
		return "", nil, err
	}
	if profile == "" {
		profile = f.Profile
	}
	return profile, f.Overrides, nil
}
