package presets

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/forge/internal/domain"
)

// variablePattern matches {{FORGE_VAR_...}} placeholders
var variablePattern = regexp.MustCompile(`\{\{\s*(FORGE_VAR_[A-Z0-9_]+)\s*\}\}`)

// Loader handles loading and parsing of a presets file
type Loader struct {
	filePath string
}

// NewLoader creates a new presets loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the presets file
func (l *Loader) Load() (PresetsFile, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return PresetsFile{}, fmt.Errorf("failed to read presets file: %w", err)
	}

	data = expandTemplateVariables(data, os.Getenv)

	var file PresetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return PresetsFile{}, fmt.Errorf("failed to parse presets yaml: %w", err)
	}

	return file, nil
}

// LoadConfigFile reads a single configuration document. Omitted fields keep
// their default value, except the identity which is derived from the name.
func LoadConfigFile(path string) (ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigFile{}, fmt.Errorf("failed to read config file: %w", err)
	}

	data = expandTemplateVariables(data, os.Getenv)

	file := ConfigFile{Configuration: domain.Default()}
	file.Identity = domain.Identity{}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ConfigFile{}, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	return file, nil
}

// expandTemplateVariables replaces {{FORGE_VAR_...}} placeholders with the
// matching environment variable, quoted as a YAML string.
// Example: {{FORGE_VAR_LAUNCH_DATE}} -> "2025-12-31"
func expandTemplateVariables(data []byte, getenv func(string) string) []byte {
	return variablePattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := variablePattern.FindSubmatch(match)[1]
		value := getenv(string(name))
		return []byte(`"` + strings.ReplaceAll(value, `"`, `\"`) + `"`)
	})
}
