package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

// ToYaml formats the configuration into YAML and returns the bytes.
func ToYaml(c Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// ToYamlFile writes the configuration to a YAML file.
func ToYamlFile(c Config, path string) error {
	b, err := ToYaml(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}

// ToYamlTempFile writes the configuration to a YAML temp. file.
// Returns:
// - "path" is the path of the file.
// - "cleanup" can be called to remove the temporary file.
func ToYamlTempFile(c Config, name string) (path string, cleanup func()) {
	tmpdir, err := os.MkdirTemp("", "")
	if err != nil {
		panic(err)
	}

	cleanup = func() {
		os.RemoveAll(tmpdir)
	}

	p := filepath.Join(tmpdir, name)
	err = ToYamlFile(c, p)
	if err != nil {
		panic(err)
	}
	return p, cleanup
}

// Parse parses a YAML doc into the given Config instance.
func Parse(raw []byte, conf *Config) error {
	err := yaml.Unmarshal(raw, conf)
	if err != nil {
		return err
	}
	return nil
}

// ParseFile parses a balancer config file, which is formatted in YAML,
// and returns a Config struct.
func ParseFile(relpath string, conf *Config) error {
	if relpath == "" {
		return nil
	}

	// Try to get absolute path. If it fails, fall back to relative path.
	path, abserr := filepath.Abs(relpath)
	if abserr != nil {
		path = relpath
	}

	// Read file
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config at path %s: \n%v", path, err)
	}

	// Parse file
	err = Parse(source, conf)
	if err != nil {
		return fmt.Errorf("failed to parse config at path %s: \n%v", path, err)
	}
	return nil
}
