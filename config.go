package rbql

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the ambient, optional configuration loaded from
// rbqlcfg.yaml: default delimiter/encoding/output-separator and where to
// look for a bare join-file name. The engine itself never reads this file;
// only the CLI (cli/cmd) consults it, and it applies only Delimiter, and
// only when --delim is not given. The other keys are parsed but not used.
type FileConfig struct {
	Delimiter       string   `yaml:"delimiter"`
	Encoding        string   `yaml:"encoding"`
	OutputSeparator string   `yaml:"output_separator"`
	JoinSearchPath  []string `yaml:"join_search_path"`
}

// LoadConfig reads and parses a rbqlcfg.yaml file at path. A missing file is
// reported as an error the caller can choose to ignore (config is optional).
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return FileConfig{}, errors.New("no rbqlcfg.yaml found at " + path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Delim returns the configured delimiter byte, or def if unset or not
// exactly one byte (multi-byte delimiters are not supported, see spec.md §6).
func (c FileConfig) Delim(def byte) byte {
	if len(c.Delimiter) != 1 {
		return def
	}
	return c.Delimiter[0]
}
