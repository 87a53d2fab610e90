package rbql_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbql-go/rbql"
)

func TestLoadConfig_MissingFileIsError(t *testing.T) {
	_, err := rbql.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rbqlcfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("delimiter: \",\"\nencoding: utf8\noutput_separator: \"\\n\"\n"), 0o644))

	cfg, err := rbql.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, byte(','), cfg.Delim('\t'))
	require.Equal(t, "utf8", cfg.Encoding)
}

func TestFileConfig_DelimFallsBackWhenUnset(t *testing.T) {
	var cfg rbql.FileConfig
	require.Equal(t, byte('\t'), cfg.Delim('\t'))
}
