package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Case is one scanned payload of a corpus together with the values a
// parser is expected to extract. An empty Format marks a payload that no
// parser accepts; Error then holds a substring of the failure.
type Case struct {
	Name        string `yaml:"name"`
	Input       string `yaml:"input"`
	Format      string `yaml:"format"`
	ProductCode string `yaml:"product_code"`
	Batch       string `yaml:"batch"`
	Serial      string `yaml:"serial"`
	Expiration  string `yaml:"expiration"`
	Production  string `yaml:"production"`
	Error       string `yaml:"error"`
}

// Corpus is a named list of cases stored in testdata/<name>.yaml.
type Corpus struct {
	Description string `yaml:"description"`
	Cases       []Case `yaml:"cases"`
}

// LoadCorpus reads testdata/<name>.yaml.
func LoadCorpus(t *testing.T, name string) Corpus {
	t.Helper()

	path := filepath.Join(GetTestDataDir(t), name+".yaml")

	data, err := os.ReadFile(path) //nolint:gosec // G304: Reading test fixture files with controlled paths
	require.NoError(t, err, "Failed to read corpus file: %s", path)

	var corpus Corpus
	require.NoError(t, yaml.Unmarshal(data, &corpus), "Failed to unmarshal corpus YAML")
	require.NotEmpty(t, corpus.Cases, "Corpus %s has no cases", name)

	return corpus
}
