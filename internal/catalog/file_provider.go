package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileProvider loads the catalog from a YAML document on disk.
// The file is parsed and validated once; later calls return the cached catalog.
type FileProvider struct {
	path    string
	catalog *Catalog
}

// NewFileProvider reads and validates the catalog at path
func NewFileProvider(path string) (*FileProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	return &FileProvider{path: path, catalog: c}, nil
}

// Catalog returns the loaded catalog
func (p *FileProvider) Catalog(ctx context.Context) (*Catalog, error) {
	return p.catalog, nil
}

// Path returns the file the catalog was read from
func (p *FileProvider) Path() string {
	return p.path
}

// Parse decodes a YAML catalog and validates it
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// Marshal encodes the catalog as YAML, the format accepted by Parse
func Marshal(c *Catalog) ([]byte, error) {
	return yaml.Marshal(c)
}
