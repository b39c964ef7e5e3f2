package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"supplierfront/internal/domain"
)

// Config models supplierfront.yml.
type Config struct {
	Snapshot string `yaml:"snapshot"`
	Content  string `yaml:"content"`
	Supplier struct {
		ID    int    `yaml:"id"`
		Email string `yaml:"email"`
	} `yaml:"supplier"`
	Frameworks struct {
		AllowedStatuses []domain.FrameworkStatus `yaml:"allowed_statuses"`
		ReuseExclude    []string                 `yaml:"reuse_exclude"`
	} `yaml:"frameworks"`
}

// Load reads and validates config from workspace.
func Load(workspace string) (*Config, error) {
	path := Path(workspace)
	cfg, err := FromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config %s not found; create one with sf config init", path)
	}
	return cfg, err
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Snapshot == "" {
		return fmt.Errorf("config.snapshot is required")
	}
	if c.Supplier.ID < 0 {
		return fmt.Errorf("config.supplier.id must not be negative")
	}
	for _, s := range c.Frameworks.AllowedStatuses {
		if !s.Valid() {
			return fmt.Errorf("config.frameworks.allowed_statuses has unknown status %q", s)
		}
	}
	for _, slug := range c.Frameworks.ReuseExclude {
		if slug == "" {
			return fmt.Errorf("config.frameworks.reuse_exclude contains empty slug")
		}
	}
	return nil
}

// Resolve makes relative data paths absolute against the workspace.
func (c *Config) Resolve(workspace string) {
	if workspace == "" {
		workspace = "."
	}
	if c.Snapshot != "" && !filepath.IsAbs(c.Snapshot) {
		c.Snapshot = filepath.Join(workspace, c.Snapshot)
	}
	if c.Content != "" && !filepath.IsAbs(c.Content) {
		c.Content = filepath.Join(workspace, c.Content)
	}
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, "supplierfront.yml")
}

// GenerateDefault returns default config YAML.
func GenerateDefault(supplierID int) string {
	return fmt.Sprintf(defaultTemplate, supplierID)
}

// LoadOptional returns nil,nil if the config file does not exist.
func LoadOptional(workspace string) (*Config, error) {
	cfg, err := FromFile(Path(workspace))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return cfg, err
}

// Default returns the default Config for a supplier, validated the same way
// a loaded file is.
func Default(supplierID int) (*Config, error) {
	return FromYAML([]byte(GenerateDefault(supplierID)))
}

// FromYAML parses and validates config from raw YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromFile reads YAML config from the given path. A missing file is
// reported with an error matching fs.ErrNotExist.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

const defaultTemplate = `snapshot: snapshot.yml
content: content.yml

supplier:
  id: %d

frameworks:
  allowed_statuses: [open, pending, standstill, live]
  reuse_exclude: []
`
