// Package config persists remote-storage settings and resolves them with
// environment overrides taking precedence over the stored file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override stored values.
const (
	EnvConnectionString = "AZURE_STORAGE_CONNECTION_STRING"
	EnvContainer        = "AZURE_STORAGE_CONTAINER"
	EnvPrefix           = "AZURE_STORAGE_PREFIX"
)

type azureSettings struct {
	ConnectionString string `yaml:"connection_string,omitempty"`
	Container        string `yaml:"container,omitempty"`
	DefaultPrefix    string `yaml:"default_prefix,omitempty"`
}

type settings struct {
	Azure  azureSettings `yaml:"azure"`
	ZipDir string        `yaml:"zip_dir,omitempty"`
}

// Store is a YAML-backed configuration store. Reads consult the environment
// first, then the loaded file.
type Store struct {
	path     string
	settings settings
	loaded   bool
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. A missing file is not an error; the store
// just starts empty.
func (s *Store) Load() error {
	if s.loaded {
		return nil
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.settings); err != nil {
		return fmt.Errorf("parse config %q: %w", s.path, err)
	}
	return nil
}

// Save writes the store atomically (temp file + rename).
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) ConnectionString() string {
	if v := os.Getenv(EnvConnectionString); v != "" {
		return v
	}
	return s.settings.Azure.ConnectionString
}

func (s *Store) SetConnectionString(v string) {
	s.settings.Azure.ConnectionString = v
}

func (s *Store) Container() string {
	if v := os.Getenv(EnvContainer); v != "" {
		return v
	}
	return s.settings.Azure.Container
}

func (s *Store) SetContainer(v string) {
	s.settings.Azure.Container = v
}

// DefaultPrefix honors an explicitly empty environment value, so exporting
// AZURE_STORAGE_PREFIX="" clears a stored prefix.
func (s *Store) DefaultPrefix() string {
	if v, ok := os.LookupEnv(EnvPrefix); ok {
		return v
	}
	return s.settings.Azure.DefaultPrefix
}

func (s *Store) SetDefaultPrefix(v string) {
	s.settings.Azure.DefaultPrefix = v
}

// ZipDir is the stored default archive directory, if any.
func (s *Store) ZipDir() string {
	return s.settings.ZipDir
}

func (s *Store) SetZipDir(v string) {
	s.settings.ZipDir = v
}

// Configured reports whether uploads can be attempted at all.
func (s *Store) Configured() bool {
	return s.ConnectionString() != "" && s.Container() != ""
}
