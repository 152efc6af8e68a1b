// Package config loads server settings from the environment and the list of
// watched places from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/spencer-p/sunelevation/pkg/solar"
)

// EnvPrefix prefixes every environment variable, e.g. SUNELEV_PORT.
const EnvPrefix = "SUNELEV"

// Config holds the server settings.
type Config struct {
	Port          string        `default:"8000"`
	Prefix        string        `default:"/"`
	LogLevel      string        `default:"info" split_words:"true"`
	CacheTTL      time.Duration `default:"1h" split_words:"true"`
	ReadTimeout   time.Duration `default:"15s" split_words:"true"`
	WriteTimeout  time.Duration `default:"15s" split_words:"true"`
	PlacesFile    string        `split_words:"true"`
	WatchInterval time.Duration `default:"1m" split_words:"true"`
}

// FromEnv reads an optional .env file in the working directory and then
// processes the environment. Variables already set win over the file.
func FromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}

var (
	errNoName        = errors.New("place name must not be empty")
	errDuplicateName = errors.New("duplicate place name")
)

// Place is an observer with a name.
type Place struct {
	Name           string `yaml:"name"`
	solar.Observer `yaml:",inline"`
}

type placesFile struct {
	Places []Place `yaml:"places"`
}

// LoadPlaces reads and validates a YAML list of places.
func LoadPlaces(path string) ([]Place, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read places: %w", err)
	}

	var f placesFile
	if err := yaml.Unmarshal(contents, &f); err != nil {
		return nil, fmt.Errorf("unmarshal places: %w", err)
	}

	if err := ValidatePlaces(f.Places); err != nil {
		return nil, err
	}
	return f.Places, nil
}

// ValidatePlaces checks every place has a unique name and a valid observer.
func ValidatePlaces(places []Place) error {
	seen := make(map[string]bool, len(places))
	for i, p := range places {
		if p.Name == "" {
			return fmt.Errorf("place %d: %w", i, errNoName)
		}
		if seen[p.Name] {
			return fmt.Errorf("place %q: %w", p.Name, errDuplicateName)
		}
		seen[p.Name] = true
		if err := p.Validate(); err != nil {
			return fmt.Errorf("place %q: %w", p.Name, err)
		}
	}
	return nil
}
