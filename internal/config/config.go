// Package config handles loading flow's TOML configuration files.
//
// Settings come from the global file (~/.config/flow/config.toml, or
// $FLOW_CONFIG) and the project file (.flow.toml at the scope root). Keys set
// in the project file win over the global file, even when set to their zero
// value.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"

	"github.com/amonks/flow/internal/paths"
	internalstrings "github.com/amonks/flow/internal/strings"
	"github.com/amonks/flow/internal/validation"
	"github.com/amonks/flow/todo"
)

// ProjectFile is the name of the per-project config file.
const ProjectFile = ".flow.toml"

const (
	// EnvDataDir overrides [store] data-dir.
	EnvDataDir = "FLOW_DATA_DIR"

	// EnvConfig overrides the global config file path.
	EnvConfig = "FLOW_CONFIG"
)

const (
	DefaultRefreshInterval = 250 * time.Millisecond
	MinRefreshInterval     = 50 * time.Millisecond
	MaxRefreshInterval     = 5 * time.Second
)

// ErrInvalidConfig is returned when a config value cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// ErrConfigExists is returned by Write when the file exists and force is off.
var ErrConfigExists = errors.New("config file already exists")

// Discovery selects how the project scope is found.
type Discovery string

const (
	// DiscoveryMarkers walks up looking for .git or .jj entries.
	DiscoveryMarkers Discovery = "markers"

	// DiscoveryGit asks `git rev-parse --show-toplevel`.
	DiscoveryGit Discovery = "git"

	// DiscoveryJJ asks `jj workspace root`.
	DiscoveryJJ Discovery = "jj"
)

// ValidDiscoveries returns the supported discovery modes.
func ValidDiscoveries() []Discovery {
	return []Discovery{DiscoveryMarkers, DiscoveryGit, DiscoveryJJ}
}

// Config represents a flow configuration file.
type Config struct {
	Store   Store   `toml:"store"`
	Task    Task    `toml:"task"`
	UI      UI      `toml:"ui"`
	Context Context `toml:"context"`
}

// Store contains storage configuration.
type Store struct {
	// DataDir is the directory holding flow.db.
	DataDir string `toml:"data-dir"`

	// StrictIDs makes mutations on unknown ids fail instead of doing nothing.
	StrictIDs bool `toml:"strict-ids"`
}

// Task contains task defaults.
type Task struct {
	DefaultPriority string `toml:"default-priority"`
}

// UI contains interactive view and rendering configuration.
type UI struct {
	// RefreshInterval is how often the interactive view redraws without input.
	RefreshInterval Duration `toml:"refresh-interval"`

	// Markdown renders note bodies as markdown on terminals.
	Markdown bool `toml:"markdown"`
}

// Context contains scope discovery configuration.
type Context struct {
	Discovery Discovery `toml:"discovery"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration struct {
	time.Duration
}

// MarshalText encodes the duration as a string like "250ms".
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("%w: refresh-interval %q: %v", ErrInvalidConfig, string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no files set anything.
func Default() *Config {
	return &Config{
		Task:    Task{DefaultPriority: strings.ToLower(todo.DefaultPriority.String())},
		UI:      UI{RefreshInterval: Duration{DefaultRefreshInterval}, Markdown: true},
		Context: Context{Discovery: DiscoveryMarkers},
	}
}

// GlobalPath returns the global config file path.
func GlobalPath() (string, error) {
	return paths.ResolveWithDefault(os.Getenv(EnvConfig), paths.DefaultConfigFile)
}

// Load loads configuration from the global config file and, when scopeRoot
// is not empty, the project file inside it. Missing files are not an error.
func Load(scopeRoot string) (*Config, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta := &Config{}, toml.MetaData{}
	if scopeRoot != "" {
		projectCfg, projectMeta, err = loadConfigFile(filepath.Join(scopeRoot, ProjectFile))
		if err != nil {
			return nil, err
		}
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if dir := strings.TrimSpace(os.Getenv(EnvDataDir)); dir != "" {
		merged.Store.DataDir = dir
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	merged := Default()

	pick := func(section, key string) (fromProject, fromGlobal bool) {
		fromProject = projectMeta.IsDefined(section, key)
		return fromProject, !fromProject && globalMeta.IsDefined(section, key)
	}

	if p, g := pick("store", "data-dir"); p {
		merged.Store.DataDir = strings.TrimSpace(projectCfg.Store.DataDir)
	} else if g {
		merged.Store.DataDir = strings.TrimSpace(globalCfg.Store.DataDir)
	}
	if p, g := pick("store", "strict-ids"); p {
		merged.Store.StrictIDs = projectCfg.Store.StrictIDs
	} else if g {
		merged.Store.StrictIDs = globalCfg.Store.StrictIDs
	}
	if p, g := pick("task", "default-priority"); p {
		merged.Task.DefaultPriority = internalstrings.NormalizeLowerTrimSpace(projectCfg.Task.DefaultPriority)
	} else if g {
		merged.Task.DefaultPriority = internalstrings.NormalizeLowerTrimSpace(globalCfg.Task.DefaultPriority)
	}
	if p, g := pick("ui", "refresh-interval"); p {
		merged.UI.RefreshInterval = projectCfg.UI.RefreshInterval
	} else if g {
		merged.UI.RefreshInterval = globalCfg.UI.RefreshInterval
	}
	if p, g := pick("ui", "markdown"); p {
		merged.UI.Markdown = projectCfg.UI.Markdown
	} else if g {
		merged.UI.Markdown = globalCfg.UI.Markdown
	}
	if p, g := pick("context", "discovery"); p {
		merged.Context.Discovery = Discovery(internalstrings.NormalizeLowerTrimSpace(string(projectCfg.Context.Discovery)))
	} else if g {
		merged.Context.Discovery = Discovery(internalstrings.NormalizeLowerTrimSpace(string(globalCfg.Context.Discovery)))
	}

	return merged
}

// Validate reports values that cannot be used.
func (c *Config) Validate() error {
	if c.Task.DefaultPriority != "" {
		if _, err := todo.ParsePriority(c.Task.DefaultPriority); err != nil {
			return fmt.Errorf("%w: task.default-priority: %w", ErrInvalidConfig, err)
		}
	}
	switch c.Context.Discovery {
	case "", DiscoveryMarkers, DiscoveryGit, DiscoveryJJ:
	default:
		return fmt.Errorf("context.discovery: %w", validation.FormatInvalidValueError(ErrInvalidConfig, c.Context.Discovery, ValidDiscoveries()))
	}
	return nil
}

// DataDir returns the directory holding the database, expanding a leading ~.
func (c *Config) DataDir() (string, error) {
	dir := c.Store.DataDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := paths.HomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return paths.ResolveWithDefault(dir, paths.DefaultDataDir)
}

// MissingIDs returns the store policy for mutations on unknown ids.
func (c *Config) MissingIDs() todo.MissingIDPolicy {
	if c.Store.StrictIDs {
		return todo.RejectMissing
	}
	return todo.IgnoreMissing
}

// DefaultPriority returns the priority given to new tasks.
func (c *Config) DefaultPriority() todo.Priority {
	priority, err := todo.ParsePriority(c.Task.DefaultPriority)
	if err != nil {
		return todo.DefaultPriority
	}
	return priority
}

// RefreshInterval returns the idle redraw interval clamped to a sane range.
func (c *Config) RefreshInterval() time.Duration {
	interval := c.UI.RefreshInterval.Duration
	switch {
	case interval <= 0:
		return DefaultRefreshInterval
	case interval < MinRefreshInterval:
		return MinRefreshInterval
	case interval > MaxRefreshInterval:
		return MaxRefreshInterval
	default:
		return interval
	}
}

// Encode renders the config as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores cfg at path atomically. It refuses to replace an existing
// file unless force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat config file %s: %w", path, err)
		}
	}

	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}
