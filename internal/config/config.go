package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	appLog "monthcal/internal/log"
)

// EnvPrefix is stripped from environment overrides, e.g.
// MONTHCAL_SNAPSHOT_CRON -> snapshot.cron.
const EnvPrefix = "MONTHCAL_"

// SnapshotConfig controls headless PNG capture of the month page.
type SnapshotConfig struct {
	// Cron is a cron-style schedule (e.g. "0 * * * *"). Empty disables
	// periodic capture while serving.
	Cron string `koanf:"cron" yaml:"cron" json:"cron"`
	// URL is the page to capture. Empty means the local server root, see
	// Config.SnapshotURL.
	URL string `koanf:"url" yaml:"url" json:"url"`
	// OutputPath is where the PNG is written and served from /preview.png.
	OutputPath string `koanf:"output_path" yaml:"output_path" json:"output_path"`
	Width      int    `koanf:"width" yaml:"width" json:"width"`
	Height     int    `koanf:"height" yaml:"height" json:"height"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the Web UI/API.
type BasicAuthConfig struct {
	Username string `koanf:"username" yaml:"username" json:"username"`
	Password string `koanf:"password" yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the Web UI and API.
	Listen string `koanf:"listen" yaml:"listen" json:"listen"`

	// EventsPath is the static event list loaded at startup. The format
	// follows the extension: .json, .yaml/.yml or .ics.
	EventsPath string `koanf:"events_path" yaml:"events_path" json:"events_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level" json:"log_level"`

	Snapshot SnapshotConfig `koanf:"snapshot" yaml:"snapshot" json:"snapshot"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `koanf:"basic_auth" yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:     "127.0.0.1:8080",
		EventsPath: "./data/events.json",
		LogLevel:   "info",
		Snapshot: SnapshotConfig{
			Cron:       "",
			URL:        "",
			OutputPath: "./cache/preview.png",
			Width:      1280,
			Height:     960,
		},
		BasicAuth: nil,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.EventsPath == "" {
		c.EventsPath = def.EventsPath
	}
	if _, ok := appLog.ParseLevel(c.LogLevel); !ok {
		c.LogLevel = def.LogLevel
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.Snapshot.OutputPath == "" {
		c.Snapshot.OutputPath = def.Snapshot.OutputPath
	}
	if c.Snapshot.Width <= 0 {
		c.Snapshot.Width = def.Snapshot.Width
	}
	if c.Snapshot.Height <= 0 {
		c.Snapshot.Height = def.Snapshot.Height
	}

	// An empty username or password disables auth rather than locking everyone out.
	if c.BasicAuth != nil && (c.BasicAuth.Username == "" || c.BasicAuth.Password == "") {
		c.BasicAuth = nil
	}
}

// SnapshotURL returns the page the snapshot job captures. Without an
// explicit URL it follows the current listen address.
func (c *Config) SnapshotURL() string {
	if c.Snapshot.URL != "" {
		return c.Snapshot.URL
	}
	return "http://" + c.Listen + "/"
}

// Load loads configuration from the given YAML path, layering
// built-in defaults, the file, and MONTHCAL_* environment variables.
//
// Behavior:
//   - If the file does not exist:
//   - write a default config with 0600 perms
//   - continue with defaults + environment
//   - If the file exists:
//   - merge it over the defaults
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			appLog.Error("failed to load config file", err, "config_path", path)
			return nil, err
		}
		// First run: create default config file.
		appLog.Info("config file not found, writing defaults", "config_path", path)
		if err := Save(path, DefaultConfig()); err != nil {
			// Keep going with defaults; the caller decides whether this is fatal.
			appLog.Error("failed to write default config", err, "config_path", path)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			return envKey(k), v
		},
	}), nil)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// sections are the nested config blocks reachable from the environment.
var sections = []string{"snapshot", "basic_auth"}

// envKey maps MONTHCAL_SNAPSHOT_OUTPUT_PATH to snapshot.output_path. Keys
// themselves contain underscores, so only a known section prefix is split.
func envKey(k string) string {
	k = strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(k, section+"_"); ok {
			return section + "." + rest
		}
	}
	return k
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".monthcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method that delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
