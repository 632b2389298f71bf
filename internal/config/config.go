package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultConfigFileName = "config.toml"
)

var ErrUnknownBackend = errors.New("config: unknown store backend")

type Runtime struct {
	StorePath            string `toml:"store_path"`
	StoreBackend         string `toml:"store_backend"`
	Timezone             string `toml:"timezone"`
	WidgetPath           string `toml:"widget_path"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
	Haptics              bool   `toml:"haptics"`
	SchedulerBuffer      int    `toml:"scheduler_buffer"`
	RefreshSeconds       int    `toml:"refresh_seconds"`
	LogFile              string `toml:"log_file"`
	NoopCollaborators    bool   `toml:"noop_collaborators"`
}

func DefaultRuntime() Runtime {
	return Runtime{
		StorePath:       filepath.Join(".today", "tasks.json"),
		StoreBackend:    BackendJSON,
		WidgetPath:      filepath.Join(".today", "widget.txt"),
		Haptics:         true,
		SchedulerBuffer: 64,
		RefreshSeconds:  60,
	}
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/today/config.toml, falling back
// to the user config dir and finally the working directory.
func ResolveConfigPath() string {
	if v := strings.TrimSpace(os.Getenv("TODAY_CONFIG")); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "today", DefaultConfigFileName)
}

// Load builds the runtime config from defaults, then the TOML file at path
// if it exists, then TODAY_* environment variables.
func Load(path string) (Runtime, error) {
	cfg := DefaultRuntime()
	if strings.TrimSpace(path) != "" {
		fromFile, err := loadFile(path, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = fromFile
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, base Runtime) (Runtime, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, err
	}
	cfg := base
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Write stores cfg as TOML at path.
func Write(path string, cfg Runtime) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func FromEnv(base Runtime) Runtime {
	cfg := base
	if v, ok := getEnvString("TODAY_STORE_PATH"); ok {
		cfg.StorePath = v
	}
	if v, ok := getEnvString("TODAY_STORE_BACKEND"); ok {
		cfg.StoreBackend = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODAY_TIMEZONE"); ok {
		cfg.Timezone = v
	}
	if v, ok := getEnvString("TODAY_WIDGET_PATH"); ok {
		cfg.WidgetPath = v
	}
	if v, ok := getEnvBool("TODAY_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool("TODAY_HAPTICS"); ok {
		cfg.Haptics = v
	}
	if v, ok := getEnvInt("TODAY_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("TODAY_REFRESH_SECONDS"); ok && v > 0 {
		cfg.RefreshSeconds = v
	}
	if v, ok := getEnvString("TODAY_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("TODAY_NOOP_COLLABORATORS"); ok {
		cfg.NoopCollaborators = v
	}
	return cfg
}

func (c Runtime) Validate() error {
	switch c.StoreBackend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.StoreBackend)
	}
	if strings.TrimSpace(c.StorePath) == "" {
		return errors.New("config: store path is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; empty means the machine's local zone.
func (c Runtime) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Runtime) RefreshInterval() time.Duration {
	if c.RefreshSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RefreshSeconds) * time.Second
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
