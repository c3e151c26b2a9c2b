package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Files kept inside a cart home.
const (
	ConfigFile = "config.yaml"
	DBFile     = "cart.db"
)

// HomeEnv names the environment variable that overrides the cart home.
const HomeEnv = "CART_HOME"

// HomeSource records which rule picked the cart home.
type HomeSource string

const (
	SourceFlag    HomeSource = "flag"
	SourceEnv     HomeSource = "env"
	SourceConfig  HomeSource = "config"
	SourceDefault HomeSource = "default"
)

// Home is the directory a cart and its per-home config live in.
type Home struct {
	Path   string
	Source HomeSource
}

// ConfigPath returns the per-home config.yaml path.
func (h Home) ConfigPath() string { return filepath.Join(h.Path, ConfigFile) }

// DBPath returns the path of the SQLite file holding the cart blob.
func (h Home) DBPath() string { return filepath.Join(h.Path, DBFile) }

// Ensure creates the home directory if it does not exist.
func (h Home) Ensure() error {
	if err := os.MkdirAll(h.Path, 0o755); err != nil {
		return fmt.Errorf("config.Home.Ensure: %w", err)
	}
	return nil
}

// LoadConfig reads the per-home config, see Load.
func (h Home) LoadConfig() (*CartConfig, error) { return Load(h.ConfigPath()) }

// ResolveHome picks the cart home. A non-empty override (the --cart-home flag)
// wins, then $CART_HOME, then the home persisted with PersistHome, then
// ~/.gomarketplace.
func ResolveHome(override string) Home {
	if override != "" {
		if p, err := normalizePath(override); err == nil {
			return Home{Path: p, Source: SourceFlag}
		}
		return Home{Path: override, Source: SourceFlag}
	}

	if env := os.Getenv(HomeEnv); env != "" {
		if p, err := normalizePath(env); err == nil {
			return Home{Path: p, Source: SourceEnv}
		}
	}

	persisted, ok, err := PersistedHome()
	if err != nil {
		slog.Warn("config: ignoring unreadable global config", "err", err)
	}
	if ok {
		return Home{Path: persisted, Source: SourceConfig}
	}

	userHome, _ := os.UserHomeDir()
	return Home{Path: filepath.Join(userHome, ".gomarketplace"), Source: SourceDefault}
}

// ---------------------------------------------------------------------------
// Global settings
// ---------------------------------------------------------------------------

// globalSettings is the machine-wide file at
// ~/.config/gomarketplace/config.yaml. It only remembers where the cart lives.
type globalSettings struct {
	CartHome string `yaml:"cart_home,omitempty"`
}

func globalSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gomarketplace", "config.yaml"), nil
}

func readGlobalSettings() (globalSettings, string, error) {
	var gs globalSettings
	path, err := globalSettingsPath()
	if err != nil {
		return gs, "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return gs, path, nil
	}
	if err != nil {
		return gs, path, err
	}
	if err := yaml.Unmarshal(data, &gs); err != nil {
		return gs, path, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return gs, path, nil
}

// writeGlobalSettings stores gs at path, removing the file when nothing is set.
func writeGlobalSettings(path string, gs globalSettings) error {
	if gs == (globalSettings{}) {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := yaml.Marshal(gs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}

// PersistedHome returns the cart home remembered in the global settings.
func PersistedHome() (string, bool, error) {
	gs, _, err := readGlobalSettings()
	if err != nil {
		return "", false, err
	}
	val := strings.TrimSpace(gs.CartHome)
	if val == "" {
		return "", false, nil
	}
	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// PersistHome remembers path as the cart home for later runs and returns it
// normalised.
func PersistHome(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}
	gs, cfgPath, err := readGlobalSettings()
	if err != nil {
		// Unreadable settings are overwritten.
		gs = globalSettings{}
		if cfgPath == "" {
			return "", err
		}
	}
	gs.CartHome = normalized
	if err := writeGlobalSettings(cfgPath, gs); err != nil {
		return "", fmt.Errorf("config.PersistHome: %w", err)
	}
	return normalized, nil
}

// ClearPersistedHome forgets the remembered cart home. It reports whether one
// was set.
func ClearPersistedHome() (bool, error) {
	gs, cfgPath, err := readGlobalSettings()
	if err != nil {
		return false, err
	}
	if gs.CartHome == "" {
		return false, nil
	}
	gs.CartHome = ""
	if err := writeGlobalSettings(cfgPath, gs); err != nil {
		return false, fmt.Errorf("config.ClearPersistedHome: %w", err)
	}
	return true, nil
}

// normalizePath expands ~ and environment variables and makes the path
// absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}
