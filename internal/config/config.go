package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	schemaVersion = 3
	envPrefix     = "DEBUGLOCALE_"
	fileName      = "debuglocale.conf"
)

const (
	VariantDebug   = "debug"
	VariantRelease = "release"
)

// App.Variant is only set when the user pins it. Left empty, the variant
// stamped into the binary applies.
type App struct {
	Variant string `json:"variant,omitempty"`
}

type Locale struct {
	Options  []string `json:"options"`
	Strict   bool     `json:"strict"`
	Fallback string   `json:"fallback"`
}

type Preferences struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

type Logging struct {
	FilePath       string `json:"file_path"`
	MaxSizeMB      int    `json:"max_size_mb"`
	RetentionDays  int    `json:"retention_days"`
	MaxBackupFiles int    `json:"max_backup_files"`
	Debug          bool   `json:"debug"`
}

type Config struct {
	Version     int         `json:"version"`
	App         App         `json:"app"`
	Locale      Locale      `json:"locale"`
	Preferences Preferences `json:"preferences"`
	Logging     Logging     `json:"logging"`
}

// LoadOrCreate loads the config file, creating or migrating it as needed.
// stamped is the build variant; it applies unless app.variant is pinned.
func LoadOrCreate(stamped string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	base, err := resolveBaseDir()
	if err != nil {
		return Config{}, err
	}
	path := filepath.Join(base, fileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := defaults(base)
		if err := save(path, cfg); err != nil {
			return Config{}, err
		}
		return loadWithKoanf(path, base, stamped)
	}

	cfg, err := loadFromPath(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err = migrate(cfg, base)
	if err != nil {
		return Config{}, err
	}
	cfg = applyDefaults(cfg, base)
	if err := save(path, cfg); err != nil {
		return Config{}, err
	}
	return loadWithKoanf(path, base, stamped)
}

// loadDotEnv reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func resolveBaseDir() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv(envPrefix + "HOME")); explicit != "" {
		return explicit, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".debuglocale"), nil
}

func loadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadWithKoanf(path, base, stamped string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
		return Config{}, err
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(key string) string {
		n := strings.TrimPrefix(key, envPrefix)
		n = strings.ToLower(n)
		n = strings.ReplaceAll(n, "__", ".")
		return n
	}), nil); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return Config{}, err
	}
	cfg = applyDefaults(cfg, base)
	cfg.App.Variant = effectiveVariant(cfg.App.Variant, stamped)
	return cfg, nil
}

// effectiveVariant prefers a pinned variant over the build stamp.
func effectiveVariant(pinned, stamped string) string {
	if v := strings.ToLower(strings.TrimSpace(pinned)); v != "" {
		return v
	}
	if v := strings.ToLower(strings.TrimSpace(stamped)); v != "" {
		return v
	}
	return VariantDebug
}

func defaults(base string) Config {
	return Config{
		Version: schemaVersion,
		Locale: Locale{
			Options:  []string{"", "en", "fr", "de", "es", "ja"},
			Strict:   false,
			Fallback: "en-US",
		},
		Preferences: Preferences{
			Backend: "file",
			Path:    filepath.Join(base, "prefs", "debug_settings.json"),
		},
		Logging: Logging{
			FilePath:       filepath.Join(base, "logs", "debuglocale.log"),
			MaxSizeMB:      10,
			RetentionDays:  7,
			MaxBackupFiles: 5,
		},
	}
}

func applyDefaults(cfg Config, base string) Config {
	d := defaults(base)
	if cfg.Version == 0 {
		cfg.Version = d.Version
	}
	cfg.App.Variant = strings.ToLower(strings.TrimSpace(cfg.App.Variant))
	if len(cfg.Locale.Options) == 0 {
		cfg.Locale.Options = d.Locale.Options
	}
	if strings.TrimSpace(cfg.Locale.Fallback) == "" {
		cfg.Locale.Fallback = d.Locale.Fallback
	}
	cfg.Preferences.Backend = strings.ToLower(strings.TrimSpace(cfg.Preferences.Backend))
	if cfg.Preferences.Backend == "" {
		cfg.Preferences.Backend = d.Preferences.Backend
	}
	if strings.TrimSpace(cfg.Preferences.Path) == "" {
		cfg.Preferences.Path = defaultPrefsPath(base, cfg.Preferences.Backend)
	}
	if strings.TrimSpace(cfg.Logging.FilePath) == "" {
		cfg.Logging.FilePath = d.Logging.FilePath
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		cfg.Logging.MaxSizeMB = d.Logging.MaxSizeMB
	}
	if cfg.Logging.RetentionDays <= 0 {
		cfg.Logging.RetentionDays = d.Logging.RetentionDays
	}
	if cfg.Logging.MaxBackupFiles <= 0 {
		cfg.Logging.MaxBackupFiles = d.Logging.MaxBackupFiles
	}
	return cfg
}

func defaultPrefsPath(base, backend string) string {
	if backend == "sqlite" {
		return filepath.Join(base, "prefs", "debug_settings.db")
	}
	return filepath.Join(base, "prefs", "debug_settings.json")
}

func save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Logging.FilePath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
