package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type migrationStep struct {
	from int
	to   int
	run  func(Config) Config
}

var migrationPlan = []migrationStep{
	{from: 2, to: 3, run: unpinStampedVariant},
}

func migrate(cfg Config, base string) (Config, error) {
	// Hand-written files without a version are read as the current layout.
	if cfg.Version == 0 {
		cfg.Version = schemaVersion
	}
	if cfg.Version > schemaVersion {
		return Config{}, fmt.Errorf("config version %d is newer than supported %d", cfg.Version, schemaVersion)
	}
	if cfg.Version == schemaVersion {
		return cfg, nil
	}

	backupPath := filepath.Join(base, fmt.Sprintf("%s.v%d.%s.bak", fileName, cfg.Version, time.Now().UTC().Format("20060102-150405")))
	if err := writeBackup(cfg, backupPath); err != nil {
		return Config{}, fmt.Errorf("back up config before migration: %w", err)
	}

	for cfg.Version < schemaVersion {
		step, ok := stepFrom(cfg.Version)
		if !ok {
			return Config{}, fmt.Errorf("no migration from config version %d", cfg.Version)
		}
		cfg = step.run(cfg)
		cfg.Version = step.to
	}
	return cfg, nil
}

func stepFrom(v int) (migrationStep, bool) {
	for _, s := range migrationPlan {
		if s.from == v {
			return s, true
		}
	}
	return migrationStep{}, false
}

// Version 2 files always carried app.variant, written from the build stamp
// of whichever binary ran first. Clearing it lets the current stamp apply.
func unpinStampedVariant(cfg Config) Config {
	cfg.App.Variant = ""
	return cfg
}

func writeBackup(cfg Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
