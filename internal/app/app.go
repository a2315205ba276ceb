package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"debuglocale/internal/config"
	"debuglocale/internal/i18n"
	"debuglocale/internal/locale"
	"debuglocale/internal/logging"
	"debuglocale/internal/prefs"
	"debuglocale/internal/version"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

const appName = "debuglocale"

type App struct {
	cfg       config.Config
	rootLog   *logging.Logger
	log       *logging.Logger
	localeLog *logging.Logger
	prefsLog  *logging.Logger
	bundle    *i18n.Bundle
	variant   string
	sess      *session
	out       io.Writer
	now       func() time.Time
	openStore func(backend, path string) (prefs.Store, error)
}

func New() (*App, error) {
	cfg, err := config.LoadOrCreate(version.Variant)
	if err != nil {
		return nil, err
	}
	rootLog, err := logging.NewRoot(logging.Options{
		FilePath:       cfg.Logging.FilePath,
		MaxSizeMB:      cfg.Logging.MaxSizeMB,
		RetentionDays:  cfg.Logging.RetentionDays,
		MaxBackupFiles: cfg.Logging.MaxBackupFiles,
		Debug:          cfg.Logging.Debug,
	})
	if err != nil {
		return nil, err
	}
	bundle, err := i18n.NewBundle(language.English)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, rootLog, bundle), nil
}

func newApp(cfg config.Config, rootLog *logging.Logger, bundle *i18n.Bundle) *App {
	return &App{
		cfg:       cfg,
		rootLog:   rootLog,
		log:       rootLog.Module("app"),
		localeLog: rootLog.Module("locale"),
		prefsLog:  rootLog.Module("prefs"),
		bundle:    bundle,
		variant:   cfg.App.Variant,
		out:       os.Stdout,
		now:       time.Now,
		openStore: prefs.Open,
	}
}

func (a *App) Run(args []string) {
	if err := a.Execute(args); err != nil {
		a.log.Fatalf("command failed: %v", err)
	}
}

func (a *App) Execute(args []string) error {
	if err := a.validateConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	defer a.closeSession()

	cmd := a.newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(a.out)
	return cmd.ExecuteContext(context.Background())
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Debug locale override demo",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractiveTUI(cmd.Context(), false)
		},
	}

	var chdirPath, variant string
	root.PersistentFlags().StringVarP(&chdirPath, "directory", "C", "", "Run as if debuglocale was started in this path")
	root.PersistentFlags().StringVar(&variant, "variant", "", "Build variant to run as (debug or release)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		v, err := a.resolveVariant(variant)
		if err != nil {
			return err
		}
		a.variant = v
		if strings.TrimSpace(chdirPath) == "" {
			return nil
		}
		abs, err := filepath.Abs(chdirPath)
		if err != nil {
			return err
		}
		if st, err := os.Stat(abs); err != nil {
			return err
		} else if !st.IsDir() {
			return fmt.Errorf("-C path is not a directory: %s", abs)
		}
		return os.Chdir(abs)
	}

	root.AddCommand(&cobra.Command{Use: "show", Short: "Apply the locale override and print the main screen", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return a.show(cmd.Context())
	}})

	settingsCmd := &cobra.Command{Use: "settings", Short: "Open the debug settings screen", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.debugSession(); err != nil {
			return err
		}
		return a.runInteractiveTUI(cmd.Context(), true)
	}}
	localeCmd := a.newLocaleCommand()
	root.AddCommand(settingsCmd, localeCmd)

	// Help runs without the pre-run hooks, so the debug commands are hidden
	// from the parsed --variant here rather than when the tree is built.
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		v, err := a.resolveVariant(variant)
		if err != nil {
			v = a.cfg.App.Variant
		}
		hide := v != config.VariantDebug
		settingsCmd.Hidden = hide
		localeCmd.Hidden = hide
		defaultHelp(cmd, args)
	})

	root.AddCommand(&cobra.Command{Use: "version", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(a.out, "%s %s (%s)\n", appName, version.Version, a.variant)
		return err
	}})

	return root
}

func (a *App) show(ctx context.Context) error {
	s := a.session()
	if _, err := s.overrider.OverrideLocale(ctx); err != nil {
		a.localeLog.Warnf("locale override not applied: %v", err)
	}
	tag, loc := s.binding.Snapshot()
	var b strings.Builder
	renderMainScreen(&b, tag, loc, a.now())
	_, err := io.WriteString(a.out, b.String())
	return err
}

func (a *App) validateConfig() error {
	if err := validateVariant(a.cfg.App.Variant); err != nil {
		return err
	}
	switch a.cfg.Preferences.Backend {
	case prefs.BackendFile, prefs.BackendSQLite:
	default:
		return fmt.Errorf("preferences.backend %q is not one of file, sqlite", a.cfg.Preferences.Backend)
	}
	if strings.TrimSpace(a.cfg.Preferences.Path) == "" {
		return errors.New("preferences.path is empty in config")
	}
	if len(a.cfg.Locale.Options) == 0 {
		return errors.New("locale.options is empty in config")
	}
	for _, code := range a.cfg.Locale.Options {
		if strings.TrimSpace(code) == "" {
			continue
		}
		if _, err := language.Parse(locale.NormalizeCode(code)); err != nil {
			return fmt.Errorf("locale.options contains %q: %w", code, err)
		}
	}
	return nil
}

// resolveVariant returns the --variant value when given, else the configured
// variant.
func (a *App) resolveVariant(flag string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(flag))
	if v == "" {
		return a.cfg.App.Variant, nil
	}
	if err := validateVariant(v); err != nil {
		return "", err
	}
	return v, nil
}

func validateVariant(v string) error {
	switch v {
	case config.VariantDebug, config.VariantRelease:
		return nil
	default:
		return fmt.Errorf("variant %q is not one of debug, release", v)
	}
}
