package app

import (
	"fmt"

	"debuglocale/internal/locale"
	"github.com/spf13/cobra"
)

func (a *App) newLocaleCommand() *cobra.Command {
	localeCmd := &cobra.Command{Use: "locale", Short: "Inspect or change the debug locale override"}

	localeCmd.AddCommand(&cobra.Command{Use: "get", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		s, err := a.debugSession()
		if err != nil {
			return err
		}
		code, err := s.pref.Read(cmd.Context())
		if err != nil {
			return err
		}
		if code == "" {
			code = "(device default)"
		}
		_, err = fmt.Fprintln(a.out, code)
		return err
	}})

	localeCmd.AddCommand(&cobra.Command{Use: "set <code>", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		return a.setOverride(cmd, args[0])
	}})

	localeCmd.AddCommand(&cobra.Command{Use: "clear", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return a.setOverride(cmd, "")
	}})

	localeCmd.AddCommand(&cobra.Command{Use: "options", Aliases: []string{"ls"}, Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		s, err := a.debugSession()
		if err != nil {
			return err
		}
		stored, err := s.pref.Read(cmd.Context())
		if err != nil {
			return err
		}
		current := locale.IndexOf(s.options, stored)
		deviceLabel := s.binding.Localizer().T("device_default", nil)
		for i, opt := range s.options {
			marker := " "
			if i == current {
				marker = "*"
			}
			code := opt.Code
			if code == "" {
				code = "-"
			}
			if _, err := fmt.Fprintf(a.out, "%s %s\t%s\n", marker, code, opt.Label(deviceLabel)); err != nil {
				return err
			}
		}
		return nil
	}})

	return localeCmd
}

func (a *App) setOverride(cmd *cobra.Command, code string) error {
	s, err := a.debugSession()
	if err != nil {
		return err
	}
	if a.cfg.Locale.Strict {
		if err := locale.ValidateCode(code, locale.Codes(s.options)); err != nil {
			return err
		}
	}
	if err := s.pref.Write(cmd.Context(), code); err != nil {
		return err
	}
	changed, err := s.overrider.OverrideLocale(cmd.Context())
	if err != nil {
		return err
	}
	if code == "" {
		a.localeLog.Okf("locale override cleared (changed=%t)", changed)
	} else {
		a.localeLog.Okf("locale override set to %s (changed=%t)", code, changed)
	}
	return nil
}
