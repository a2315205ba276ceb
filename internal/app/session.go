package app

import (
	"fmt"

	"debuglocale/internal/config"
	"debuglocale/internal/locale"
	"debuglocale/internal/prefs"
)

// session is the per-invocation wiring: one binding, one overrider variant
// and, in debug builds, the preference it reads.
type session struct {
	variant   string
	binding   *locale.Binding
	overrider locale.Overrider
	pref      *prefs.LocalePreference
	store     prefs.Store
	options   []locale.Option
}

func (a *App) session() *session {
	if a.sess != nil {
		return a.sess
	}
	device := locale.DetectSystem(locale.ParseCode(a.cfg.Locale.Fallback))
	s := &session{
		variant:   a.variant,
		binding:   locale.NewBinding(a.bundle, device),
		overrider: locale.NoOp{},
		options:   locale.BuildOptions(a.cfg.Locale.Options),
	}
	if a.variant == config.VariantDebug {
		if err := a.attachOverride(s); err != nil {
			a.localeLog.Errorf("%v; debug settings disabled", err)
		}
	}
	a.localeLog.Infof("session variant=%s device_locale=%s settings=%t", s.variant, device, s.overrider.SettingsAvailable())
	a.sess = s
	return s
}

func (a *App) attachOverride(s *session) error {
	store, err := a.openStore(a.cfg.Preferences.Backend, a.cfg.Preferences.Path)
	if err != nil {
		return fmt.Errorf("%w: open %s preferences: %v", locale.ErrDebugFeatureUnavailable, a.cfg.Preferences.Backend, err)
	}
	pref := prefs.NewLocalePreference(store)
	ov, err := locale.NewOverride(pref, s.binding, locale.OverrideOptions{
		Strict:  a.cfg.Locale.Strict,
		Allowed: a.cfg.Locale.Options,
	}, a.localeLog)
	if err != nil {
		_ = store.Close()
		return err
	}
	a.prefsLog.Debugf("opened %s preferences at %s", a.cfg.Preferences.Backend, a.cfg.Preferences.Path)
	s.overrider = ov
	s.pref = pref
	s.store = store
	return nil
}

// debugSession returns the session only when the debug entry points are
// usable.
func (a *App) debugSession() (*session, error) {
	s := a.session()
	if !s.overrider.SettingsAvailable() || s.pref == nil {
		return nil, fmt.Errorf("%w in %s variant", locale.ErrDebugFeatureUnavailable, s.variant)
	}
	return s, nil
}

func (a *App) closeSession() {
	if a.sess == nil {
		return
	}
	if a.sess.store != nil {
		if err := a.sess.store.Close(); err != nil {
			a.prefsLog.Warnf("close preferences: %v", err)
		}
	}
	a.sess = nil
}
