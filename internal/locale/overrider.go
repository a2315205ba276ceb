package locale

import (
	"context"
	"fmt"
	"sync"

	"debuglocale/internal/logging"
	"golang.org/x/text/language"
)

// Overrider is the debug locale capability. Debug builds use Override,
// release builds use NoOp.
type Overrider interface {
	// OverrideLocale applies the stored override when it differs from the
	// active locale and reports whether anything changed.
	OverrideLocale(ctx context.Context) (bool, error)
	// SettingsAvailable reports whether the debug settings entry point
	// should be offered.
	SettingsAvailable() bool
}

// PreferenceReader reads the stored locale code; "" means no override.
type PreferenceReader interface {
	Read(ctx context.Context) (string, error)
}

type OverrideOptions struct {
	// Strict rejects stored codes that are not in Allowed.
	Strict  bool
	Allowed []string
}

// Override applies the stored locale preference to a Platform. The device
// default is captured on the first OverrideLocale call and kept for the
// lifetime of the Override.
type Override struct {
	mu       sync.Mutex
	pref     PreferenceReader
	platform Platform
	opts     OverrideOptions
	log      *logging.Logger
	original *language.Tag
}

var _ Overrider = (*Override)(nil)

func NewOverride(pref PreferenceReader, platform Platform, opts OverrideOptions, log *logging.Logger) (*Override, error) {
	if pref == nil {
		return nil, fmt.Errorf("%w: no preference store", ErrDebugFeatureUnavailable)
	}
	if platform == nil {
		return nil, fmt.Errorf("%w: no locale platform", ErrDebugFeatureUnavailable)
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Override{pref: pref, platform: platform, opts: opts, log: log}, nil
}

func (o *Override) OverrideLocale(ctx context.Context) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	code, err := o.pref.Read(ctx)
	if err != nil {
		return false, err
	}
	active := o.platform.Default()
	if o.original == nil {
		captured := active
		o.original = &captured
		o.log.Debugf("captured device locale %s", captured)
	}

	if o.opts.Strict {
		if err := ValidateCode(code, o.opts.Allowed); err != nil {
			o.log.Warnf("ignoring stored locale override: %v", err)
			return false, err
		}
	}

	d := Decide(code, active, o.original)
	if !d.Changed {
		return false, nil
	}
	o.platform.Apply(d.Effective)
	o.log.Infof("locale override applied from=%s to=%s", active, d.Effective)
	return true, nil
}

func (o *Override) SettingsAvailable() bool {
	return true
}

// Original returns the captured device locale, if any.
func (o *Override) Original() (language.Tag, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.original == nil {
		return language.Und, false
	}
	return *o.original, true
}

// NoOp is the release variant: it never reads preferences or changes the
// locale.
type NoOp struct{}

var _ Overrider = NoOp{}

func (NoOp) OverrideLocale(context.Context) (bool, error) {
	return false, nil
}

func (NoOp) SettingsAvailable() bool {
	return false
}
