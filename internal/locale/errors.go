package locale

import "errors"

var (
	ErrInvalidLocaleCode       = errors.New("invalid locale code")
	ErrDebugFeatureUnavailable = errors.New("debug locale override unavailable")
)
