package render

import "errors"

// ErrUnsupportedFeature matches every UnsupportedFeatureError under errors.Is.
var ErrUnsupportedFeature = errors.New("unsupported feature")

// UnsupportedFeatureError reports a feature the dialect's profile lacks.
type UnsupportedFeatureError struct {
	Feature string
	Dialect string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	msg := e.Dialect + ": " + e.Feature + " is not supported"
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// Is lets callers test for ErrUnsupportedFeature without unpacking the struct.
func (e UnsupportedFeatureError) Is(target error) bool {
	return target == ErrUnsupportedFeature
}

// NewUnsupportedFeatureError builds an UnsupportedFeatureError. Only the
// first hint is kept.
func NewUnsupportedFeatureError(dialect, feature string, hint ...string) error {
	err := UnsupportedFeatureError{Feature: feature, Dialect: dialect}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}

// Require returns nil when the profile has f, else an UnsupportedFeatureError
// naming feature.
func (c Capabilities) Require(f Capability, feature string, hint ...string) error {
	if c.Has(f) {
		return nil
	}
	if feature == "" {
		feature = f.String()
	}
	return NewUnsupportedFeatureError(c.Dialect, feature, hint...)
}

