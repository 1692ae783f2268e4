//go:build linux || freebsd || openbsd || netbsd || dragonfly

package systheme

import (
	"fmt"

	"github.com/rymdport/portal/settings"
)

const (
	appearanceNamespace = "org.freedesktop.appearance"
	colorSchemeKey      = "color-scheme"
)

// Values of org.freedesktop.appearance color-scheme.
const (
	schemeNoPreference = 0
	schemePreferDark   = 1
	schemePreferLight  = 2
)

type portalDetector struct{}

func platformDetector() Detector {
	return portalDetector{}
}

func (portalDetector) Name() string { return "portal" }

// PrefersDark reads the colour scheme from the XDG desktop portal. Hosts
// without a session bus or portal report ErrUnavailable, as does a desktop
// that states no preference.
func (portalDetector) PrefersDark() (bool, error) {
	value, err := settings.ReadOne(appearanceNamespace, colorSchemeKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	scheme, ok := value.(uint32)
	if !ok {
		return false, fmt.Errorf("unexpected %s type %T", colorSchemeKey, value)
	}
	switch scheme {
	case schemePreferDark:
		return true, nil
	case schemePreferLight:
		return false, nil
	default:
		return false, ErrUnavailable
	}
}
