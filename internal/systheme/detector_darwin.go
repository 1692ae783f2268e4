//go:build darwin

package systheme

import (
	"os/exec"
	"strings"
)

type defaultsDetector struct{}

func platformDetector() Detector {
	return defaultsDetector{}
}

func (defaultsDetector) Name() string { return "defaults" }

// PrefersDark reads AppleInterfaceStyle. The key is absent in light mode, so
// a failing command means light rather than unavailable.
func (defaultsDetector) PrefersDark() (bool, error) {
	output, err := exec.Command("defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		if _, lookErr := exec.LookPath("defaults"); lookErr != nil {
			return false, ErrUnavailable
		}
		return false, nil
	}
	return strings.EqualFold(strings.TrimSpace(string(output)), "dark"), nil
}
