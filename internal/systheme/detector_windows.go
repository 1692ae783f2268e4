//go:build windows

package systheme

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const personalizeKey = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`

type registryDetector struct{}

func platformDetector() Detector {
	return registryDetector{}
}

func (registryDetector) Name() string { return "registry" }

// PrefersDark reads AppsUseLightTheme; 0 means dark.
func (registryDetector) PrefersDark() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("AppsUseLightTheme")
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v == 0, nil
}
