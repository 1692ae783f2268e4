//go:build !(linux || freebsd || openbsd || netbsd || dragonfly || darwin || windows)

package systheme

func platformDetector() Detector {
	return nil
}
