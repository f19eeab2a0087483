//go:build !windows

package volume

import "errors"

func remoteName(string) (string, error) {
	return "", errors.ErrUnsupported
}
