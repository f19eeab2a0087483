//go:build !windows

package privilege

import "os"

func isAdmin() (bool, error) {
	return os.Geteuid() == 0, nil
}
