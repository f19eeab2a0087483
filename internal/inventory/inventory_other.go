//go:build !windows

package inventory

import (
	"context"
	"errors"
)

func List(ctx context.Context) ([]Disk, error) {
	return nil, errors.ErrUnsupported
}
