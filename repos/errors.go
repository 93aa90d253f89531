// file: repos/errors.go
package repos

import (
	"errors"

	"MYR/services"

	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error onto the service sentinel.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return services.ErrNotFound
	}
	return err
}
