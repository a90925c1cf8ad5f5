package repository

import (
	"errors"

	"github.com/zellohq/devportal/internal/entity"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = gorm.ErrRecordNotFound
	ErrDuplicate = gorm.ErrDuplicatedKey
)

// translate maps gorm errors onto the domain sentinels so callers never
// see storage-layer error values.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return entity.ErrNotFound
	case errors.Is(err, ErrDuplicate):
		return entity.ErrConflict
	default:
		return err
	}
}
