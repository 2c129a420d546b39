package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExist     = errors.New("user already exist")
	ErrCategoryAlreadyExist = errors.New("category already exist")
)

type GormRepo struct {
	DB *gorm.DB
}

func duplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
