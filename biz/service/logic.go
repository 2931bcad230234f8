package service

import (
	"errors"

	"github.com/yi-nology/asset_harbor/biz/dal/db"
	"gorm.io/gorm"
)

var (
	ErrAssetNotFound     = errors.New("asset not found")
	ErrComponentNotFound = errors.New("component not found")
)

// ValidationError rejects a save before any I/O happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// IsValidation reports whether err is a pre-I/O validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Logic contains business rules on top of data persistence.
type Logic struct {
	db           *gorm.DB
	assetDAO     *db.AssetDAO
	componentDAO *db.ComponentDAO
}

func NewLogic(dbConn *gorm.DB) *Logic {
	return &Logic{
		db:           dbConn,
		assetDAO:     db.NewAssetDAO(),
		componentDAO: db.NewComponentDAO(),
	}
}
