package mysql

import (
	"gorm.io/gorm"

	"github.com/Guyuepp/picshare/internal/repository/mysql/model"
)

// AutoMigrate creates the tables and the unique indexes the vote toggle relies on
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Account{},
		&model.Picture{},
		&model.Tag{},
		&model.PictureTag{},
		&model.Like{},
		&model.AccountLikedTag{},
		&model.Comment{},
	)
}
