package model

import (
	"time"

	"github.com/Guyuepp/picshare/domain"
)

// Like 每个账号对每张图片最多一条投票记录
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	AccountID int64     `gorm:"column:account_id;not null;uniqueIndex:uk_account_picture,priority:1"`
	PictureID int64     `gorm:"column:picture_id;not null;uniqueIndex:uk_account_picture,priority:2;index"`
	IsLike    bool      `gorm:"column:is_like;not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Like) TableName() string {
	return "likes"
}

func (m *Like) ToDomain() domain.Like {
	return domain.Like{
		AccountID: m.AccountID,
		PictureID: m.PictureID,
		IsLike:    m.IsLike,
		CreatedAt: m.CreatedAt,
	}
}

func NewLikeFromDomain(l domain.Like) Like {
	return Like{
		AccountID: l.AccountID,
		PictureID: l.PictureID,
		IsLike:    l.IsLike,
		CreatedAt: l.CreatedAt,
	}
}
