package model

import (
	"time"

	"github.com/Guyuepp/picshare/domain"
)

type Tag struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Value string `gorm:"type:varchar(25);uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

func (m *Tag) ToDomain() domain.Tag {
	return domain.Tag{
		ID:    m.ID,
		Value: m.Value,
	}
}

// PictureTag 图片-标签关联表
type PictureTag struct {
	PictureID int64 `gorm:"column:picture_id;primaryKey"`
	TagID     int64 `gorm:"column:tag_id;primaryKey;index"`
}

func (PictureTag) TableName() string {
	return "picture_tags"
}

// AccountLikedTag 账号对标签的兴趣记录, 只增不删
type AccountLikedTag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	AccountID int64     `gorm:"column:account_id;not null;uniqueIndex:uk_account_tag,priority:1"`
	TagID     int64     `gorm:"column:tag_id;not null;uniqueIndex:uk_account_tag,priority:2"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (AccountLikedTag) TableName() string {
	return "account_liked_tags"
}

func (m *AccountLikedTag) ToDomain() domain.AccountTagAffinity {
	return domain.AccountTagAffinity{
		AccountID: m.AccountID,
		TagID:     m.TagID,
		CreatedAt: m.CreatedAt,
	}
}
