package model

import (
	"time"

	"github.com/Guyuepp/picshare/domain"
)

type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	PictureID int64     `gorm:"column:picture_id;not null;index"`
	AccountID int64     `gorm:"column:account_id;not null"`
	Content   string    `gorm:"type:text;not null"`
	ParentID  int64     `gorm:"column:parent_id;default:0"`
	RootID    int64     `gorm:"column:root_id;default:0;index"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:        c.ID,
		PictureID: c.PictureID,
		AccountID: c.AccountID,
		Content:   c.Content,
		ParentID:  c.ParentID,
		RootID:    c.RootID,
		CreatedAt: c.CreatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		PictureID: m.PictureID,
		AccountID: m.AccountID,
		Content:   m.Content,
		ParentID:  m.ParentID,
		RootID:    m.RootID,
		CreatedAt: m.CreatedAt,
	}
}
