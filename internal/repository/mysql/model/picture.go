package model

import (
	"time"

	"github.com/Guyuepp/picshare/domain"
)

type Picture struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	AccountID       int64     `gorm:"column:account_id;not null;index"`
	Name            string    `gorm:"type:varchar(40);not null"`
	Description     string    `gorm:"type:varchar(500)"`
	URL             string    `gorm:"column:url;type:varchar(512);not null"`
	PopularityScore int64     `gorm:"column:popularity_score;default:0;index"`
	UpdatedAt       time.Time `gorm:"type:datetime"`
	CreatedAt       time.Time `gorm:"type:datetime;index"`
}

func (Picture) TableName() string {
	return "pictures"
}

func (m *Picture) ToDomain() domain.Picture {
	return domain.Picture{
		ID:              m.ID,
		Account:         domain.Account{ID: m.AccountID},
		Name:            m.Name,
		Description:     m.Description,
		URL:             m.URL,
		PopularityScore: m.PopularityScore,
		UpdatedAt:       m.UpdatedAt,
		CreatedAt:       m.CreatedAt,
	}
}

func NewPictureFromDomain(p *domain.Picture) *Picture {
	return &Picture{
		ID:              p.ID,
		AccountID:       p.Account.ID,
		Name:            p.Name,
		Description:     p.Description,
		URL:             p.URL,
		PopularityScore: p.PopularityScore,
		UpdatedAt:       p.UpdatedAt,
		CreatedAt:       p.CreatedAt,
	}
}
