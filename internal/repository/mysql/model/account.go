package model

import (
	"time"

	"github.com/Guyuepp/picshare/domain"
)

type Account struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Nickname  string    `gorm:"type:varchar(40);not null"`
	Username  string    `gorm:"type:varchar(40);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (Account) TableName() string {
	return "accounts"
}

func (m *Account) ToDomain() domain.Account {
	return domain.Account{
		ID:        m.ID,
		Nickname:  m.Nickname,
		Username:  m.Username,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewAccountFromDomain(a *domain.Account) *Account {
	return &Account{
		ID:        a.ID,
		Nickname:  a.Nickname,
		Username:  a.Username,
		Password:  a.Password,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
