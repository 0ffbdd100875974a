package response

import "github.com/Guyuepp/picshare/domain"

const DateTimeFormat = "2006-01-02 15:04:05"

type Account struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Username string `json:"username,omitempty"`
}

func NewAccountFromDomain(a *domain.Account) *Account {
	if a == nil || a.ID == 0 {
		return nil
	}
	return &Account{
		ID:       a.ID,
		Nickname: a.Nickname,
		Username: a.Username,
	}
}
