package request

import "github.com/Guyuepp/picshare/domain"

type Picture struct {
	Name        string   `json:"name" binding:"required,min=4,max=40"`
	Description string   `json:"description" binding:"max=500"`
	URL         string   `json:"url" binding:"required,url"`
	Tags        []string `json:"tags" binding:"max=4,dive,tagvalue"`
}

// ToDomain: Request -> Domain, tags are resolved by the usecase
func (r *Picture) ToDomain(accountID int64) domain.Picture {
	return domain.Picture{
		Account:     domain.Account{ID: accountID},
		Name:        r.Name,
		Description: r.Description,
		URL:         r.URL,
	}
}

type Tags struct {
	Tags []string `json:"tags" binding:"max=4,dive,tagvalue"`
}
