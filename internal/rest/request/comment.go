package request

import "github.com/Guyuepp/picshare/domain"

type Comment struct {
	Content  string `json:"content" binding:"required,max=1000"`
	ParentID int64  `json:"parent_id" binding:"min=0"`
	RootID   int64  `json:"root_id" binding:"min=0"`
}

// ToDomain: Request -> Domain
func (r *Comment) ToDomain(pictureID, accountID int64) domain.Comment {
	return domain.Comment{
		PictureID: pictureID,
		AccountID: accountID,
		Content:   r.Content,
		ParentID:  r.ParentID,
		RootID:    r.RootID,
	}
}
