package response

import "github.com/Guyuepp/picshare/domain"

// PictureSummary 列表页展示
type PictureSummary struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	Owner     *Account `json:"owner,omitempty"`
	Tags      []string `json:"tags"`
	Score     int64    `json:"score"`
	CreatedAt string   `json:"created_at"`
}

// Picture 详情页展示, 带点赞数和当前用户的投票状态
type Picture struct {
	PictureSummary
	Description string `json:"description"`
	Likes       int64  `json:"likes"`
	Dislikes    int64  `json:"dislikes"`
	State       string `json:"state"`
	UpdatedAt   string `json:"updated_at"`
}

type Like struct {
	AccountID int64  `json:"account_id"`
	IsLike    bool   `json:"is_like"`
	CreatedAt string `json:"created_at"`
}

func NewPictureSummaryFromDomain(p *domain.Picture) PictureSummary {
	tags := make([]string, len(p.Tags))
	for i := range p.Tags {
		tags[i] = p.Tags[i].Value
	}
	return PictureSummary{
		ID:        p.ID,
		Name:      p.Name,
		URL:       p.URL,
		Owner:     NewAccountFromDomain(&p.Account),
		Tags:      tags,
		Score:     p.PopularityScore,
		CreatedAt: p.CreatedAt.Format(DateTimeFormat),
	}
}

// NewPictureFromDomain viewerID 为0表示匿名访问
func NewPictureFromDomain(p *domain.Picture, viewerID int64) Picture {
	state := domain.LikeStateNone
	if viewerID != 0 {
		state = p.VoteOf(viewerID)
	}
	return Picture{
		PictureSummary: NewPictureSummaryFromDomain(p),
		Description:    p.Description,
		Likes:          p.LikeCount(),
		Dislikes:       p.DislikeCount(),
		State:          state.String(),
		UpdatedAt:      p.UpdatedAt.Format(DateTimeFormat),
	}
}

func NewPictureSummaries(list []domain.Picture) []PictureSummary {
	res := make([]PictureSummary, len(list))
	for i := range list {
		res[i] = NewPictureSummaryFromDomain(&list[i])
	}
	return res
}

func NewLikesFromDomain(likes []domain.Like) []Like {
	res := make([]Like, len(likes))
	for i := range likes {
		res[i] = Like{
			AccountID: likes[i].AccountID,
			IsLike:    likes[i].IsLike,
			CreatedAt: likes[i].CreatedAt.Format(DateTimeFormat),
		}
	}
	return res
}
