package response

import "github.com/Guyuepp/picshare/domain"

// Comment 单条评论
type Comment struct {
	ID        int64  `json:"id"`
	PictureID int64  `json:"picture_id"`
	RootID    int64  `json:"root_id,omitempty"`
	// ReplyTo 回复的是楼中的另一条回复时才有值
	ReplyTo   int64    `json:"reply_to,omitempty"`
	Content   string   `json:"content"`
	Author    *Account `json:"author,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// CommentThread 一级评论和它下面的全部回复
type CommentThread struct {
	Comment
	ReplyCount int        `json:"reply_count"`
	Replies    []*Comment `json:"replies"`
}

func NewComment(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	res := &Comment{
		ID:        c.ID,
		PictureID: c.PictureID,
		RootID:    c.RootID,
		Content:   c.Content,
		Author:    NewAccountFromDomain(c.Account),
		CreatedAt: c.CreatedAt.Format(DateTimeFormat),
	}
	if c.RootID != 0 && c.ParentID != c.RootID {
		res.ReplyTo = c.ParentID
	}
	return res
}

func NewCommentThreads(roots []*domain.Comment) []*CommentThread {
	res := make([]*CommentThread, 0, len(roots))
	for _, root := range roots {
		if root == nil {
			continue
		}
		thread := &CommentThread{
			Comment:    *NewComment(root),
			ReplyCount: len(root.Replies),
			Replies:    make([]*Comment, 0, len(root.Replies)),
		}
		for _, r := range root.Replies {
			thread.Replies = append(thread.Replies, NewComment(r))
		}
		res = append(res, thread)
	}
	return res
}
