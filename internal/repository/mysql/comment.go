package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/repository"
	"github.com/Guyuepp/picshare/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) Delete(ctx context.Context, commentID int64, accountID int64) error {
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.First(&comment, "id = ?", commentID).Error; err != nil {
			return err
		}
		if comment.AccountID != accountID {
			return domain.ErrForbidden
		}

		if err := tx.Delete(&model.Comment{}, commentID).Error; err != nil {
			return err
		}
		// 删除根评论时一并删除其回复
		if comment.RootID == 0 {
			return tx.Where("root_id = ?", commentID).Delete(&model.Comment{}).Error
		}
		return nil
	})
	return translateErr(err)
}

func (c *commentRepository) FetchReplies(ctx context.Context, rootIDs []int64) ([]*domain.Comment, error) {
	if len(rootIDs) == 0 {
		return nil, nil
	}
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("root_id IN ?", rootIDs).
		Order("created_at").
		Find(&comments).Error
	if err != nil {
		return nil, storageErr(err)
	}

	res := make([]*domain.Comment, 0, len(comments))
	for _, comment := range comments {
		domainComment := comment.ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

func (c *commentRepository) FetchRoots(ctx context.Context, pictureID int64, cursor string, limit int64) ([]*domain.Comment, error) {
	query := c.DB.WithContext(ctx).Where("picture_id = ? AND root_id = 0", pictureID)
	if cursor != "" {
		decodedCursor, err := repository.DecodeCursor(cursor)
		if err != nil {
			return nil, domain.ErrBadParamInput
		}
		query = query.Where("created_at < ?", decodedCursor)
	}

	repository.PageVerify(&limit)
	var comments []model.Comment
	err := query.
		Order("created_at DESC").
		Limit(int(limit)).
		Find(&comments).Error
	if err != nil {
		return nil, storageErr(err)
	}

	res := make([]*domain.Comment, 0, len(comments))
	for _, comment := range comments {
		domainComment := comment.ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewCommentFromDomain(comment)
	if err := c.DB.WithContext(ctx).Create(commentModel).Error; err != nil {
		return storageErr(err)
	}
	comment.ID = commentModel.ID
	comment.CreatedAt = commentModel.CreatedAt
	return nil
}
