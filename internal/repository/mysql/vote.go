package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/repository/mysql/model"
)

// voteTx 一次投票的事务, 所有方法共享同一个 tx
type voteTx struct {
	tx   *gorm.DB
	tags *tagRepository
}

var _ domain.VoteTx = (*voteTx)(nil)

func newVoteTx(tx *gorm.DB) *voteTx {
	return &voteTx{
		tx:   tx,
		tags: NewTagRepository(tx),
	}
}

// LoadPicture 先快照读出投票, 再对图片行加 FOR UPDATE
// 同一图片的投票事务在图片行上排队, 之后的写入不会互相等待对方的点赞行
func (v *voteTx) LoadPicture(ctx context.Context, pictureID int64) (domain.Picture, error) {
	likes, err := loadLikes(ctx, v.tx, pictureID)
	if err != nil {
		return domain.Picture{}, err
	}

	var picture model.Picture
	err = v.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&picture, "id = ?", pictureID).Error
	if err != nil {
		return domain.Picture{}, translateErr(err)
	}
	res := picture.ToDomain()
	res.Likes = likes

	tags, err := v.tags.GetByPicture(ctx, pictureID)
	if err != nil {
		return domain.Picture{}, err
	}
	res.Tags = tags
	return res, nil
}

func (v *voteTx) InsertLike(ctx context.Context, like domain.Like) (bool, error) {
	row := model.NewLikeFromDomain(like)
	err := v.tx.WithContext(ctx).Create(&row).Error
	if isDuplicateKey(err) {
		// 唯一索引 (account_id, picture_id) 已有记录
		return false, nil
	}
	if err != nil {
		return false, storageErr(err)
	}
	return true, nil
}

func (v *voteTx) DeleteLike(ctx context.Context, accountID, pictureID int64) (bool, error) {
	result := v.tx.WithContext(ctx).
		Where("account_id = ? AND picture_id = ?", accountID, pictureID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, storageErr(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (v *voteTx) RecordAffinity(ctx context.Context, accountID, tagID int64) error {
	return v.tags.RecordAffinity(ctx, accountID, tagID)
}

func (v *voteTx) LoadLikes(ctx context.Context, pictureID int64) ([]domain.Like, error) {
	// 当前读: 快照早于拿到图片行锁的时刻
	return loadLikes(ctx, v.tx.Clauses(clause.Locking{Strength: "SHARE"}), pictureID)
}

func (v *voteTx) SaveScore(ctx context.Context, pictureID int64, score int64) error {
	result := v.tx.WithContext(ctx).
		Model(&model.Picture{}).
		Where("id = ?", pictureID).
		UpdateColumn("popularity_score", score)
	if result.Error != nil {
		return storageErr(result.Error)
	}
	return nil
}
