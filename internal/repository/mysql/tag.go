package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/repository/mysql/model"
)

type tagRepository struct {
	DB *gorm.DB
}

var _ domain.TagRepository = (*tagRepository)(nil)

func NewTagRepository(db *gorm.DB) *tagRepository {
	return &tagRepository{
		DB: db,
	}
}

func (r *tagRepository) FindOrCreate(ctx context.Context, values []string) ([]domain.Tag, error) {
	if len(values) == 0 {
		return nil, nil
	}

	rows := make([]model.Tag, len(values))
	for i, v := range values {
		rows[i] = model.Tag{Value: v}
	}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return nil, storageErr(err)
	}

	var tags []model.Tag
	if err := r.DB.WithContext(ctx).Where("value IN ?", values).Find(&tags).Error; err != nil {
		return nil, storageErr(err)
	}

	byValue := make(map[string]domain.Tag, len(tags))
	for i := range tags {
		byValue[tags[i].Value] = tags[i].ToDomain()
	}
	res := make([]domain.Tag, 0, len(values))
	for _, v := range values {
		if t, ok := byValue[v]; ok {
			res = append(res, t)
		}
	}
	return res, nil
}

func (r *tagRepository) GetByPicture(ctx context.Context, pictureID int64) ([]domain.Tag, error) {
	var tags []model.Tag
	err := r.DB.WithContext(ctx).
		Model(&model.Tag{}).
		Joins("JOIN picture_tags ON picture_tags.tag_id = tags.id").
		Where("picture_tags.picture_id = ?", pictureID).
		Order("tags.id").
		Find(&tags).Error
	if err != nil {
		return nil, storageErr(err)
	}

	res := make([]domain.Tag, len(tags))
	for i := range tags {
		res[i] = tags[i].ToDomain()
	}
	return res, nil
}

// RecordAffinity 幂等插入, 已存在时什么都不做, 从不删除
func (r *tagRepository) RecordAffinity(ctx context.Context, accountID, tagID int64) error {
	row := model.AccountLikedTag{
		AccountID: accountID,
		TagID:     tagID,
		CreatedAt: time.Now(),
	}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	if err != nil && !isDuplicateKey(err) {
		return storageErr(err)
	}
	return nil
}

func (r *tagRepository) GetAffinityTagIDs(ctx context.Context, accountID int64) ([]int64, error) {
	var ids []int64
	err := r.DB.WithContext(ctx).
		Model(&model.AccountLikedTag{}).
		Where("account_id = ?", accountID).
		Pluck("tag_id", &ids).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return ids, nil
}
