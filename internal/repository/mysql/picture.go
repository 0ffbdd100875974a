package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/repository"
	"github.com/Guyuepp/picshare/internal/repository/mysql/model"
)

type pictureRepository struct {
	DB *gorm.DB
}

// mysql层只负责数据库操作
var _ domain.PictureRepository = (*pictureRepository)(nil)

// NewPictureDBRepository 创建数据库操作层
func NewPictureDBRepository(db *gorm.DB) *pictureRepository {
	return &pictureRepository{db}
}

func (m *pictureRepository) Fetch(ctx context.Context, cursor string, num int64) ([]domain.Picture, error) {
	query := m.DB.WithContext(ctx).Model(&model.Picture{})
	if cursor != "" {
		decodedCursor, err := repository.DecodeCursor(cursor)
		if err != nil {
			return nil, domain.ErrBadParamInput
		}
		query = query.Where("created_at < ?", decodedCursor)
	}

	repository.PageVerify(&num)
	var pictures []model.Picture
	err := query.Order("created_at desc").
		Limit(int(num)).
		Find(&pictures).
		Error
	if err != nil {
		return nil, storageErr(err)
	}

	res := toDomainPictures(pictures)
	if err := attachTags(ctx, m.DB, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *pictureRepository) GetByID(ctx context.Context, id int64) (domain.Picture, error) {
	var picture model.Picture
	if err := m.DB.WithContext(ctx).First(&picture, "id = ?", id).Error; err != nil {
		return domain.Picture{}, translateErr(err)
	}
	res := []domain.Picture{picture.ToDomain()}
	if err := attachTags(ctx, m.DB, res); err != nil {
		return domain.Picture{}, err
	}

	likes, err := loadLikes(ctx, m.DB, id)
	if err != nil {
		return domain.Picture{}, err
	}
	res[0].Likes = likes
	return res[0], nil
}

func (m *pictureRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Picture, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var pictures []model.Picture
	err := m.DB.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&pictures).Error
	if err != nil {
		return nil, storageErr(err)
	}

	// 按 ids 的顺序返回
	byID := make(map[int64]domain.Picture, len(pictures))
	for i := range pictures {
		byID[pictures[i].ID] = pictures[i].ToDomain()
	}
	res := make([]domain.Picture, 0, len(pictures))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			res = append(res, p)
		}
	}

	if err := attachTags(ctx, m.DB, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *pictureRepository) Store(ctx context.Context, p *domain.Picture) error {
	pictureModel := model.NewPictureFromDomain(p)
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pictureModel).Error; err != nil {
			return err
		}
		return insertPictureTags(tx, pictureModel.ID, p.Tags)
	})
	if err != nil {
		return translateErr(err)
	}

	p.ID = pictureModel.ID
	p.CreatedAt = pictureModel.CreatedAt
	p.UpdatedAt = pictureModel.UpdatedAt
	return nil
}

func (m *pictureRepository) ReplaceTags(ctx context.Context, pictureID int64, tags []domain.Tag) error {
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Picture{}).Where("id = ?", pictureID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Where("picture_id = ?", pictureID).Delete(&model.PictureTag{}).Error; err != nil {
			return err
		}
		return insertPictureTags(tx, pictureID, tags)
	})
	return translateErr(err)
}

func (m *pictureRepository) Delete(ctx context.Context, id int64) error {
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Picture{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		// 点赞、标签关联、评论随图片一起删除; 标签兴趣记录保留
		if err := tx.Where("picture_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("picture_id = ?", id).Delete(&model.PictureTag{}).Error; err != nil {
			return err
		}
		return tx.Where("picture_id = ?", id).Delete(&model.Comment{}).Error
	})
	return translateErr(err)
}

func (m *pictureRepository) FetchLikes(ctx context.Context, pictureID int64) ([]domain.Like, error) {
	return loadLikes(ctx, m.DB, pictureID)
}

func (m *pictureRepository) FetchPopular(ctx context.Context, offset, limit int64) ([]domain.Picture, error) {
	var pictures []model.Picture
	err := m.DB.WithContext(ctx).
		Model(&model.Picture{}).
		Order("popularity_score desc, id desc").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&pictures).Error
	if err != nil {
		return nil, storageErr(err)
	}

	res := toDomainPictures(pictures)
	if err := attachTags(ctx, m.DB, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *pictureRepository) FetchByTags(ctx context.Context, tagIDs []int64, excludeAccountID int64, limit int64) ([]domain.Picture, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	tagged := m.DB.Model(&model.PictureTag{}).Select("picture_id").Where("tag_id IN ?", tagIDs)

	var pictures []model.Picture
	err := m.DB.WithContext(ctx).
		Model(&model.Picture{}).
		Where("id IN (?) AND account_id <> ?", tagged, excludeAccountID).
		Order("popularity_score desc, id desc").
		Limit(int(limit)).
		Find(&pictures).Error
	if err != nil {
		return nil, storageErr(err)
	}

	res := toDomainPictures(pictures)
	if err := attachTags(ctx, m.DB, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *pictureRepository) FetchIDs(ctx context.Context, cursor, limit int64) (ids []int64, err error) {
	err = m.DB.WithContext(ctx).
		Model(&model.Picture{}).
		Select("id").
		Where("id > ?", cursor).
		Order("id").
		Limit(int(limit)).
		Find(&ids).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return ids, nil
}

func (m *pictureRepository) WithinVoteTx(ctx context.Context, fn func(tx domain.VoteTx) error) error {
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newVoteTx(tx))
	})
	return translateErr(err)
}

func toDomainPictures(pictures []model.Picture) []domain.Picture {
	res := make([]domain.Picture, len(pictures))
	for i := range pictures {
		res[i] = pictures[i].ToDomain()
	}
	return res
}

func insertPictureTags(tx *gorm.DB, pictureID int64, tags []domain.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	joins := make([]model.PictureTag, len(tags))
	for i := range tags {
		joins[i] = model.PictureTag{PictureID: pictureID, TagID: tags[i].ID}
	}
	return tx.Create(&joins).Error
}

type pictureTagRow struct {
	PictureID int64
	ID        int64
	Value     string
}

// attachTags 批量填充标签信息
func attachTags(ctx context.Context, db *gorm.DB, pictures []domain.Picture) error {
	if len(pictures) == 0 {
		return nil
	}
	ids := make([]int64, len(pictures))
	for i := range pictures {
		ids[i] = pictures[i].ID
	}

	var rows []pictureTagRow
	err := db.WithContext(ctx).
		Table("picture_tags").
		Select("picture_tags.picture_id, tags.id, tags.value").
		Joins("JOIN tags ON tags.id = picture_tags.tag_id").
		Where("picture_tags.picture_id IN ?", ids).
		Order("tags.id").
		Scan(&rows).Error
	if err != nil {
		return storageErr(err)
	}

	tagMap := make(map[int64][]domain.Tag)
	for _, r := range rows {
		tagMap[r.PictureID] = append(tagMap[r.PictureID], domain.Tag{ID: r.ID, Value: r.Value})
	}
	for i := range pictures {
		pictures[i].Tags = tagMap[pictures[i].ID]
	}
	return nil
}

func loadLikes(ctx context.Context, db *gorm.DB, pictureID int64) ([]domain.Like, error) {
	var likes []model.Like
	err := db.WithContext(ctx).
		Where("picture_id = ?", pictureID).
		Order("created_at desc").
		Find(&likes).Error
	if err != nil {
		return nil, storageErr(err)
	}
	res := make([]domain.Like, len(likes))
	for i := range likes {
		res[i] = likes[i].ToDomain()
	}
	return res, nil
}
