package repository

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/picshare/domain"
)

// PopularRankSize 热门榜单缓存的图片数量
const PopularRankSize = 200

// pictureRepository 协调层，协调缓存和数据库
type pictureRepository struct {
	db          domain.PictureRepository
	cache       domain.PictureCache
	accountRepo domain.AccountRepository
	rankGroup   singleflight.Group
}

var _ domain.PictureRepository = (*pictureRepository)(nil)

// NewPictureRepository 创建协调层repository
func NewPictureRepository(db domain.PictureRepository, cache domain.PictureCache, accountRepo domain.AccountRepository) *pictureRepository {
	return &pictureRepository{
		db:          db,
		cache:       cache,
		accountRepo: accountRepo,
	}
}

// Fetch 获取最新图片列表
func (r *pictureRepository) Fetch(ctx context.Context, cursor string, num int64) ([]domain.Picture, error) {
	pictures, err := r.db.Fetch(ctx, cursor, num)
	if err != nil {
		return nil, err
	}
	return r.fillAccountDetails(ctx, pictures)
}

// GetByID 根据ID获取图片，包含标签和点赞
func (r *pictureRepository) GetByID(ctx context.Context, id int64) (domain.Picture, error) {
	picture, err := r.db.GetByID(ctx, id)
	if err != nil {
		return domain.Picture{}, err
	}

	res, err := r.fillAccountDetails(ctx, []domain.Picture{picture})
	if err != nil {
		return domain.Picture{}, err
	}
	return res[0], nil
}

// GetByIDs 批量获取图片
func (r *pictureRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Picture, error) {
	pictures, err := r.db.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return r.fillAccountDetails(ctx, pictures)
}

// Store 创建图片
func (r *pictureRepository) Store(ctx context.Context, p *domain.Picture) error {
	return r.db.Store(ctx, p)
}

func (r *pictureRepository) ReplaceTags(ctx context.Context, pictureID int64, tags []domain.Tag) error {
	return r.db.ReplaceTags(ctx, pictureID, tags)
}

// Delete 删除图片
func (r *pictureRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.Delete(ctx, id); err != nil {
		return err
	}

	// 异步从热榜删除
	go func(id int64) {
		if err := r.cache.RemoveFromRank(context.Background(), id); err != nil {
			logrus.Warnf("failed to remove picture %d from popular rank: %v", id, err)
		}
	}(id)

	return nil
}

func (r *pictureRepository) FetchLikes(ctx context.Context, pictureID int64) ([]domain.Like, error) {
	return r.db.FetchLikes(ctx, pictureID)
}

// FetchPopular 优先读缓存中的热榜, 未命中时从数据库重建
func (r *pictureRepository) FetchPopular(ctx context.Context, offset, limit int64) ([]domain.Picture, error) {
	ids, err := r.cache.GetPopularRank(ctx, offset, limit)
	if err == nil {
		var page []domain.Picture
		if len(ids) > 0 {
			if page, err = r.GetByIDs(ctx, ids); err != nil {
				return nil, err
			}
		}
		return r.fetchPopularTail(ctx, page, int64(len(ids)), offset, limit)
	}

	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("failed to GetPopularRank from redis: %v", err)
		pictures, err := r.db.FetchPopular(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		return r.fillAccountDetails(ctx, pictures)
	}

	// 缓存未命中, singleflight 避免并发重建
	result, err, _ := r.rankGroup.Do("popular", func() (any, error) {
		return r.rebuildPopularRank(ctx)
	})
	if err != nil {
		return nil, err
	}

	ranked := result.([]domain.Picture)
	var page []domain.Picture
	if offset < int64(len(ranked)) {
		end := min(offset+limit, int64(len(ranked)))
		page = make([]domain.Picture, end-offset)
		copy(page, ranked[offset:end])
		if page, err = r.fillAccountDetails(ctx, page); err != nil {
			return nil, err
		}
	}
	return r.fetchPopularTail(ctx, page, int64(len(page)), offset, limit)
}

// fetchPopularTail 页面越过榜单缓存的范围时, 剩下的部分查库补齐
func (r *pictureRepository) fetchPopularTail(ctx context.Context, page []domain.Picture, ranked, offset, limit int64) ([]domain.Picture, error) {
	if ranked >= limit || offset+limit <= PopularRankSize {
		return page, nil
	}

	rest, err := r.db.FetchPopular(ctx, offset+ranked, limit-ranked)
	if err != nil {
		return nil, err
	}
	rest, err = r.fillAccountDetails(ctx, rest)
	if err != nil {
		return nil, err
	}
	return append(page, rest...), nil
}

func (r *pictureRepository) FetchByTags(ctx context.Context, tagIDs []int64, excludeAccountID int64, limit int64) ([]domain.Picture, error) {
	pictures, err := r.db.FetchByTags(ctx, tagIDs, excludeAccountID, limit)
	if err != nil {
		return nil, err
	}
	return r.fillAccountDetails(ctx, pictures)
}

// FetchIDs 获取图片ID列表
func (r *pictureRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	return r.db.FetchIDs(ctx, cursor, limit)
}

func (r *pictureRepository) WithinVoteTx(ctx context.Context, fn func(tx domain.VoteTx) error) error {
	return r.db.WithinVoteTx(ctx, fn)
}

// rebuildPopularRank 从数据库构建热榜并写入缓存
func (r *pictureRepository) rebuildPopularRank(ctx context.Context) ([]domain.Picture, error) {
	pictures, err := r.db.FetchPopular(ctx, 0, PopularRankSize)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(pictures))
	scores := make([]int64, len(pictures))
	for i := range pictures {
		ids[i] = pictures[i].ID
		scores[i] = pictures[i].PopularityScore
	}

	go func() {
		if err := r.cache.SetPopularRank(context.Background(), ids, scores); err != nil {
			logrus.Warnf("fail to SetPopularRank to redis: %v", err)
		}
	}()

	return pictures, nil
}

// fillAccountDetails 批量填充作者信息
func (r *pictureRepository) fillAccountDetails(ctx context.Context, pictures []domain.Picture) ([]domain.Picture, error) {
	if len(pictures) == 0 {
		return pictures, nil
	}

	// 收集所有不重复的AccountID
	accountIDs := make([]int64, 0, len(pictures))
	existMap := make(map[int64]bool)
	for _, item := range pictures {
		if !existMap[item.Account.ID] {
			accountIDs = append(accountIDs, item.Account.ID)
			existMap[item.Account.ID] = true
		}
	}

	accounts, err := r.accountRepo.GetByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[int64]domain.Account, len(accounts))
	for _, a := range accounts {
		a.Password = ""
		accountMap[a.ID] = a
	}

	for i := range pictures {
		if a, ok := accountMap[pictures[i].Account.ID]; ok {
			pictures[i].Account = a
		}
	}

	return pictures, nil
}
