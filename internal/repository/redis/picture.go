package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/picshare/domain"
)

const (
	KeyPopularRank = "picture:popular:rank"

	PopularRankTTL = 10 * time.Minute
)

// rankMember 补零到定长, 分数相同时 ZREVRANGE 按成员字典序倒序, 与数据库的 id desc 一致
func rankMember(id int64) string {
	return fmt.Sprintf("%019d", id)
}

type pictureCache struct {
	client *redis.Client
}

var _ domain.PictureCache = (*pictureCache)(nil)

func NewPictureCache(client *redis.Client) *pictureCache {
	return &pictureCache{
		client,
	}
}

func (c *pictureCache) GetPopularRank(ctx context.Context, offset, limit int64) ([]int64, error) {
	n, err := c.client.Exists(ctx, KeyPopularRank).Result()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrCacheMiss
	}

	members, err := c.client.ZRevRange(ctx, KeyPopularRank, offset, offset+limit-1).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			logrus.Warnf("invalid member in popular rank: %q", m)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *pictureCache) SetPopularRank(ctx context.Context, ids []int64, scores []int64) error {
	if len(ids) != len(scores) {
		return domain.ErrBadParamInput
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, KeyPopularRank)
	if len(ids) > 0 {
		zMem := make([]redis.Z, len(ids))
		for i := range ids {
			zMem[i] = redis.Z{
				Score:  float64(scores[i]),
				Member: rankMember(ids[i]),
			}
		}
		pipe.ZAdd(ctx, KeyPopularRank, zMem...)
		pipe.Expire(ctx, KeyPopularRank, PopularRankTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// UpdatePopularScores 只更新已在榜单中的图片, 榜单不存在时什么都不做
func (c *pictureCache) UpdatePopularScores(ctx context.Context, scores map[int64]int64) error {
	if len(scores) == 0 {
		return nil
	}
	zMem := make([]redis.Z, 0, len(scores))
	for id, score := range scores {
		zMem = append(zMem, redis.Z{
			Score:  float64(score),
			Member: rankMember(id),
		})
	}
	return c.client.ZAddXX(ctx, KeyPopularRank, zMem...).Err()
}

func (c *pictureCache) RemoveFromRank(ctx context.Context, id int64) error {
	return c.client.ZRem(ctx, KeyPopularRank, rankMember(id)).Err()
}
