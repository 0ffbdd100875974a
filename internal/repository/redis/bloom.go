package redis

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/picshare/domain"
)

const (
	KeyPictureBloom = "bloom:picture:ids"

	DefaultBloomHashes = 4
)

// redisBloomRepo 基于 SETBIT/GETBIT 的布隆过滤器, 记录存在过的图片ID
type redisBloomRepo struct {
	client  *redis.Client
	bitSize uint64
	hashes  int
}

var _ domain.BloomRepository = (*redisBloomRepo)(nil)

func NewRedisBloomRepo(client *redis.Client, bitSize uint64) *redisBloomRepo {
	if bitSize == 0 {
		bitSize = 1 << 20
	}
	return &redisBloomRepo{
		client:  client,
		bitSize: bitSize,
		hashes:  DefaultBloomHashes,
	}
}

func (r *redisBloomRepo) Add(ctx context.Context, id int64) error {
	return r.BulkAdd(ctx, []int64{id})
}

func (r *redisBloomRepo) BulkAdd(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	pipe := r.client.Pipeline()
	for _, id := range ids {
		for _, offset := range r.offsets(id) {
			pipe.SetBit(ctx, KeyPictureBloom, offset, 1)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisBloomRepo) Exists(ctx context.Context, id int64) (bool, error) {
	pipe := r.client.Pipeline()
	cmds := make([]*redis.IntCmd, 0, r.hashes)
	for _, offset := range r.offsets(id) {
		cmds = append(cmds, pipe.GetBit(ctx, KeyPictureBloom, offset))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	for _, cmd := range cmds {
		if cmd.Val() == 0 {
			return false, nil
		}
	}
	return true, nil
}

// offsets 双重哈希: h1 + i*h2, h1/h2 取自 FNV-1a 64 位结果的高低32位
func (r *redisBloomRepo) offsets(id int64) []int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatInt(id, 10)))
	sum := h.Sum64()
	h1, h2 := sum>>32, sum&0xffffffff|1

	res := make([]int64, r.hashes)
	for i := range r.hashes {
		res[i] = int64((h1 + uint64(i)*h2) % r.bitSize)
	}
	return res
}
