package domain

import "context"

// BloomRepository 图片 ID 的布隆过滤器
type BloomRepository interface {
	// Add 上传图片后登记 ID
	Add(ctx context.Context, id int64) error

	// Exists 判断图片 ID 是否可能存在
	// true: 可能存在, 仍需查库确认
	// false: 一定不存在, 投票和评论直接返回 ErrNotFound
	Exists(ctx context.Context, id int64) (bool, error)

	// BulkAdd 启动时批量登记已有图片
	BulkAdd(ctx context.Context, ids []int64) error
}
