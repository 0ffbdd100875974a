package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/metrics"
)

const (
	rankSyncQueueSize = 1024
	rankSyncBatchSize = 100
	rankSyncInterval  = 1 * time.Second
)

type ScoreTask struct {
	PictureID int64
	Score     int64
}

// rankSyncWorker 把投票后的最新分数批量写入热榜缓存
type rankSyncWorker struct {
	cache    domain.PictureCache
	ch       chan ScoreTask
	interval time.Duration
}

var _ domain.RankSyncWorker = (*rankSyncWorker)(nil)

func NewRankSyncWorker(c domain.PictureCache) *rankSyncWorker {
	return &rankSyncWorker{
		cache:    c,
		ch:       make(chan ScoreTask, rankSyncQueueSize),
		interval: rankSyncInterval,
	}
}

// Send 队列满时丢弃, 热榜重建时会从数据库恢复
func (s *rankSyncWorker) Send(pictureID int64, score int64) {
	select {
	case s.ch <- ScoreTask{PictureID: pictureID, Score: score}:
	default:
		metrics.RankSyncDropped.Inc()
		logrus.Info("RankSyncWorker's channel is full, task dropped")
	}
}

func (s *rankSyncWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	batch := make([]ScoreTask, 0, rankSyncBatchSize)
	for {
		select {
		case task := <-s.ch:
			batch = append(batch, task)
			if len(batch) == rankSyncBatchSize {
				s.flush(ctx, batch)
				batch = make([]ScoreTask, 0, rankSyncBatchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(ctx, batch)
				batch = make([]ScoreTask, 0, rankSyncBatchSize)
			}
		case <-ctx.Done():
			logrus.Info("shutting down RankSyncWorker, flushing remain tasks...")
			s.drain(batch)
			return
		}
	}
}

// drain 退出前写完剩余任务, ctx 已取消所以换用新的超时
func (s *rankSyncWorker) drain(batch []ScoreTask) {
	for {
		select {
		case task := <-s.ch:
			batch = append(batch, task)
		default:
			if len(batch) == 0 {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			s.flush(ctx, batch)
			return
		}
	}
}

// flush 同一图片只保留最后一次分数
func (s *rankSyncWorker) flush(ctx context.Context, batch []ScoreTask) {
	scores := make(map[int64]int64, len(batch))
	for i := range batch {
		scores[batch[i].PictureID] = batch[i].Score
	}
	if err := s.cache.UpdatePopularScores(ctx, scores); err != nil {
		logrus.Errorf("failed to UpdatePopularScores: %v", err)
	}
}
