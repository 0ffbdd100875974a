package picture

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/metrics"
	"github.com/Guyuepp/picshare/internal/repository"
)

// bloomInitBatch 初始化布隆过滤器时每批读取的ID数量
const bloomInitBatch = 1000

type Service struct {
	pictureRepo domain.PictureRepository
	tagRepo     domain.TagRepository
	accountRepo domain.AccountRepository
	bloomRepo   domain.BloomRepository
	calculator  domain.ScoreCalculator
	rankWorker  domain.RankSyncWorker
}

var _ domain.PictureUsecase = (*Service)(nil)

// NewService will create a new picture service object
func NewService(
	p domain.PictureRepository,
	t domain.TagRepository,
	a domain.AccountRepository,
	b domain.BloomRepository,
	c domain.ScoreCalculator,
	w domain.RankSyncWorker,
) *Service {
	return &Service{
		pictureRepo: p,
		tagRepo:     t,
		accountRepo: a,
		bloomRepo:   b,
		calculator:  c,
		rankWorker:  w,
	}
}

// mayExist 布隆过滤器说不存在时一定不存在; 过滤器出错时放行, 交给数据库判断
func (s *Service) mayExist(ctx context.Context, id int64) bool {
	exists, err := s.bloomRepo.Exists(ctx, id)
	if err != nil {
		logrus.Warnf("bloom filter check failed for picture %d: %v", id, err)
		return true
	}
	if !exists {
		logrus.Debugf("bloom filter says picture %d does not exist", id)
	}
	return exists
}

func (s *Service) Fetch(ctx context.Context, cursor string, num int64) (res []domain.Picture, nextCursor string, err error) {
	res, err = s.pictureRepo.Fetch(ctx, cursor, num)
	if err != nil {
		return nil, "", err
	}
	if len(res) > 0 {
		nextCursor = repository.EncodeCursor(res[len(res)-1].CreatedAt)
	}
	return
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Picture, error) {
	if !s.mayExist(ctx, id) {
		return domain.Picture{}, domain.ErrNotFound
	}
	return s.pictureRepo.GetByID(ctx, id)
}

func (s *Service) GetLikes(ctx context.Context, id int64) ([]domain.Like, error) {
	if !s.mayExist(ctx, id) {
		return nil, domain.ErrNotFound
	}
	// 确认图片存在, 否则空列表与不存在无法区分
	if _, err := s.pictureRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.pictureRepo.FetchLikes(ctx, id)
}

func (s *Service) Store(ctx context.Context, p *domain.Picture, tagValues []string) error {
	values, err := NormalizeTags(tagValues)
	if err != nil {
		return err
	}

	tags, err := s.tagRepo.FindOrCreate(ctx, values)
	if err != nil {
		return err
	}

	p.Tags = tags
	p.Likes = nil
	p.PopularityScore = 0
	if err := s.pictureRepo.Store(ctx, p); err != nil {
		return err
	}

	if err := s.bloomRepo.Add(ctx, p.ID); err != nil {
		logrus.Errorf("failed to add picture %d to bloom filter: %v", p.ID, err)
	}

	if owner, err := s.accountRepo.GetByID(ctx, p.Account.ID); err == nil {
		owner.Password = ""
		p.Account = owner
	}
	return nil
}

func (s *Service) UpdateTags(ctx context.Context, pictureID, accountID int64, tagValues []string) (domain.Picture, error) {
	values, err := NormalizeTags(tagValues)
	if err != nil {
		return domain.Picture{}, err
	}

	pic, err := s.GetByID(ctx, pictureID)
	if err != nil {
		return domain.Picture{}, err
	}
	if pic.Account.ID != accountID {
		return domain.Picture{}, domain.ErrForbidden
	}

	tags, err := s.tagRepo.FindOrCreate(ctx, values)
	if err != nil {
		return domain.Picture{}, err
	}
	if err := s.pictureRepo.ReplaceTags(ctx, pictureID, tags); err != nil {
		return domain.Picture{}, err
	}

	pic.Tags = tags
	return pic, nil
}

func (s *Service) Delete(ctx context.Context, pictureID, accountID int64) error {
	pic, err := s.GetByID(ctx, pictureID)
	if err != nil {
		return err
	}
	if pic.Account.ID != accountID {
		return domain.ErrForbidden
	}
	return s.pictureRepo.Delete(ctx, pictureID)
}

func (s *Service) Like(ctx context.Context, pictureID, accountID int64) (domain.Picture, error) {
	return s.toggle(ctx, pictureID, accountID, domain.VoteUp)
}

func (s *Service) DisLike(ctx context.Context, pictureID, accountID int64) (domain.Picture, error) {
	return s.toggle(ctx, pictureID, accountID, domain.VoteDown)
}

// toggle 在一个事务内完成: 读取投票并锁住图片行 -> 新增或撤销投票 -> 记录标签兴趣 -> 重新计算分数
// 已有投票时任何方向的重复操作都是撤销, 不会原地翻转
func (s *Service) toggle(ctx context.Context, pictureID, accountID int64, action domain.VoteAction) (domain.Picture, error) {
	if !s.mayExist(ctx, pictureID) {
		metrics.VotesTotal.WithLabelValues(action.String(), metrics.VoteNotFound).Inc()
		return domain.Picture{}, domain.ErrNotFound
	}

	var (
		res     domain.Picture
		outcome string
	)
	err := s.pictureRepo.WithinVoteTx(ctx, func(tx domain.VoteTx) error {
		pic, err := tx.LoadPicture(ctx, pictureID)
		if err != nil {
			return err
		}

		if pic.VoteOf(accountID) == domain.LikeStateNone {
			created, err := tx.InsertLike(ctx, domain.Like{
				AccountID: accountID,
				PictureID: pictureID,
				IsLike:    action == domain.VoteUp,
				CreatedAt: time.Now(),
			})
			if err != nil {
				return err
			}

			if !created {
				// 唯一索引冲突: 同一账号的并发请求已经写入了这票
				outcome = metrics.VoteNoop
			} else {
				outcome = metrics.VoteCreated
				if action == domain.VoteUp {
					for _, tag := range pic.Tags {
						if err := tx.RecordAffinity(ctx, accountID, tag.ID); err != nil {
							return err
						}
					}
				}
			}
		} else {
			removed, err := tx.DeleteLike(ctx, accountID, pictureID)
			if err != nil {
				return err
			}
			if removed {
				outcome = metrics.VoteRemoved
			} else {
				outcome = metrics.VoteNoop
			}
		}

		likes, err := tx.LoadLikes(ctx, pictureID)
		if err != nil {
			return err
		}
		pic.Likes = likes
		pic.PopularityScore = s.calculator.CalculateScore(pic)
		if err := tx.SaveScore(ctx, pictureID, pic.PopularityScore); err != nil {
			return err
		}

		res = pic
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.VotesTotal.WithLabelValues(action.String(), metrics.VoteNotFound).Inc()
		} else {
			metrics.VotesTotal.WithLabelValues(action.String(), metrics.VoteError).Inc()
		}
		return domain.Picture{}, err
	}

	metrics.VotesTotal.WithLabelValues(action.String(), outcome).Inc()
	s.rankWorker.Send(pictureID, res.PopularityScore)

	if owner, err := s.accountRepo.GetByID(ctx, res.Account.ID); err != nil {
		logrus.Warnf("failed to load owner %d of picture %d: %v", res.Account.ID, pictureID, err)
	} else {
		owner.Password = ""
		res.Account = owner
	}
	return res, nil
}

func (s *Service) FetchPopular(ctx context.Context, offset, limit int64) ([]domain.Picture, error) {
	if offset < 0 {
		offset = 0
	}
	repository.PageVerify(&limit)
	return s.pictureRepo.FetchPopular(ctx, offset, limit)
}

// FetchPersonalized 优先返回带有用户感兴趣标签的图片, 没有时退回热门
func (s *Service) FetchPersonalized(ctx context.Context, accountID int64, limit int64) ([]domain.Picture, error) {
	repository.PageVerify(&limit)

	tagIDs, err := s.tagRepo.GetAffinityTagIDs(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(tagIDs) == 0 {
		return s.pictureRepo.FetchPopular(ctx, 0, limit)
	}

	res, err := s.pictureRepo.FetchByTags(ctx, tagIDs, accountID, limit)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return s.pictureRepo.FetchPopular(ctx, 0, limit)
	}
	return res, nil
}

// InitBloomFilter 启动时把所有图片ID写入布隆过滤器
func (s *Service) InitBloomFilter(ctx context.Context) error {
	var (
		cursor int64
		total  int
	)
	for {
		ids, err := s.pictureRepo.FetchIDs(ctx, cursor, bloomInitBatch)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			break
		}
		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		total += len(ids)
		cursor = ids[len(ids)-1]
		if len(ids) < bloomInitBatch {
			break
		}
	}
	logrus.Infof("bloom filter initialized with %d pictures", total)
	return nil
}

// NormalizeTags 去除首尾空白并去重, 校验数量和长度
func NormalizeTags(values []string) ([]string, error) {
	seen := make(map[string]struct{}, len(values))
	res := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || utf8.RuneCountInString(v) > domain.MaxTagLength {
			return nil, domain.ErrBadParamInput
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	if len(res) > domain.MaxTagsPerPicture {
		return nil, domain.ErrBadParamInput
	}
	return res, nil
}
