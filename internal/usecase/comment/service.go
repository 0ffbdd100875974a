package comment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/repository"
)

type service struct {
	commentRepo domain.CommentRepository
	accountRepo domain.AccountRepository
	bloomRepo   domain.BloomRepository
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(commentRepo domain.CommentRepository, accountRepo domain.AccountRepository, bloomRepo domain.BloomRepository) *service {
	return &service{
		commentRepo: commentRepo,
		accountRepo: accountRepo,
		bloomRepo:   bloomRepo,
	}
}

func (s *service) mustExists(ctx context.Context, id int64) error {
	exists, err := s.bloomRepo.Exists(ctx, id)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says picture %d does not exist", id)
		return domain.ErrNotFound
	}

	return nil
}

func (s *service) Create(ctx context.Context, c *domain.Comment) error {
	c.Content = strings.TrimSpace(c.Content)
	if c.Content == "" {
		return domain.ErrBadParamInput
	}
	if err := s.mustExists(ctx, c.PictureID); err != nil {
		return err
	}

	// 回复必须挂在同一张图片的根评论下
	if c.RootID != 0 {
		root, err := s.commentRepo.GetByID(ctx, c.RootID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrBadParamInput
			}
			return err
		}
		if root.PictureID != c.PictureID || root.RootID != 0 {
			return domain.ErrBadParamInput
		}
		if c.ParentID == 0 {
			c.ParentID = c.RootID
		}
	} else {
		c.ParentID = 0
	}

	c.CreatedAt = time.Now()
	return s.commentRepo.Store(ctx, c)
}

func (s *service) Delete(ctx context.Context, commentID int64, accountID int64) error {
	return s.commentRepo.Delete(ctx, commentID, accountID)
}

func (s *service) FetchByPicture(ctx context.Context, pictureID int64, cursor string, limit int64) ([]*domain.Comment, string, error) {
	if err := s.mustExists(ctx, pictureID); err != nil {
		return nil, "", err
	}
	res, err := s.commentRepo.FetchRoots(ctx, pictureID, cursor, limit)
	if err != nil {
		return []*domain.Comment{}, "", err
	}
	if len(res) == 0 {
		return []*domain.Comment{}, "", nil
	}

	rootIDs := make([]int64, len(res))
	for i, comment := range res {
		rootIDs[i] = comment.ID
	}

	replies, err := s.commentRepo.FetchReplies(ctx, rootIDs)
	if err != nil {
		logrus.Warnf("failed to FetchReplies for picture %d: %v", pictureID, err)
		replies = nil
	}

	replyMap := make(map[int64][]*domain.Comment)
	for _, r := range replies {
		replyMap[r.RootID] = append(replyMap[r.RootID], r)
	}

	all := make([]*domain.Comment, 0, len(res)+len(replies))
	for _, r := range res {
		if list, ok := replyMap[r.ID]; ok {
			r.Replies = list
		} else {
			r.Replies = []*domain.Comment{}
		}
		all = append(all, r)
		all = append(all, r.Replies...)
	}

	if err := s.fillAccountDetails(ctx, all); err != nil {
		logrus.Warnf("failed to fill comment authors: %v", err)
	}

	return res, repository.EncodeCursor(res[len(res)-1].CreatedAt), nil
}

// fillAccountDetails 并发获取评论作者, 每个作者只查一次
func (s *service) fillAccountDetails(ctx context.Context, comments []*domain.Comment) error {
	g, ctx := errgroup.WithContext(ctx)

	mapAccounts := map[int64]*domain.Account{}
	for _, c := range comments {
		mapAccounts[c.AccountID] = nil
	}

	chanAccount := make(chan domain.Account)
	for accountID := range mapAccounts {
		g.Go(func() error {
			res, err := s.accountRepo.GetByID(ctx, accountID)
			if err != nil {
				return err
			}
			select {
			case chanAccount <- res:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(chanAccount)
		_ = g.Wait()
	}()

	for a := range chanAccount {
		a.Password = ""
		mapAccounts[a.ID] = &a
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, c := range comments {
		c.Account = mapAccounts[c.AccountID]
	}
	return nil
}
