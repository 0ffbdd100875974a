package domain

import (
	"context"
	"time"
)

// LikeState is the vote of one account on one picture as seen by that account
type LikeState int8

const (
	LikeStateNone LikeState = iota
	LikeStateLiked
	LikeStateDisliked
)

func (s LikeState) String() string {
	switch s {
	case LikeStateLiked:
		return "liked"
	case LikeStateDisliked:
		return "disliked"
	default:
		return "none"
	}
}

// Like is representing one account's current vote on one picture.
// There is at most one Like per (AccountID, PictureID).
type Like struct {
	AccountID int64
	PictureID int64
	IsLike    bool // true for a like, false for a dislike
	CreatedAt time.Time
}

// VoteTx is the unit of work of a single vote toggle.
// All calls happen inside one database transaction.
type VoteTx interface {
	// LoadPicture reads the like set as of the start of the unit of work, then
	// locks the picture row and reads it with its tags.
	// Returns ErrNotFound if the picture doesn't exist.
	LoadPicture(ctx context.Context, pictureID int64) (Picture, error)

	// InsertLike inserts the vote. It reports false, without error, when the
	// (account, picture) uniqueness constraint rejected the row.
	InsertLike(ctx context.Context, like Like) (bool, error)

	// DeleteLike removes the vote of the account. It reports false when there was none.
	DeleteLike(ctx context.Context, accountID, pictureID int64) (bool, error)

	// RecordAffinity marks the account as interested in the tag. Idempotent.
	RecordAffinity(ctx context.Context, accountID, tagID int64) error

	// LoadLikes re-reads the latest like set with a locking read.
	LoadLikes(ctx context.Context, pictureID int64) ([]Like, error)

	// SaveScore persists the recomputed popularity score.
	SaveScore(ctx context.Context, pictureID int64, score int64) error
}

// ScoreCalculator maps a picture's like set to its popularity score
type ScoreCalculator interface {
	CalculateScore(p Picture) int64
}
