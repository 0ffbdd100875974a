package domain

import (
	"context"
	"time"
)

// Tag is a short text label, many-to-many with Picture
type Tag struct {
	ID    int64
	Value string
}

// AccountTagAffinity records that an account liked, at least once, a picture carrying the tag.
// Rows are unique per (AccountID, TagID) and never removed.
type AccountTagAffinity struct {
	AccountID int64
	TagID     int64
	CreatedAt time.Time
}

type TagRepository interface {
	// FindOrCreate returns the tags with the given values, creating the missing ones.
	FindOrCreate(ctx context.Context, values []string) ([]Tag, error)

	// GetByPicture returns the tags attached to the picture.
	GetByPicture(ctx context.Context, pictureID int64) ([]Tag, error)

	// RecordAffinity is an idempotent insert of (accountID, tagID).
	RecordAffinity(ctx context.Context, accountID, tagID int64) error

	// GetAffinityTagIDs returns the tags the account has shown interest in.
	GetAffinityTagIDs(ctx context.Context, accountID int64) ([]int64, error)
}
