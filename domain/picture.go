package domain

import (
	"context"
	"time"
)

const (
	// MaxTagsPerPicture limits how many tags a picture may carry
	MaxTagsPerPicture = 4
	// MaxTagLength limits the length of a single tag value
	MaxTagLength = 25
)

// Picture is representing the Picture data struct
type Picture struct {
	ID              int64     // Unique identifier for the picture
	Account         Account   // Owner information
	Name            string    // Picture title
	Description     string    // Free text description
	URL             string    // Location of the stored image
	Tags            []Tag     // Tags attached to the picture
	Likes           []Like    // Current votes on the picture
	PopularityScore int64     // Derived from Likes, never set by clients
	CreatedAt       time.Time // Creation timestamp
	UpdatedAt       time.Time // Last update timestamp
}

// LikeCount returns the number of positive votes
func (p *Picture) LikeCount() int64 {
	var n int64
	for i := range p.Likes {
		if p.Likes[i].IsLike {
			n++
		}
	}
	return n
}

// DislikeCount returns the number of negative votes
func (p *Picture) DislikeCount() int64 {
	return int64(len(p.Likes)) - p.LikeCount()
}

// VoteOf reports the current vote of the account on this picture
func (p *Picture) VoteOf(accountID int64) LikeState {
	for i := range p.Likes {
		if p.Likes[i].AccountID == accountID {
			if p.Likes[i].IsLike {
				return LikeStateLiked
			}
			return LikeStateDisliked
		}
	}
	return LikeStateNone
}

// TagIDs returns the IDs of the attached tags
func (p *Picture) TagIDs() []int64 {
	ids := make([]int64, len(p.Tags))
	for i := range p.Tags {
		ids[i] = p.Tags[i].ID
	}
	return ids
}

// PictureRepository defines the contract for picture data persistence
type PictureRepository interface {
	// Fetch retrieves the newest pictures created before the cursor.
	// cursor: for pagination, pass the encoded created_at of the last picture or empty string for the first page.
	Fetch(ctx context.Context, cursor string, num int64) ([]Picture, error)

	// GetByID retrieves a single picture with its tags and likes.
	// Returns ErrNotFound if the picture doesn't exist.
	GetByID(ctx context.Context, id int64) (Picture, error)

	// GetByIDs retrieves pictures (with tags) by given IDs, keeping the order of ids.
	GetByIDs(ctx context.Context, ids []int64) ([]Picture, error)

	// Store creates a new picture together with its tag joins.
	Store(ctx context.Context, p *Picture) error

	// ReplaceTags swaps the tag joins of a picture.
	// Returns ErrNotFound if the picture doesn't exist.
	ReplaceTags(ctx context.Context, pictureID int64, tags []Tag) error

	// Delete removes a picture by its ID.
	// Returns ErrNotFound if not exists
	Delete(ctx context.Context, id int64) error

	// FetchLikes returns the votes of a picture, newest first.
	FetchLikes(ctx context.Context, pictureID int64) ([]Like, error)

	// FetchPopular returns pictures ordered by popularity score.
	FetchPopular(ctx context.Context, offset, limit int64) ([]Picture, error)

	// FetchByTags returns pictures carrying any of the tags, ordered by popularity score,
	// skipping the pictures owned by excludeAccountID.
	FetchByTags(ctx context.Context, tagIDs []int64, excludeAccountID int64, limit int64) ([]Picture, error)

	// FetchIDs pages through picture IDs greater than cursor.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)

	// WithinVoteTx runs fn inside a single transaction. Returning an error rolls everything back.
	WithinVoteTx(ctx context.Context, fn func(tx VoteTx) error) error
}

// PictureCache keeps the popularity ranking close to the handlers
type PictureCache interface {
	// GetPopularRank returns picture IDs ordered by score.
	// Returns ErrCacheMiss if the ranking has not been built.
	GetPopularRank(ctx context.Context, offset, limit int64) ([]int64, error)

	// SetPopularRank replaces the ranking.
	SetPopularRank(ctx context.Context, ids []int64, scores []int64) error

	// UpdatePopularScores refreshes scores of pictures already ranked.
	UpdatePopularScores(ctx context.Context, scores map[int64]int64) error

	// RemoveFromRank drops a picture from the ranking.
	RemoveFromRank(ctx context.Context, id int64) error
}

type PictureUsecase interface {
	Fetch(ctx context.Context, cursor string, num int64) ([]Picture, string, error)
	GetByID(ctx context.Context, id int64) (Picture, error)
	GetLikes(ctx context.Context, id int64) ([]Like, error)
	Store(ctx context.Context, p *Picture, tagValues []string) error
	UpdateTags(ctx context.Context, pictureID, accountID int64, tagValues []string) (Picture, error)
	Delete(ctx context.Context, pictureID, accountID int64) error

	// Like toggles a positive vote of the account on the picture.
	Like(ctx context.Context, pictureID, accountID int64) (Picture, error)
	// DisLike toggles a negative vote of the account on the picture.
	DisLike(ctx context.Context, pictureID, accountID int64) (Picture, error)

	FetchPopular(ctx context.Context, offset, limit int64) ([]Picture, error)
	FetchPersonalized(ctx context.Context, accountID int64, limit int64) ([]Picture, error)
	InitBloomFilter(ctx context.Context) error
}
