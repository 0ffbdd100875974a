package score

import "github.com/Guyuepp/picshare/domain"

const (
	DefaultLikeWeight    = 10
	DefaultDislikeWeight = 5
)

// Calculator turns the like set of a picture into its popularity score.
// Weights must be non-negative so that a like never lowers the score and a dislike never raises it.
type Calculator struct {
	LikeWeight    int64
	DislikeWeight int64
}

var _ domain.ScoreCalculator = Calculator{}

// NewCalculator returns a calculator, negative weights fall back to the defaults
func NewCalculator(likeWeight, dislikeWeight int64) Calculator {
	if likeWeight < 0 {
		likeWeight = DefaultLikeWeight
	}
	if dislikeWeight < 0 {
		dislikeWeight = DefaultDislikeWeight
	}
	return Calculator{
		LikeWeight:    likeWeight,
		DislikeWeight: dislikeWeight,
	}
}

// Default uses DefaultLikeWeight and DefaultDislikeWeight
func Default() Calculator {
	return Calculator{
		LikeWeight:    DefaultLikeWeight,
		DislikeWeight: DefaultDislikeWeight,
	}
}

func (c Calculator) CalculateScore(p domain.Picture) int64 {
	var likes, dislikes int64
	for i := range p.Likes {
		if p.Likes[i].IsLike {
			likes++
		} else {
			dislikes++
		}
	}
	return c.LikeWeight*likes - c.DislikeWeight*dislikes
}
