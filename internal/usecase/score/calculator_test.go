package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/usecase/score"
)

func votes(likes, dislikes int) []domain.Like {
	res := make([]domain.Like, 0, likes+dislikes)
	id := int64(1)
	for range likes {
		res = append(res, domain.Like{AccountID: id, PictureID: 1, IsLike: true})
		id++
	}
	for range dislikes {
		res = append(res, domain.Like{AccountID: id, PictureID: 1, IsLike: false})
		id++
	}
	return res
}

func TestCalculateScore(t *testing.T) {
	calc := score.Default()

	tests := []struct {
		name     string
		likes    int
		dislikes int
		want     int64
	}{
		{name: "no votes", want: 0},
		{name: "one like", likes: 1, want: score.DefaultLikeWeight},
		{name: "one dislike", dislikes: 1, want: -score.DefaultDislikeWeight},
		{name: "mixed", likes: 3, dislikes: 2, want: 3*score.DefaultLikeWeight - 2*score.DefaultDislikeWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateScore(domain.Picture{ID: 1, Likes: votes(tt.likes, tt.dislikes)})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateScoreMonotonic(t *testing.T) {
	calcs := []score.Calculator{
		score.Default(),
		score.NewCalculator(1, 1),
		score.NewCalculator(0, 7),
		score.NewCalculator(3, 0),
	}
	for _, calc := range calcs {
		for likes := 0; likes < 5; likes++ {
			for dislikes := 0; dislikes < 5; dislikes++ {
				base := calc.CalculateScore(domain.Picture{Likes: votes(likes, dislikes)})
				withLike := calc.CalculateScore(domain.Picture{Likes: votes(likes+1, dislikes)})
				withDislike := calc.CalculateScore(domain.Picture{Likes: votes(likes, dislikes+1)})

				assert.GreaterOrEqual(t, withLike, base)
				assert.LessOrEqual(t, withDislike, base)
			}
		}
	}
}

func TestNewCalculatorRejectsNegativeWeights(t *testing.T) {
	calc := score.NewCalculator(-1, -3)
	assert.Equal(t, int64(score.DefaultLikeWeight), calc.LikeWeight)
	assert.Equal(t, int64(score.DefaultDislikeWeight), calc.DislikeWeight)
}
