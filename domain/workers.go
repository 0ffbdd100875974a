package domain

import "context"

type VoteAction int8

const (
	VoteUp   VoteAction = 1
	VoteDown VoteAction = -1
)

func (v VoteAction) String() string {
	switch v {
	case VoteUp:
		return "UP"
	case VoteDown:
		return "DOWN"
	default:
		return "UNKNOWN"
	}
}

type RankSyncWorker interface {
	Start(ctx context.Context)

	// Send queues the refreshed popularity score of a picture for the ranking cache
	Send(pictureID int64, score int64)
}
