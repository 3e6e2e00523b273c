package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

// FollowService handles the user follow graph
type FollowService struct {
	followRepo *repositories.FollowRepository
	userRepo   *repositories.UserRepository
	logger     zerolog.Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(followRepo *repositories.FollowRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Follow adds followeeID to the caller's following list and the caller to
// the followee's followers list. Following yourself is rejected; following
// someone twice is a no-op.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return apperrors.NewBadRequestError("you cannot follow your own account")
	}
	if _, err := s.userRepo.GetUserByID(ctx, followeeID); err != nil {
		return err
	}
	return s.followRepo.Follow(ctx, followerID, followeeID)
}

// Unfollow reverses Follow. Unfollowing someone not followed is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return apperrors.NewBadRequestError("you cannot unfollow your own account")
	}
	return s.followRepo.Unfollow(ctx, followerID, followeeID)
}

// GetFollowGraph returns both sides of a user's follow graph, with names
// resolved for accounts that still exist
func (s *FollowService) GetFollowGraph(ctx context.Context, userID string) (*dto.FollowListResponse, error) {
	record, err := s.followRepo.GetFollowRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.FollowListResponse{
		Following: s.summarize(ctx, record.Following),
		Followers: s.summarize(ctx, record.Followers),
	}
	return resp, nil
}

func (s *FollowService) summarize(ctx context.Context, ids []string) []dto.FollowSummary {
	out := make([]dto.FollowSummary, 0, len(ids))
	for _, id := range ids {
		summary := dto.FollowSummary{UserID: id}
		if user, err := s.userRepo.GetUserByID(ctx, id); err == nil {
			summary.Name = user.Name
		}
		out = append(out, summary)
	}
	return out
}
