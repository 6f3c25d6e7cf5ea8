package service

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/util"
	"Keystone/internal/repository"
	"context"
	log "log/slog"
)

type UserFollowService interface {
	Follow(ctx context.Context, caller, followerID, followingID string) error
	Unfollow(ctx context.Context, caller, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
}

type UserFollowServiceImpl struct {
	ledger              *repository.Ledger
	notificationService NotificationService
}

func NewUserFollowService(ledger *repository.Ledger, notificationService NotificationService) UserFollowService {
	return &UserFollowServiceImpl{ledger: ledger, notificationService: notificationService}
}

func (s *UserFollowServiceImpl) Follow(ctx context.Context, caller, followerID, followingID string) error {
	if err := validateUserIDs(followerID, followingID); err != nil {
		return err
	}
	if followerID == followingID {
		return ErrFollowSelf
	}

	err := s.ledger.Transaction(ctx, "follow", caller, func(tx *repository.LedgerTx) error {
		follower, err := loadActiveProfile(tx, followerID)
		if err != nil {
			return err
		}
		following, err := loadActiveProfile(tx, followingID)
		if err != nil {
			return err
		}
		if err = requireOwner(follower, caller); err != nil {
			return err
		}
		if tx.HasFollow(followerID, followingID) {
			return ErrFollowExist
		}

		tx.PutFollow(&model.Follow{
			FollowerID:  followerID,
			FollowingID: followingID,
			CreatedAt:   tx.Now(),
		})
		follower.FollowingCount++
		following.FollowerCount++
		tx.PutProfile(follower)
		tx.PutProfile(following)

		_, err = s.notificationService.Emit(tx, followingID, util.PtrString(followerID),
			model.NotificationFollow, nil, follower.DisplayName+" 关注了你")
		return err
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "User followed", "follower_id", followerID, "following_id", followingID)
	return nil
}

func (s *UserFollowServiceImpl) Unfollow(ctx context.Context, caller, followerID, followingID string) error {
	if err := validateUserIDs(followerID, followingID); err != nil {
		return err
	}

	err := s.ledger.Transaction(ctx, "unfollow", caller, func(tx *repository.LedgerTx) error {
		follower, err := loadProfile(tx, followerID)
		if err != nil {
			return err
		}
		if err = requireOwner(follower, caller); err != nil {
			return err
		}
		if !tx.HasFollow(followerID, followingID) {
			return ErrFollowNotFound
		}

		tx.DeleteFollow(followerID, followingID)
		follower.FollowingCount = decrement(follower.FollowingCount)
		tx.PutProfile(follower)
		if following, ok := tx.GetProfile(followingID); ok {
			following.FollowerCount = decrement(following.FollowerCount)
			tx.PutProfile(following)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "User unfollowed", "follower_id", followerID, "following_id", followingID)
	return nil
}

func (s *UserFollowServiceImpl) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var following bool
	err := s.ledger.View(ctx, func(tx *repository.LedgerTx) error {
		following = tx.HasFollow(followerID, followingID)
		return nil
	})
	return following, err
}
