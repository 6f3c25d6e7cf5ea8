package service

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/util"
	"Keystone/internal/repository"
	"context"
	log "log/slog"
)

type PostActionService interface {
	LikePost(ctx context.Context, caller, userID string, postID uint64) error
	CancelLikePost(ctx context.Context, caller, userID string, postID uint64) error
	BookmarkPost(ctx context.Context, caller, userID string, postID uint64) error
	CancelBookmarkPost(ctx context.Context, caller, userID string, postID uint64) error
	GetInteraction(ctx context.Context, postID uint64, userID string) (*model.Interaction, bool, error)
}

type postActionServiceImpl struct {
	ledger              *repository.Ledger
	notificationService NotificationService
}

func NewPostActionService(ledger *repository.Ledger, notificationService NotificationService) PostActionService {
	return &postActionServiceImpl{
		ledger:              ledger,
		notificationService: notificationService,
	}
}

func (s *postActionServiceImpl) LikePost(ctx context.Context, caller, userID string, postID uint64) error {
	if err := validateUserIDs(userID); err != nil {
		return err
	}

	err := s.ledger.Transaction(ctx, "like", caller, func(tx *repository.LedgerTx) error {
		user, post, err := s.actionCheck(tx, caller, userID, postID)
		if err != nil {
			return err
		}
		if post.AuthorID == userID {
			return ErrLikeSelf
		}

		interaction, _ := tx.GetInteraction(postID, userID)
		if interaction.Liked {
			return ErrActionDuplicate
		}
		interaction.Liked = true
		interaction.LastInteractionAt = tx.Now()
		tx.PutInteraction(interaction)

		post.LikeCount++
		tx.PutPost(post)

		_, err = s.notificationService.Emit(tx, post.AuthorID, util.PtrString(userID),
			model.NotificationLike, util.PtrUint64(postID), user.DisplayName+" 点赞了你的帖子")
		return err
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "Post liked", "post_id", postID, "user_id", userID)
	return nil
}

func (s *postActionServiceImpl) CancelLikePost(ctx context.Context, caller, userID string, postID uint64) error {
	return s.revokeAction(ctx, "unlike", caller, userID, postID, func(tx *repository.LedgerTx, post *model.Post, i *model.Interaction) error {
		if !i.Liked {
			return ErrNotLiked
		}
		i.Liked = false
		post.LikeCount = decrement(post.LikeCount)
		tx.PutPost(post)
		return nil
	})
}

func (s *postActionServiceImpl) BookmarkPost(ctx context.Context, caller, userID string, postID uint64) error {
	if err := validateUserIDs(userID); err != nil {
		return err
	}

	return s.ledger.Transaction(ctx, "bookmark", caller, func(tx *repository.LedgerTx) error {
		if _, _, err := s.actionCheck(tx, caller, userID, postID); err != nil {
			return err
		}
		interaction, _ := tx.GetInteraction(postID, userID)
		if interaction.Bookmarked {
			return ErrActionDuplicate
		}
		interaction.Bookmarked = true
		interaction.LastInteractionAt = tx.Now()
		tx.PutInteraction(interaction)
		return nil
	})
}

func (s *postActionServiceImpl) CancelBookmarkPost(ctx context.Context, caller, userID string, postID uint64) error {
	return s.revokeAction(ctx, "unbookmark", caller, userID, postID, func(_ *repository.LedgerTx, _ *model.Post, i *model.Interaction) error {
		if !i.Bookmarked {
			return ErrNotBookmarked
		}
		i.Bookmarked = false
		return nil
	})
}

func (s *postActionServiceImpl) GetInteraction(ctx context.Context, postID uint64, userID string) (*model.Interaction, bool, error) {
	var (
		interaction *model.Interaction
		exists      bool
	)
	err := s.ledger.View(ctx, func(tx *repository.LedgerTx) error {
		interaction, exists = tx.GetInteraction(postID, userID)
		return nil
	})
	return interaction, exists, err
}

// actionCheck 用户与帖子都存在且 active，调用者拥有该用户
func (s *postActionServiceImpl) actionCheck(tx *repository.LedgerTx, caller, userID string, postID uint64) (*model.Profile, *model.Post, error) {
	user, err := loadActiveProfile(tx, userID)
	if err != nil {
		return nil, nil, err
	}
	post, err := loadActivePost(tx, postID)
	if err != nil {
		return nil, nil, err
	}
	if err = requireOwner(user, caller); err != nil {
		return nil, nil, err
	}
	return user, post, nil
}

// revokeAction 撤销类操作：从未有过互动记录为 NotFound，由 apply 判断当前状态
func (s *postActionServiceImpl) revokeAction(
	ctx context.Context,
	op, caller, userID string,
	postID uint64,
	apply func(tx *repository.LedgerTx, post *model.Post, i *model.Interaction) error,
) error {
	if err := validateUserIDs(userID); err != nil {
		return err
	}

	err := s.ledger.Transaction(ctx, op, caller, func(tx *repository.LedgerTx) error {
		user, err := loadProfile(tx, userID)
		if err != nil {
			return err
		}
		if err = requireOwner(user, caller); err != nil {
			return err
		}
		post, ok := tx.GetPost(postID)
		if !ok {
			return ErrPostNotFound
		}
		interaction, exists := tx.GetInteraction(postID, userID)
		if !exists {
			return ErrInteractionNotFound
		}
		if err = apply(tx, post, interaction); err != nil {
			return err
		}
		interaction.LastInteractionAt = tx.Now()
		tx.PutInteraction(interaction)
		return nil
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "Post action revoked", "op", op, "post_id", postID, "user_id", userID)
	return nil
}
