package service

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/util"
	"Keystone/internal/pkg/validate"
	"Keystone/internal/repository"
	"context"
	log "log/slog"
)

// MaxMentionsPerPost 单条帖子最多通知的 @ 用户数
const MaxMentionsPerPost = 10

type PostService interface {
	CreatePost(ctx context.Context, caller string, req *CreatePostRequest) (uint64, error)
	GetPost(ctx context.Context, postID uint64) (*model.Post, error)
}

type CreatePostRequest struct {
	AuthorID            string
	Content             string
	ParentID            *uint64
	Visibility          model.Visibility
	IsPremium           bool
	MonetizationEnabled bool
}

type postServiceImpl struct {
	ledger              *repository.Ledger
	notificationService NotificationService
}

func NewPostService(ledger *repository.Ledger, notificationService NotificationService) PostService {
	return &postServiceImpl{
		ledger:              ledger,
		notificationService: notificationService,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, caller string, req *CreatePostRequest) (uint64, error) {
	if err := validate.UserID(req.AuthorID); err != nil {
		return 0, invalid(err)
	}
	if !req.Visibility.Valid() {
		return 0, ErrVisibilityInvalid
	}

	var (
		postID   uint64
		mentions int
	)
	err := s.ledger.Transaction(ctx, "create_post", caller, func(tx *repository.LedgerTx) error {
		author, err := loadActiveProfile(tx, req.AuthorID)
		if err != nil {
			return err
		}
		if err = requireOwner(author, caller); err != nil {
			return err
		}
		if validate.PostContent(req.Content, tx.Settings().MaxContentLength) != nil {
			return ErrPostContentInvalid
		}

		var parent *model.Post
		if req.ParentID != nil {
			parent, err = loadActivePost(tx, *req.ParentID)
			if err != nil {
				return err
			}
		}

		postID = tx.AllocatePostID()
		post := &model.Post{
			ID:                  postID,
			AuthorID:            req.AuthorID,
			ContentHash:         util.Sha3Hex([]byte(req.Content)),
			Content:             req.Content,
			CreatedAt:           tx.Now(),
			Visibility:          req.Visibility,
			IsPremium:           req.IsPremium,
			MonetizationEnabled: req.MonetizationEnabled,
			Status:              model.StatusActive,
		}
		if req.ParentID != nil {
			post.ParentID = util.PtrUint64(*req.ParentID)
		}
		tx.PutPost(post)

		author.PostCount++
		tx.PutProfile(author)

		notified := map[string]struct{}{req.AuthorID: {}}
		if parent != nil {
			parent.ReplyCount++
			tx.PutPost(parent)

			if parent.AuthorID != req.AuthorID {
				_, err = s.notificationService.Emit(tx, parent.AuthorID, util.PtrString(req.AuthorID),
					model.NotificationReply, util.PtrUint64(postID), author.DisplayName+" 回复了你的帖子")
				if err != nil {
					return err
				}
				notified[parent.AuthorID] = struct{}{}
			}
		}

		mentions, err = s.notifyMentions(tx, author, postID, req.Content, notified)
		return err
	})
	if err != nil {
		return 0, err
	}

	log.InfoContext(ctx, "Post created", "post_id", postID, "author_id", req.AuthorID, "mentions", mentions)
	return postID, nil
}

// notifyMentions 只通知存在且处于 active 状态的用户，已通知过的跳过
func (s *postServiceImpl) notifyMentions(tx *repository.LedgerTx, author *model.Profile, postID uint64, content string, notified map[string]struct{}) (int, error) {
	count := 0
	for _, userID := range util.ExtractMentions(content) {
		if count >= MaxMentionsPerPost {
			break
		}
		if _, done := notified[userID]; done {
			continue
		}
		target, ok := tx.GetProfile(userID)
		if !ok || !target.IsActive() {
			continue
		}
		_, err := s.notificationService.Emit(tx, userID, util.PtrString(author.UserID),
			model.NotificationMention, util.PtrUint64(postID), author.DisplayName+" 在帖子中提到了你")
		if err != nil {
			return count, err
		}
		notified[userID] = struct{}{}
		count++
	}
	return count, nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID uint64) (*model.Post, error) {
	var post *model.Post
	err := s.ledger.View(ctx, func(tx *repository.LedgerTx) error {
		p, ok := tx.GetPost(postID)
		if !ok {
			return ErrPostNotFound
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}
