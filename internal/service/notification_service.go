package service

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/validate"
	"Keystone/internal/repository"
	"context"
	log "log/slog"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type NotificationService interface {
	// Emit 只在其他操作的事务内调用，与触发它的写入一同提交
	Emit(tx *repository.LedgerTx, recipientID string, senderID *string, typ model.NotificationType, relatedPostID *uint64, content string) (uint64, error)
	MarkRead(ctx context.Context, caller, userID string, notificationID uint64) error
	MarkAllRead(ctx context.Context, caller, userID string) (int, error)
	List(ctx context.Context, caller, userID string, page, pageSize int) ([]*model.Notification, int, error)
	UnreadCount(ctx context.Context, caller, userID string) (int, error)
}

type NotificationServiceImpl struct {
	ledger *repository.Ledger
}

func NewNotificationService(ledger *repository.Ledger) NotificationService {
	return &NotificationServiceImpl{ledger: ledger}
}

func (s *NotificationServiceImpl) Emit(tx *repository.LedgerTx, recipientID string, senderID *string, typ model.NotificationType, relatedPostID *uint64, content string) (uint64, error) {
	if !typ.Valid() {
		return 0, ErrNotificationTypeInvalid
	}
	if recipientID == "" {
		return 0, ErrParamInvalid
	}

	id := tx.AllocateNotificationID()
	n := &model.Notification{
		ID:            id,
		RecipientID:   recipientID,
		Type:          typ,
		CreatedAt:     tx.Now(),
		IsRead:        false,
		Content:       validate.Truncate(content, validate.MaxNotificationLen),
		SenderID:      senderID,
		RelatedPostID: relatedPostID,
	}
	tx.PutNotification(n)
	return id, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, caller, userID string, notificationID uint64) error {
	return s.ledger.Transaction(ctx, "mark_read", caller, func(tx *repository.LedgerTx) error {
		n, ok := tx.GetNotification(notificationID)
		if !ok {
			return ErrNotificationNotFound
		}
		profile, err := loadProfile(tx, userID)
		if err != nil {
			return err
		}
		if err = requireOwner(profile, caller); err != nil {
			return err
		}
		if n.RecipientID != userID {
			return UnauthorizedError
		}
		if n.IsRead {
			return nil
		}
		n.IsRead = true
		tx.PutNotification(n)
		return nil
	})
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, caller, userID string) (int, error) {
	var marked int
	err := s.ledger.Transaction(ctx, "mark_all_read", caller, func(tx *repository.LedgerTx) error {
		profile, err := loadProfile(tx, userID)
		if err != nil {
			return err
		}
		if err = requireOwner(profile, caller); err != nil {
			return err
		}
		for _, id := range tx.NotificationIDs(userID) {
			n, _ := tx.GetNotification(id)
			if n == nil || n.IsRead {
				continue
			}
			n.IsRead = true
			tx.PutNotification(n)
			marked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if marked > 0 {
		log.InfoContext(ctx, "Notifications marked read", "user_id", userID, "count", marked)
	}
	return marked, nil
}

// List 按 ID 倒序分页，page 从 1 开始，返回当前页与总数
func (s *NotificationServiceImpl) List(ctx context.Context, caller, userID string, page, pageSize int) ([]*model.Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var (
		items []*model.Notification
		total int
	)
	err := s.ledger.View(ctx, func(tx *repository.LedgerTx) error {
		profile, err := loadProfile(tx, userID)
		if err != nil {
			return err
		}
		if err = requireOwner(profile, caller); err != nil {
			return err
		}

		ids := tx.NotificationIDs(userID)
		total = len(ids)
		start := (page - 1) * pageSize
		if start >= total {
			return nil
		}
		end := min(start+pageSize, total)
		items = make([]*model.Notification, 0, end-start)
		for i := start; i < end; i++ {
			n, _ := tx.GetNotification(ids[total-1-i])
			items = append(items, n)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, caller, userID string) (int, error) {
	var count int
	err := s.ledger.View(ctx, func(tx *repository.LedgerTx) error {
		profile, err := loadProfile(tx, userID)
		if err != nil {
			return err
		}
		if err = requireOwner(profile, caller); err != nil {
			return err
		}
		for _, id := range tx.NotificationIDs(userID) {
			if n, ok := tx.GetNotification(id); ok && !n.IsRead {
				count++
			}
		}
		return nil
	})
	return count, err
}
