package service

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/validate"
	"Keystone/internal/repository"
)

func loadProfile(tx *repository.LedgerTx, userID string) (*model.Profile, error) {
	profile, ok := tx.GetProfile(userID)
	if !ok {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// loadActiveProfile 不存在返回 NotFound，非 active 返回 Forbidden
func loadActiveProfile(tx *repository.LedgerTx, userID string) (*model.Profile, error) {
	profile, err := loadProfile(tx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive() {
		return nil, ErrProfileInactive
	}
	return profile, nil
}

func requireOwner(profile *model.Profile, caller string) error {
	if profile.Owner != caller {
		return UnauthorizedError
	}
	return nil
}

func loadActivePost(tx *repository.LedgerTx, postID uint64) (*model.Post, error) {
	post, ok := tx.GetPost(postID)
	if !ok {
		return nil, ErrPostNotFound
	}
	if !post.IsActive() {
		return nil, ErrPostInactive
	}
	return post, nil
}

// requireAdmin 管理员即当前手续费收款人
func requireAdmin(tx *repository.LedgerTx) error {
	if tx.Caller() == "" || tx.Caller() != tx.Settings().FeeCollector {
		return UnauthorizedError
	}
	return nil
}

func validateUserIDs(ids ...string) error {
	for _, id := range ids {
		if err := validate.UserID(id); err != nil {
			return invalid(err)
		}
	}
	return nil
}

func decrement(v uint64) uint64 {
	if v == 0 {
		return 0
	}
	return v - 1
}
