package service

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/validate"
	"Keystone/internal/repository"
	"context"
	log "log/slog"
)

type AdminService interface {
	SetFeeRate(ctx context.Context, caller string, rate uint64) error
	SetMinTip(ctx context.Context, caller string, amount uint64) error
	SetFeeCollector(ctx context.Context, caller string, principal string) error
	SetProfileStatus(ctx context.Context, caller, userID string, status model.ModerationStatus) error
	SetPostStatus(ctx context.Context, caller string, postID uint64, status model.ModerationStatus) error
	GetSettings(ctx context.Context) (model.Settings, error)
	IsAdmin(ctx context.Context, caller string) (bool, error)
}

type AdminServiceImpl struct {
	ledger *repository.Ledger
}

func NewAdminService(ledger *repository.Ledger) AdminService {
	return &AdminServiceImpl{ledger: ledger}
}

func (s *AdminServiceImpl) SetFeeRate(ctx context.Context, caller string, rate uint64) error {
	if validate.FeeRate(rate) != nil {
		return ErrFeeRateInvalid
	}
	return s.updateSettings(ctx, "set_fee_rate", caller, func(settings *model.Settings) error {
		settings.FeeRate = rate
		return nil
	})
}

func (s *AdminServiceImpl) SetMinTip(ctx context.Context, caller string, amount uint64) error {
	if validate.PositiveAmount(amount) != nil {
		return ErrMinTipInvalid
	}
	return s.updateSettings(ctx, "set_min_tip", caller, func(settings *model.Settings) error {
		settings.MinTip = amount
		return nil
	})
}

// SetFeeCollector 转移管理员身份，新的收款人即新的管理员
func (s *AdminServiceImpl) SetFeeCollector(ctx context.Context, caller string, principal string) error {
	if err := validate.Principal(principal); err != nil {
		return invalid(err)
	}
	return s.updateSettings(ctx, "set_fee_collector", caller, func(settings *model.Settings) error {
		if principal == settings.Escrow {
			return ErrEscrowReserved
		}
		settings.FeeCollector = principal
		return nil
	})
}

func (s *AdminServiceImpl) updateSettings(ctx context.Context, op, caller string, mutate func(settings *model.Settings) error) error {
	var updated model.Settings
	err := s.ledger.Transaction(ctx, op, caller, func(tx *repository.LedgerTx) error {
		if err := requireAdmin(tx); err != nil {
			return err
		}
		updated = tx.Settings()
		if err := mutate(&updated); err != nil {
			return err
		}
		tx.PutSettings(updated)
		return nil
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "Ledger settings updated",
		"op", op,
		"fee_rate", updated.FeeRate,
		"min_tip", updated.MinTip,
		"fee_collector", updated.FeeCollector,
	)
	return nil
}

func (s *AdminServiceImpl) SetProfileStatus(ctx context.Context, caller, userID string, status model.ModerationStatus) error {
	if !status.Valid() {
		return ErrStatusInvalid
	}
	err := s.ledger.Transaction(ctx, "set_profile_status", caller, func(tx *repository.LedgerTx) error {
		if err := requireAdmin(tx); err != nil {
			return err
		}
		profile, err := loadProfile(tx, userID)
		if err != nil {
			return err
		}
		if profile.Status == status {
			return nil
		}
		profile.Status = status
		tx.PutProfile(profile)
		return nil
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "Profile status changed", "user_id", userID, "status", status.String())
	return nil
}

func (s *AdminServiceImpl) SetPostStatus(ctx context.Context, caller string, postID uint64, status model.ModerationStatus) error {
	if !status.Valid() {
		return ErrStatusInvalid
	}
	err := s.ledger.Transaction(ctx, "set_post_status", caller, func(tx *repository.LedgerTx) error {
		if err := requireAdmin(tx); err != nil {
			return err
		}
		post, ok := tx.GetPost(postID)
		if !ok {
			return ErrPostNotFound
		}
		if post.Status == status {
			return nil
		}
		post.Status = status
		tx.PutPost(post)
		return nil
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "Post status changed", "post_id", postID, "status", status.String())
	return nil
}

func (s *AdminServiceImpl) GetSettings(ctx context.Context) (model.Settings, error) {
	var settings model.Settings
	err := s.ledger.View(ctx, func(tx *repository.LedgerTx) error {
		settings = tx.Settings()
		return nil
	})
	return settings, err
}

func (s *AdminServiceImpl) IsAdmin(ctx context.Context, caller string) (bool, error) {
	var admin bool
	err := s.ledger.View(ctx, func(tx *repository.LedgerTx) error {
		admin = caller != "" && tx.Settings().FeeCollector == caller
		return nil
	})
	return admin, err
}
