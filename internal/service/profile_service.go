package service

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/validate"
	"Keystone/internal/repository"
	"context"
	log "log/slog"
)

type ProfileService interface {
	Register(ctx context.Context, caller string, req *RegisterRequest) (string, error)
	Update(ctx context.Context, caller string, req *UpdateProfileRequest) error
	SetTipEnabled(ctx context.Context, caller, userID string, enabled bool) error
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
}

type RegisterRequest struct {
	UserID      string
	Username    string
	DisplayName string
	Bio         string
	AvatarURL   *string
}

type UpdateProfileRequest struct {
	UserID      string
	DisplayName string
	Bio         string
	AvatarURL   *string
}

type ProfileServiceImpl struct {
	ledger *repository.Ledger
}

func NewProfileService(ledger *repository.Ledger) ProfileService {
	return &ProfileServiceImpl{ledger: ledger}
}

func (s *ProfileServiceImpl) Register(ctx context.Context, caller string, req *RegisterRequest) (string, error) {
	if err := validate.UserID(req.UserID); err != nil {
		return "", invalid(err)
	}
	if err := validate.Username(req.Username); err != nil {
		return "", invalid(err)
	}
	if err := validateProfileFields(req.DisplayName, req.Bio, req.AvatarURL); err != nil {
		return "", err
	}
	if err := validate.Principal(caller); err != nil {
		return "", UnauthorizedError
	}

	err := s.ledger.Transaction(ctx, "register", caller, func(tx *repository.LedgerTx) error {
		if caller == tx.Settings().Escrow {
			return ErrEscrowReserved
		}
		if _, exists := tx.GetProfile(req.UserID); exists {
			return ErrProfileExist
		}
		tx.PutProfile(&model.Profile{
			UserID:      req.UserID,
			Owner:       caller,
			Username:    req.Username,
			DisplayName: req.DisplayName,
			Bio:         req.Bio,
			AvatarURL:   req.AvatarURL,
			CreatedAt:   tx.Now(),
			Status:      model.StatusActive,
			TipEnabled:  true,
		})
		return nil
	})
	if err != nil {
		return "", err
	}

	log.InfoContext(ctx, "Profile registered", "user_id", req.UserID, "owner", caller)
	return req.UserID, nil
}

func (s *ProfileServiceImpl) Update(ctx context.Context, caller string, req *UpdateProfileRequest) error {
	if err := validate.UserID(req.UserID); err != nil {
		return invalid(err)
	}
	if err := validateProfileFields(req.DisplayName, req.Bio, req.AvatarURL); err != nil {
		return err
	}

	return s.ledger.Transaction(ctx, "update_profile", caller, func(tx *repository.LedgerTx) error {
		profile, err := loadProfile(tx, req.UserID)
		if err != nil {
			return err
		}
		if err = requireOwner(profile, caller); err != nil {
			return err
		}
		if !profile.IsActive() {
			return ErrProfileInactive
		}

		profile.DisplayName = req.DisplayName
		profile.Bio = req.Bio
		profile.AvatarURL = req.AvatarURL
		tx.PutProfile(profile)
		return nil
	})
}

func (s *ProfileServiceImpl) SetTipEnabled(ctx context.Context, caller, userID string, enabled bool) error {
	if err := validate.UserID(userID); err != nil {
		return invalid(err)
	}

	return s.ledger.Transaction(ctx, "set_tip_enabled", caller, func(tx *repository.LedgerTx) error {
		profile, err := loadProfile(tx, userID)
		if err != nil {
			return err
		}
		if err = requireOwner(profile, caller); err != nil {
			return err
		}
		if !profile.IsActive() {
			return ErrProfileInactive
		}
		if profile.TipEnabled == enabled {
			return nil
		}
		profile.TipEnabled = enabled
		tx.PutProfile(profile)
		return nil
	})
}

func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var profile *model.Profile
	err := s.ledger.View(ctx, func(tx *repository.LedgerTx) error {
		p, err := loadProfile(tx, userID)
		profile = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func validateProfileFields(displayName, bio string, avatar *string) error {
	if err := validate.DisplayName(displayName); err != nil {
		return invalid(err)
	}
	if err := validate.Bio(bio); err != nil {
		return invalid(err)
	}
	if err := validate.AvatarURL(avatar); err != nil {
		return invalid(err)
	}
	return nil
}
