package repository

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/util"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"sync"

	"github.com/goccy/go-json"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JournalRepo interface {
	Journal
	Migrate(ctx context.Context) error
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	VerifyChain(ctx context.Context) (int, error)
}

type JournalRepoImpl struct {
	db *gorm.DB

	mu       sync.Mutex
	lastHash string
}

func NewJournalRepo(db *gorm.DB) JournalRepo {
	return &JournalRepoImpl{db: db}
}

// Migrate 创建账本相关表
func (s *JournalRepoImpl) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&model.Settings{},
		&model.Profile{},
		&model.Follow{},
		&model.Post{},
		&model.Interaction{},
		&model.Notification{},
		&model.LedgerEntry{},
	)
	return pkgerrors.Wrap(err, "auto migrate ledger tables")
}

// Persist 在一个数据库事务内写入变更集与日志条目
func (s *JournalRepoImpl) Persist(ctx context.Context, cs *ChangeSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(cs)
	if err != nil {
		return pkgerrors.Wrap(err, "marshal change set")
	}
	entry := &model.LedgerEntry{
		Op:        cs.Op,
		Caller:    cs.Caller,
		Payload:   payload,
		PrevHash:  s.lastHash,
		Hash:      util.Sha3Hex([]byte(s.lastHash), payload),
		CreatedAt: cs.At,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cs.Settings != nil {
			if err := tx.Save(cs.Settings).Error; err != nil {
				return err
			}
		}
		if len(cs.Profiles) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&cs.Profiles).Error; err != nil {
				return err
			}
		}
		if len(cs.FollowsCreated) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cs.FollowsCreated).Error; err != nil {
				return err
			}
		}
		for _, k := range cs.FollowsDeleted {
			err := tx.Where("follower_id = ? AND following_id = ?", k.FollowerID, k.FollowingID).
				Delete(&model.Follow{}).Error
			if err != nil {
				return err
			}
		}
		if len(cs.Posts) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&cs.Posts).Error; err != nil {
				return err
			}
		}
		if len(cs.Interactions) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&cs.Interactions).Error; err != nil {
				return err
			}
		}
		if len(cs.Notifications) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&cs.Notifications).Error; err != nil {
				return err
			}
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return pkgerrors.Wrapf(err, "persist change set %s", cs.Op)
	}

	s.lastHash = entry.Hash
	return nil
}

// LoadSnapshot 读取全部账本表，并记住日志链的末端哈希
func (s *JournalRepoImpl) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	db := s.db.WithContext(ctx)
	snapshot := &Snapshot{}

	var settings model.Settings
	result := db.First(&settings, model.SettingsID)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(result.Error, "load settings")
	}
	if result.Error == nil {
		snapshot.Settings = &settings
	}

	if err := db.Find(&snapshot.Profiles).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load profiles")
	}
	if err := db.Find(&snapshot.Follows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load follows")
	}
	if err := db.Order("id asc").Find(&snapshot.Posts).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load posts")
	}
	if err := db.Find(&snapshot.Interactions).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load interactions")
	}
	if err := db.Order("id asc").Find(&snapshot.Notifications).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load notifications")
	}

	var last model.LedgerEntry
	result = db.Order("seq desc").Limit(1).Find(&last)
	if result.Error != nil {
		return nil, pkgerrors.Wrap(result.Error, "load journal tail")
	}
	s.mu.Lock()
	if result.RowsAffected > 0 {
		s.lastHash = last.Hash
	}
	s.mu.Unlock()

	return snapshot, nil
}

// VerifyChain 按序重算每条日志的哈希，返回校验通过的条目数
func (s *JournalRepoImpl) VerifyChain(ctx context.Context) (int, error) {
	var (
		prev     string
		verified int
		batch    []*model.LedgerEntry
	)
	result := s.db.WithContext(ctx).Order("seq asc").FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
		for _, e := range batch {
			if e.PrevHash != prev {
				return fmt.Errorf("journal entry %d: prev hash mismatch", e.Seq)
			}
			if util.Sha3Hex([]byte(e.PrevHash), e.Payload) != e.Hash {
				return fmt.Errorf("journal entry %d: hash mismatch", e.Seq)
			}
			prev = e.Hash
			verified++
		}
		return nil
	})
	if result.Error != nil {
		log.ErrorContext(ctx, "journal chain verification failed", "verified", verified, "err", result.Error)
		return verified, result.Error
	}
	return verified, nil
}
