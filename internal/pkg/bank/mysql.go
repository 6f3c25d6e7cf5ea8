package bank

import (
	"Keystone/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MySQLBank 基于 accounts 表的余额实现，每批转账在一个数据库事务内完成
type MySQLBank struct {
	db *gorm.DB
}

func NewMySQLBank(db *gorm.DB) *MySQLBank {
	return &MySQLBank{db: db}
}

func (b *MySQLBank) Migrate(ctx context.Context) error {
	return pkgerrors.Wrap(b.db.WithContext(ctx).AutoMigrate(&model.Account{}), "auto migrate accounts")
}

func (b *MySQLBank) Balance(ctx context.Context, principal string) (uint64, error) {
	var account model.Account
	result := b.db.WithContext(ctx).Where("principal = ?", principal).Limit(1).Find(&account)
	if result.Error != nil {
		return 0, pkgerrors.Wrap(result.Error, "query balance")
	}
	return account.Balance, nil
}

func (b *MySQLBank) Credit(ctx context.Context, principal string, amount uint64) error {
	return pkgerrors.Wrap(credit(b.db.WithContext(ctx), principal, amount), "credit account")
}

func (b *MySQLBank) Settle(ctx context.Context, transfers ...Transfer) error {
	if err := checkTransfers(transfers); err != nil {
		return err
	}
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range transfers {
			result := tx.Model(&model.Account{}).
				Where("principal = ? AND balance >= ?", t.From, t.Amount).
				Update("balance", gorm.Expr("balance - ?", t.Amount))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientFunds
			}
			if err := credit(tx, t.To, t.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrInsufficientFunds) {
		return err
	}
	return pkgerrors.Wrap(err, "settle transfers")
}

func credit(db *gorm.DB, principal string, amount uint64) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "principal"}},
		DoUpdates: clause.Assignments(map[string]any{"balance": gorm.Expr("balance + ?", amount)}),
	}).Create(&model.Account{Principal: principal, Balance: amount}).Error
}
