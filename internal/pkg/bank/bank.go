package bank

import (
	"context"
	"errors"
)

var (
	ErrInsufficientFunds = errors.New("余额不足")
	ErrInvalidTransfer   = errors.New("转账参数错误")
	ErrBalanceOverflow   = errors.New("余额溢出")
)

// Transfer 一笔从 From 到 To 的转账
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// Bank 外部价值转移原语
type Bank interface {
	Balance(ctx context.Context, principal string) (uint64, error)
	// Settle 按顺序执行全部转账，任意一笔失败则全部不生效
	Settle(ctx context.Context, transfers ...Transfer) error
	// Credit 凭空增发余额，仅用于创世分配
	Credit(ctx context.Context, principal string, amount uint64) error
}

func checkTransfers(transfers []Transfer) error {
	for _, t := range transfers {
		if t.From == "" || t.To == "" || t.Amount == 0 {
			return ErrInvalidTransfer
		}
	}
	return nil
}
