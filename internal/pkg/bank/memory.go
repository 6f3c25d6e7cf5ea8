package bank

import (
	"context"
	"math"
	"sync"
)

// MemoryBank 进程内余额表，用于测试与单机部署
type MemoryBank struct {
	mu       sync.Mutex
	balances map[string]uint64
	failNext error
	settled  int
}

func NewMemoryBank() *MemoryBank {
	return &MemoryBank{balances: make(map[string]uint64)}
}

func (b *MemoryBank) Balance(ctx context.Context, principal string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[principal], nil
}

func (b *MemoryBank) Credit(ctx context.Context, principal string, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.balances[principal] > math.MaxUint64-amount {
		return ErrBalanceOverflow
	}
	b.balances[principal] += amount
	return nil
}

// FailNextSettle 令下一次 Settle 直接返回 err
func (b *MemoryBank) FailNextSettle(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = err
}

// Settled 成功结算的批次数
func (b *MemoryBank) Settled() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settled
}

func (b *MemoryBank) Settle(ctx context.Context, transfers ...Transfer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkTransfers(transfers); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failNext != nil {
		err := b.failNext
		b.failNext = nil
		return err
	}

	staged := make(map[string]uint64)
	get := func(p string) uint64 {
		if v, ok := staged[p]; ok {
			return v
		}
		return b.balances[p]
	}
	for _, t := range transfers {
		from := get(t.From)
		if from < t.Amount {
			return ErrInsufficientFunds
		}
		staged[t.From] = from - t.Amount
		to := get(t.To)
		if to > math.MaxUint64-t.Amount {
			return ErrBalanceOverflow
		}
		staged[t.To] = to + t.Amount
	}

	for p, v := range staged {
		b.balances[p] = v
	}
	b.settled++
	return nil
}
