package job

import (
	"Keystone/internal/pkg/bank"
	"Keystone/internal/pkg/logger"
	"Keystone/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// ChainVerifier 校验日志哈希链
type ChainVerifier interface {
	VerifyChain(ctx context.Context) (int, error)
}

// LedgerAuditJob 定期重算计数器并检查托管账户余额
type LedgerAuditJob struct {
	ledger   *repository.Ledger
	bank     bank.Bank
	verifier ChainVerifier
	timeout  time.Duration
}

// NewLedgerAuditJob verifier 可为空，未启用日志持久化时跳过哈希链校验
func NewLedgerAuditJob(ledger *repository.Ledger, b bank.Bank, verifier ChainVerifier) *LedgerAuditJob {
	return &LedgerAuditJob{
		ledger:   ledger,
		bank:     b,
		verifier: verifier,
		timeout:  5 * time.Minute,
	}
}

func (s *LedgerAuditJob) Run() {
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background()), s.timeout)
	defer cancel()
	_ = s.Audit(ctx)
}

// Audit 返回发现的问题数
func (s *LedgerAuditJob) Audit(ctx context.Context) int {
	problems := 0

	report, err := s.ledger.Audit(ctx)
	if err != nil {
		log.ErrorContext(ctx, "ledger audit error", "err", err)
		return problems + 1
	}
	for _, m := range report.Mismatches {
		log.WarnContext(ctx, "ledger counter mismatch", "detail", m)
	}
	problems += len(report.Mismatches)

	escrow := escrowOf(ctx, s.ledger)
	if escrow != "" {
		balance, err := s.bank.Balance(ctx, escrow)
		if err != nil {
			log.ErrorContext(ctx, "get escrow balance error", "err", err)
			problems++
		} else if balance != 0 {
			log.WarnContext(ctx, "escrow balance not drained", "escrow", escrow, "balance", balance)
			problems++
		}
	}

	if s.verifier != nil {
		entries, err := s.verifier.VerifyChain(ctx)
		if err != nil {
			log.ErrorContext(ctx, "ledger journal chain broken", "entries", entries, "err", err)
			problems++
		}
	}

	log.InfoContext(ctx, "ledger audit finished",
		"profiles", report.Profiles,
		"posts", report.Posts,
		"problems", problems,
	)
	return problems
}

func escrowOf(ctx context.Context, ledger *repository.Ledger) string {
	var escrow string
	_ = ledger.View(ctx, func(tx *repository.LedgerTx) error {
		escrow = tx.Settings().Escrow
		return nil
	})
	return escrow
}
