package job

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/bank"
	"Keystone/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	err error
}

func (s stubVerifier) VerifyChain(context.Context) (int, error) {
	return 3, s.err
}

func newAuditLedger() *repository.Ledger {
	return repository.NewLedger(model.Settings{FeeRate: 100, MinTip: 1, MaxContentLength: 280, FeeCollector: "deployer", Escrow: "escrow"})
}

func TestLedgerAuditJob_Clean(t *testing.T) {
	ledger := newAuditLedger()
	err := ledger.Transaction(context.Background(), "register", "p-alice", func(tx *repository.LedgerTx) error {
		tx.PutProfile(&model.Profile{UserID: "alice", Owner: "p-alice", Status: model.StatusActive})
		return nil
	})
	require.NoError(t, err)

	job := NewLedgerAuditJob(ledger, bank.NewMemoryBank(), stubVerifier{})
	assert.Equal(t, 0, job.Audit(context.Background()))
}

func TestLedgerAuditJob_ReportsProblems(t *testing.T) {
	ledger := newAuditLedger()
	err := ledger.Transaction(context.Background(), "register", "p-alice", func(tx *repository.LedgerTx) error {
		tx.PutProfile(&model.Profile{UserID: "alice", Owner: "p-alice", Status: model.StatusActive, FollowerCount: 2})
		return nil
	})
	require.NoError(t, err)

	b := bank.NewMemoryBank()
	require.NoError(t, b.Credit(context.Background(), "escrow", 10))

	job := NewLedgerAuditJob(ledger, b, stubVerifier{err: errors.New("hash mismatch")})
	// follower 计数漂移、托管余额非零、哈希链断裂
	assert.Equal(t, 3, job.Audit(context.Background()))
}

func TestLedgerAuditJob_NilVerifier(t *testing.T) {
	job := NewLedgerAuditJob(newAuditLedger(), bank.NewMemoryBank(), nil)
	assert.NotPanics(t, job.Run)
}
