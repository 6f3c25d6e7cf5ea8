package repository

import (
	"Keystone/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type recordingJournal struct {
	sets []*ChangeSet
	err  error
}

func (j *recordingJournal) Persist(_ context.Context, cs *ChangeSet) error {
	if j.err != nil {
		return j.err
	}
	j.sets = append(j.sets, cs)
	return nil
}

type recordingHook struct {
	ops []string
}

func (h *recordingHook) AfterCommit(_ context.Context, cs *ChangeSet) {
	h.ops = append(h.ops, cs.Op)
}

func newTestLedger(opts ...Option) *Ledger {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewLedger(model.Settings{FeeRate: 200, MinTip: 1, MaxContentLength: 1024}, opts...)
}

func TestLedger_CommitAppliesChangeSet(t *testing.T) {
	journal := &recordingJournal{}
	hook := &recordingHook{}
	l := newTestLedger(WithJournal(journal), WithCommitHooks(hook))
	ctx := context.Background()

	err := l.Transaction(ctx, "register", "p1", func(tx *LedgerTx) error {
		assert.Equal(t, fixedNow, tx.Now())
		tx.PutProfile(&model.Profile{UserID: "alice", Owner: "p1", Status: model.StatusActive})
		return nil
	})
	require.NoError(t, err)

	require.Len(t, journal.sets, 1)
	assert.Equal(t, "p1", journal.sets[0].Caller)
	assert.Equal(t, []string{"register"}, hook.ops)

	_ = l.View(ctx, func(tx *LedgerTx) error {
		p, ok := tx.GetProfile("alice")
		require.True(t, ok)
		assert.Equal(t, "p1", p.Owner)
		return nil
	})
}

func TestLedger_FailedTransactionLeavesNoTrace(t *testing.T) {
	journal := &recordingJournal{}
	l := newTestLedger(WithJournal(journal))
	ctx := context.Background()

	compensated := false
	boom := errors.New("boom")
	err := l.Transaction(ctx, "create_post", "p1", func(tx *LedgerTx) error {
		id := tx.AllocatePostID()
		tx.PutPost(&model.Post{ID: id, AuthorID: "alice"})
		tx.OnRollback(func(context.Context) { compensated = true })
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.True(t, compensated)
	assert.Empty(t, journal.sets)

	_ = l.View(ctx, func(tx *LedgerTx) error {
		_, ok := tx.GetPost(1)
		assert.False(t, ok)
		assert.Equal(t, uint64(1), tx.Settings().NextPostID)
		return nil
	})
}

func TestLedger_JournalFailureRollsBack(t *testing.T) {
	boom := errors.New("db down")
	l := newTestLedger(WithJournal(&recordingJournal{err: boom}))

	compensated := false
	err := l.Transaction(context.Background(), "follow", "p1", func(tx *LedgerTx) error {
		tx.PutFollow(&model.Follow{FollowerID: "a", FollowingID: "b"})
		tx.OnRollback(func(context.Context) { compensated = true })
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.True(t, compensated)

	_ = l.View(context.Background(), func(tx *LedgerTx) error {
		assert.False(t, tx.HasFollow("a", "b"))
		return nil
	})
}

func TestLedger_AllocatesSequentialIDs(t *testing.T) {
	l := newTestLedger()
	ctx := context.Background()

	var got []uint64
	for i := 0; i < 3; i++ {
		err := l.Transaction(ctx, "emit", "", func(tx *LedgerTx) error {
			a := tx.AllocateNotificationID()
			b := tx.AllocateNotificationID()
			got = append(got, a, b)
			tx.PutNotification(&model.Notification{ID: a, RecipientID: "bob"})
			tx.PutNotification(&model.Notification{ID: b, RecipientID: "bob"})
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, got)

	_ = l.View(ctx, func(tx *LedgerTx) error {
		assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, tx.NotificationIDs("bob"))
		assert.Equal(t, uint64(7), tx.Settings().NextNotificationID)
		return nil
	})
}

func TestLedger_DefaultInteraction(t *testing.T) {
	l := newTestLedger()
	_ = l.View(context.Background(), func(tx *LedgerTx) error {
		i, ok := tx.GetInteraction(9, "carol")
		assert.False(t, ok)
		assert.Equal(t, uint64(9), i.PostID)
		assert.False(t, i.Liked)
		assert.False(t, i.Bookmarked)
		return nil
	})
}

func TestLedger_FollowDeleteWithinSameTransaction(t *testing.T) {
	l := newTestLedger()
	ctx := context.Background()

	require.NoError(t, l.Transaction(ctx, "follow", "", func(tx *LedgerTx) error {
		tx.PutFollow(&model.Follow{FollowerID: "a", FollowingID: "b"})
		return nil
	}))

	var cs *ChangeSet
	hook := &captureHook{fn: func(c *ChangeSet) { cs = c }}
	l.AddCommitHook(hook)
	require.NoError(t, l.Transaction(ctx, "unfollow", "", func(tx *LedgerTx) error {
		tx.DeleteFollow("a", "b")
		assert.False(t, tx.HasFollow("a", "b"))
		return nil
	}))
	require.NotNil(t, cs)
	assert.Equal(t, []model.FollowKey{{FollowerID: "a", FollowingID: "b"}}, cs.FollowsDeleted)
	assert.Empty(t, cs.FollowsCreated)
}

type captureHook struct {
	fn func(*ChangeSet)
}

func (h *captureHook) AfterCommit(_ context.Context, cs *ChangeSet) {
	h.fn(cs)
}

func TestLedger_AuditDetectsDrift(t *testing.T) {
	l := newTestLedger()
	l.Restore(&Snapshot{
		Profiles: []*model.Profile{
			{UserID: "a", FollowingCount: 1},
			{UserID: "b", FollowerCount: 2},
		},
		Follows: []*model.Follow{{FollowerID: "a", FollowingID: "b"}},
	})

	report, err := l.Audit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Profiles)
	assert.Equal(t, []string{"profile b follower-count"}, report.Mismatches)
}

func TestLedger_CancelledContext(t *testing.T) {
	l := newTestLedger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := l.Transaction(ctx, "noop", "", func(*LedgerTx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
