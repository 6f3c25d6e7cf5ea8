package service

import (
	"Keystone/internal/model"
	"Keystone/internal/repository"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "bob")

	var ids []uint64
	err := e.ledger.Transaction(e.ctx, "emit", "", func(tx *repository.LedgerTx) error {
		for i := 0; i < 3; i++ {
			id, err := e.notifications.Emit(tx, "bob", nil, model.NotificationMention, nil, strings.Repeat("你", 300))
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)

	inbox := e.inbox(t, "bob")
	require.Len(t, inbox, 3)
	assert.Equal(t, 256, utf8.RuneCountInString(inbox[0].Content))
	assert.False(t, inbox[0].IsRead)
	assert.Nil(t, inbox[0].SenderID)
}

func TestEmit_InvalidType(t *testing.T) {
	e := newTestEnv(t)
	err := e.ledger.Transaction(e.ctx, "emit", "", func(tx *repository.LedgerTx) error {
		_, err := e.notifications.Emit(tx, "bob", nil, model.NotificationType(42), nil, "x")
		return err
	})
	assert.ErrorIs(t, err, ErrNotificationTypeInvalid)
	assert.Equal(t, uint64(1), e.settings(t).NextNotificationID)
}

func TestMarkRead(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice")
	bob := e.register(t, "bob")
	require.NoError(t, e.follows.Follow(e.ctx, alice, "alice", "bob"))
	require.NoError(t, e.follows.Follow(e.ctx, bob, "bob", "alice"))

	assert.ErrorIs(t, e.notifications.MarkRead(e.ctx, bob, "bob", 99), ErrNotificationNotFound)
	assert.ErrorIs(t, e.notifications.MarkRead(e.ctx, alice, "bob", 1), UnauthorizedError)
	// alice 拥有自己的档案，但不是 1 号通知的收件人
	assert.ErrorIs(t, e.notifications.MarkRead(e.ctx, alice, "alice", 1), UnauthorizedError)

	require.NoError(t, e.notifications.MarkRead(e.ctx, bob, "bob", 1))
	require.NoError(t, e.notifications.MarkRead(e.ctx, bob, "bob", 1))

	unread, err := e.notifications.UnreadCount(e.ctx, bob, "bob")
	require.NoError(t, err)
	assert.Zero(t, unread)
	unread, err = e.notifications.UnreadCount(e.ctx, alice, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	n, err := e.notifications.MarkAllRead(e.ctx, alice, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = e.notifications.MarkAllRead(e.ctx, alice, "alice")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListNotifications_Paging(t *testing.T) {
	e := newTestEnv(t)
	bob := e.register(t, "bob")
	for _, u := range []string{"u01", "u02", "u03", "u04", "u05"} {
		owner := e.register(t, u)
		require.NoError(t, e.follows.Follow(e.ctx, owner, u, "bob"))
	}

	page, total, err := e.notifications.List(e.ctx, bob, "bob", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(5), page[0].ID)
	assert.Equal(t, uint64(4), page[1].ID)

	page, _, err = e.notifications.List(e.ctx, bob, "bob", 3, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, uint64(1), page[0].ID)

	page, _, err = e.notifications.List(e.ctx, bob, "bob", 4, 2)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, _, err = e.notifications.List(e.ctx, "p-u01", "bob", 1, 2)
	assert.ErrorIs(t, err, UnauthorizedError)
}
