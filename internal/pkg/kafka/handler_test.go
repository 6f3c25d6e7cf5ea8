package kafka

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/consts"
	"Keystone/internal/pkg/mongo"
	"Keystone/internal/repository"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHashWriter struct {
	mu     sync.Mutex
	hashes map[string]map[string]any
}

func (f *fakeHashWriter) WriteHash(_ context.Context, key string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hashes == nil {
		f.hashes = make(map[string]map[string]any)
	}
	if f.hashes[key] == nil {
		f.hashes[key] = make(map[string]any)
	}
	for k, v := range fields {
		f.hashes[key][k] = v
	}
	return nil
}

type fakeSysBoxRepo struct {
	docs map[uint64]*mongo.SysBoxModel
}

func (f *fakeSysBoxRepo) EnsureIndexes(context.Context) error { return nil }

func (f *fakeSysBoxRepo) UpsertNotification(_ context.Context, msg *mongo.SysBoxModel) error {
	if f.docs == nil {
		f.docs = make(map[uint64]*mongo.SysBoxModel)
	}
	if existing, ok := f.docs[msg.NotificationID]; ok {
		existing.IsRead = msg.IsRead
		return nil
	}
	c := *msg
	f.docs[msg.NotificationID] = &c
	return nil
}

func (f *fakeSysBoxRepo) GetUnreadCount(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, d := range f.docs {
		if d.ReceiverID == userID && !d.IsRead {
			n++
		}
	}
	return n, nil
}

type fakePusher struct {
	unread map[string]int64
	pushed map[string][][]byte
}

func (f *fakePusher) SetUnread(_ context.Context, userID string, count int64) error {
	if f.unread == nil {
		f.unread = make(map[string]int64)
	}
	f.unread[userID] = count
	return nil
}

func (f *fakePusher) Push(_ context.Context, userID string, payload []byte) error {
	if f.pushed == nil {
		f.pushed = make(map[string][][]byte)
	}
	f.pushed[userID] = append(f.pushed[userID], payload)
	return nil
}

func eventMessage(t *testing.T, cs *repository.ChangeSet) *sarama.ConsumerMessage {
	t.Helper()
	value, err := json.Marshal(&LedgerEvent{Version: consts.LedgerEventVersion, EventID: "e", Change: cs})
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Key: []byte(ledgerPartitionKey), Value: value}
}

func TestToLedgerEvent(t *testing.T) {
	msg := eventMessage(t, &repository.ChangeSet{Op: "follow"})
	event, err := ToLedgerEvent(msg)
	require.NoError(t, err)
	assert.Equal(t, "follow", event.Change.Op)

	_, err = ToLedgerEvent(&sarama.ConsumerMessage{Value: []byte(`{"version":99,"change":{}}`)})
	assert.Error(t, err)

	_, err = ToLedgerEvent(&sarama.ConsumerMessage{Value: []byte(`{"version":1}`)})
	assert.Error(t, err)

	_, err = ToLedgerEvent(&sarama.ConsumerMessage{Value: []byte(`not json`)})
	assert.Error(t, err)
}

func TestCounterHandler_WritesAbsoluteValues(t *testing.T) {
	w := &fakeHashWriter{}
	h := NewCounterHandler(w)
	ctx := context.Background()

	cs := &repository.ChangeSet{
		Op: "like",
		Profiles: []*model.Profile{
			{UserID: "bob", FollowerCount: 3, PostCount: 2, TipsReceived: 50, Status: model.StatusActive},
		},
		Posts:    []*model.Post{{ID: 7, LikeCount: 4, Status: model.StatusSuspended}},
		Settings: &model.Settings{FeeRate: 250, MinTip: 10, FeeCollector: "deployer"},
	}
	msg := eventMessage(t, cs)
	require.NoError(t, h.logic(ctx, msg))
	// 重复投递不改变结果
	require.NoError(t, h.logic(ctx, msg))

	assert.Equal(t, uint64(3), w.hashes[consts.ProfileCounterKey+"bob"]["follower_count"])
	assert.Equal(t, "active", w.hashes[consts.ProfileCounterKey+"bob"]["status"])
	assert.Equal(t, uint64(4), w.hashes[consts.PostCounterKey+"7"]["like_count"])
	assert.Equal(t, "suspended", w.hashes[consts.PostCounterKey+"7"]["status"])
	assert.Equal(t, uint64(250), w.hashes[consts.LedgerSettingsKey]["fee_rate"])
}

func TestCounterHandler_SkipsPoisonMessage(t *testing.T) {
	w := &fakeHashWriter{}
	h := NewCounterHandler(w)
	err := h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte("garbage")})
	assert.NoError(t, err)
	assert.Empty(t, w.hashes)
}

func TestNotificationHandler_MirrorsAndPushes(t *testing.T) {
	repo := &fakeSysBoxRepo{}
	pusher := &fakePusher{}
	h := NewNotificationHandler(repo, pusher)
	ctx := context.Background()
	sender := "alice"
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	created := eventMessage(t, &repository.ChangeSet{
		Op: "follow",
		Notifications: []*model.Notification{
			{ID: 1, RecipientID: "bob", SenderID: &sender, Type: model.NotificationFollow, CreatedAt: now, Content: "alice 关注了你"},
		},
	})
	require.NoError(t, h.logic(ctx, created))
	require.NoError(t, h.logic(ctx, created))

	require.Len(t, repo.docs, 1)
	assert.Equal(t, "follow", repo.docs[1].Type)
	assert.Equal(t, int64(1), pusher.unread["bob"])
	assert.Len(t, pusher.pushed["bob"], 2)

	read := eventMessage(t, &repository.ChangeSet{
		Op: "mark_read",
		Notifications: []*model.Notification{
			{ID: 1, RecipientID: "bob", SenderID: &sender, Type: model.NotificationFollow, CreatedAt: now, IsRead: true},
		},
	})
	require.NoError(t, h.logic(ctx, read))
	assert.True(t, repo.docs[1].IsRead)
	assert.Equal(t, "alice 关注了你", repo.docs[1].Content)
	assert.Equal(t, int64(0), pusher.unread["bob"])
	assert.Len(t, pusher.pushed["bob"], 2)
}

func TestProcessBatch_OrderedWithinKey(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = make(map[string][]int64)
	)
	logic := func(_ context.Context, msg *sarama.ConsumerMessage) error {
		mu.Lock()
		defer mu.Unlock()
		seen[string(msg.Key)] = append(seen[string(msg.Key)], msg.Offset)
		return nil
	}

	var batch []*sarama.ConsumerMessage
	for i := int64(0); i < 10; i++ {
		key := "a"
		if i%3 == 0 {
			key = "b"
		}
		batch = append(batch, &sarama.ConsumerMessage{Key: []byte(key), Offset: i})
	}
	processBatch(context.Background(), batch, logic)

	assert.Equal(t, []int64{1, 2, 4, 5, 7, 8}, seen["a"])
	assert.Equal(t, []int64{0, 3, 6, 9}, seen["b"])
}

func TestRetryUntilDone_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	ok := retryUntilDone(ctx, &sarama.ConsumerMessage{}, func(context.Context, *sarama.ConsumerMessage) error {
		calls++
		cancel()
		return assert.AnError
	})
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}
