package repository

import (
	"Keystone/internal/model"
	"context"
	"sort"
	"time"
)

// LedgerTx 一次调用内的暂存视图：读穿透到账本，写只落在暂存区
type LedgerTx struct {
	ledger *Ledger
	op     string
	caller string
	now    time.Time

	profiles      map[string]*model.Profile
	follows       map[model.FollowKey]*model.Follow // nil 表示删除
	posts         map[uint64]*model.Post
	interactions  map[model.InteractionKey]*model.Interaction
	notifications map[uint64]*model.Notification
	settings      *model.Settings

	rollbacks []func(ctx context.Context)
}

func newLedgerTx(l *Ledger, op, caller string, now time.Time) *LedgerTx {
	return &LedgerTx{
		ledger:        l,
		op:            op,
		caller:        caller,
		now:           now,
		profiles:      make(map[string]*model.Profile),
		follows:       make(map[model.FollowKey]*model.Follow),
		posts:         make(map[uint64]*model.Post),
		interactions:  make(map[model.InteractionKey]*model.Interaction),
		notifications: make(map[uint64]*model.Notification),
	}
}

// Now 事务开始时取一次的时间戳，整个调用内共享
func (tx *LedgerTx) Now() time.Time {
	return tx.now
}

func (tx *LedgerTx) Caller() string {
	return tx.caller
}

func (tx *LedgerTx) GetProfile(userID string) (*model.Profile, bool) {
	if p, ok := tx.profiles[userID]; ok {
		return p.Clone(), true
	}
	if p, ok := tx.ledger.profiles[userID]; ok {
		return p.Clone(), true
	}
	return nil, false
}

func (tx *LedgerTx) PutProfile(p *model.Profile) {
	tx.profiles[p.UserID] = p.Clone()
}

func (tx *LedgerTx) HasFollow(followerID, followingID string) bool {
	key := model.FollowKey{FollowerID: followerID, FollowingID: followingID}
	if f, ok := tx.follows[key]; ok {
		return f != nil
	}
	_, ok := tx.ledger.follows[key]
	return ok
}

func (tx *LedgerTx) PutFollow(f *model.Follow) {
	c := *f
	tx.follows[f.Key()] = &c
}

func (tx *LedgerTx) DeleteFollow(followerID, followingID string) {
	tx.follows[model.FollowKey{FollowerID: followerID, FollowingID: followingID}] = nil
}

func (tx *LedgerTx) GetPost(id uint64) (*model.Post, bool) {
	if p, ok := tx.posts[id]; ok {
		return p.Clone(), true
	}
	if p, ok := tx.ledger.posts[id]; ok {
		return p.Clone(), true
	}
	return nil, false
}

func (tx *LedgerTx) PutPost(p *model.Post) {
	tx.posts[p.ID] = p.Clone()
}

// GetInteraction 不存在时返回默认记录 (liked=false, bookmarked=false) 与 false
func (tx *LedgerTx) GetInteraction(postID uint64, userID string) (*model.Interaction, bool) {
	key := model.InteractionKey{PostID: postID, UserID: userID}
	if i, ok := tx.interactions[key]; ok {
		c := *i
		return &c, true
	}
	if i, ok := tx.ledger.interactions[key]; ok {
		c := *i
		return &c, true
	}
	return &model.Interaction{PostID: postID, UserID: userID}, false
}

func (tx *LedgerTx) PutInteraction(i *model.Interaction) {
	c := *i
	tx.interactions[i.Key()] = &c
}

func (tx *LedgerTx) GetNotification(id uint64) (*model.Notification, bool) {
	if n, ok := tx.notifications[id]; ok {
		return n.Clone(), true
	}
	if n, ok := tx.ledger.notifications[id]; ok {
		return n.Clone(), true
	}
	return nil, false
}

func (tx *LedgerTx) PutNotification(n *model.Notification) {
	tx.notifications[n.ID] = n.Clone()
}

// NotificationIDs 返回收件人的全部通知 ID，按升序
func (tx *LedgerTx) NotificationIDs(recipientID string) []uint64 {
	committed := tx.ledger.inbox[recipientID]
	ids := make([]uint64, 0, len(committed))
	ids = append(ids, committed...)
	for id, n := range tx.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if _, exists := tx.ledger.notifications[id]; !exists {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (tx *LedgerTx) Settings() model.Settings {
	if tx.settings != nil {
		return *tx.settings
	}
	return tx.ledger.settings
}

func (tx *LedgerTx) PutSettings(s model.Settings) {
	s.ID = model.SettingsID
	tx.settings = &s
}

// AllocatePostID 取出下一个帖子 ID，计数器恰好前进一
func (tx *LedgerTx) AllocatePostID() uint64 {
	s := tx.Settings()
	id := s.NextPostID
	s.NextPostID++
	tx.PutSettings(s)
	return id
}

func (tx *LedgerTx) AllocateNotificationID() uint64 {
	s := tx.Settings()
	id := s.NextNotificationID
	s.NextNotificationID++
	tx.PutSettings(s)
	return id
}

// OnRollback 注册补偿动作，事务在 fn 成功后仍可能因日志持久化失败而回滚
func (tx *LedgerTx) OnRollback(fn func(ctx context.Context)) {
	tx.rollbacks = append(tx.rollbacks, fn)
}

// rollback 补偿动作不随请求取消而中断
func (tx *LedgerTx) rollback(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i := len(tx.rollbacks) - 1; i >= 0; i-- {
		tx.rollbacks[i](ctx)
	}
	tx.rollbacks = nil
}

func (tx *LedgerTx) changeSet() *ChangeSet {
	cs := &ChangeSet{
		Op:     tx.op,
		Caller: tx.caller,
		At:     tx.now,
	}

	for _, p := range tx.profiles {
		cs.Profiles = append(cs.Profiles, p.Clone())
	}
	sort.Slice(cs.Profiles, func(i, j int) bool { return cs.Profiles[i].UserID < cs.Profiles[j].UserID })

	for k, f := range tx.follows {
		_, existed := tx.ledger.follows[k]
		switch {
		case f != nil && !existed:
			c := *f
			cs.FollowsCreated = append(cs.FollowsCreated, &c)
		case f == nil && existed:
			cs.FollowsDeleted = append(cs.FollowsDeleted, k)
		}
	}
	sort.Slice(cs.FollowsCreated, func(i, j int) bool {
		return followKeyLess(cs.FollowsCreated[i].Key(), cs.FollowsCreated[j].Key())
	})
	sort.Slice(cs.FollowsDeleted, func(i, j int) bool {
		return followKeyLess(cs.FollowsDeleted[i], cs.FollowsDeleted[j])
	})

	for _, p := range tx.posts {
		cs.Posts = append(cs.Posts, p.Clone())
	}
	sort.Slice(cs.Posts, func(i, j int) bool { return cs.Posts[i].ID < cs.Posts[j].ID })

	for _, i := range tx.interactions {
		c := *i
		cs.Interactions = append(cs.Interactions, &c)
	}
	sort.Slice(cs.Interactions, func(i, j int) bool {
		a, b := cs.Interactions[i], cs.Interactions[j]
		if a.PostID != b.PostID {
			return a.PostID < b.PostID
		}
		return a.UserID < b.UserID
	})

	for _, n := range tx.notifications {
		cs.Notifications = append(cs.Notifications, n.Clone())
	}
	sort.Slice(cs.Notifications, func(i, j int) bool { return cs.Notifications[i].ID < cs.Notifications[j].ID })

	if tx.settings != nil {
		s := *tx.settings
		cs.Settings = &s
	}
	return cs
}

func followKeyLess(a, b model.FollowKey) bool {
	if a.FollowerID != b.FollowerID {
		return a.FollowerID < b.FollowerID
	}
	return a.FollowingID < b.FollowingID
}
