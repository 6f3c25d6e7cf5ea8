package repository

import (
	"Keystone/internal/model"
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Journal 在变更应用到内存之前持久化变更集，失败则整个事务放弃
type Journal interface {
	Persist(ctx context.Context, cs *ChangeSet) error
}

// CommitHook 变更集提交后的回调，在写锁内按提交顺序调用
type CommitHook interface {
	AfterCommit(ctx context.Context, cs *ChangeSet)
}

type Option func(*Ledger)

func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

func WithJournal(journal Journal) Option {
	return func(l *Ledger) {
		l.journal = journal
	}
}

func WithCommitHooks(hooks ...CommitHook) Option {
	return func(l *Ledger) {
		l.hooks = append(l.hooks, hooks...)
	}
}

// Ledger 内存中的账本表，所有写操作经 Transaction 串行执行
type Ledger struct {
	mu sync.RWMutex

	profiles      map[string]*model.Profile
	follows       map[model.FollowKey]*model.Follow
	posts         map[uint64]*model.Post
	interactions  map[model.InteractionKey]*model.Interaction
	notifications map[uint64]*model.Notification
	inbox         map[string][]uint64
	settings      model.Settings

	clock   func() time.Time
	journal Journal
	hooks   []CommitHook
}

func NewLedger(settings model.Settings, opts ...Option) *Ledger {
	settings.ID = model.SettingsID
	if settings.NextPostID == 0 {
		settings.NextPostID = 1
	}
	if settings.NextNotificationID == 0 {
		settings.NextNotificationID = 1
	}
	l := &Ledger{
		profiles:      make(map[string]*model.Profile),
		follows:       make(map[model.FollowKey]*model.Follow),
		posts:         make(map[uint64]*model.Post),
		interactions:  make(map[model.InteractionKey]*model.Interaction),
		notifications: make(map[uint64]*model.Notification),
		inbox:         make(map[string][]uint64),
		settings:      settings,
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddCommitHook 在启动阶段追加提交回调
func (l *Ledger) AddCommitHook(hook CommitHook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, hook)
}

// Transaction 执行一次原子操作：fn 返回错误时所有暂存写入被丢弃
func (l *Ledger) Transaction(ctx context.Context, op, caller string, fn func(tx *LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx := newLedgerTx(l, op, caller, l.clock())
	if err := fn(tx); err != nil {
		tx.rollback(ctx)
		return err
	}

	cs := tx.changeSet()
	if cs.Empty() {
		return nil
	}

	if l.journal != nil {
		if err := l.journal.Persist(ctx, cs); err != nil {
			log.ErrorContext(ctx, "ledger journal persist failed", "op", op, "err", err)
			tx.rollback(ctx)
			return err
		}
	}

	l.apply(cs)

	for _, hook := range l.hooks {
		hook.AfterCommit(ctx, cs)
	}
	return nil
}

// View 只读访问，暂存写入不会被提交
func (l *Ledger) View(ctx context.Context, fn func(tx *LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(newLedgerTx(l, "view", "", l.clock()))
}

func (l *Ledger) apply(cs *ChangeSet) {
	for _, p := range cs.Profiles {
		l.profiles[p.UserID] = p.Clone()
	}
	for _, f := range cs.FollowsCreated {
		c := *f
		l.follows[f.Key()] = &c
	}
	for _, k := range cs.FollowsDeleted {
		delete(l.follows, k)
	}
	for _, p := range cs.Posts {
		l.posts[p.ID] = p.Clone()
	}
	for _, i := range cs.Interactions {
		c := *i
		l.interactions[i.Key()] = &c
	}
	for _, n := range cs.Notifications {
		if _, exists := l.notifications[n.ID]; !exists {
			l.inbox[n.RecipientID] = append(l.inbox[n.RecipientID], n.ID)
		}
		l.notifications[n.ID] = n.Clone()
	}
	if cs.Settings != nil {
		l.settings = *cs.Settings
	}
}

// Snapshot 账本全量数据，用于从日志库恢复
type Snapshot struct {
	Settings      *model.Settings
	Profiles      []*model.Profile
	Follows       []*model.Follow
	Posts         []*model.Post
	Interactions  []*model.Interaction
	Notifications []*model.Notification
}

// Restore 用快照替换内存状态，只在启动时调用
func (l *Ledger) Restore(s *Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s.Settings != nil {
		l.settings = *s.Settings
	}
	for _, p := range s.Profiles {
		l.profiles[p.UserID] = p.Clone()
	}
	for _, f := range s.Follows {
		c := *f
		l.follows[f.Key()] = &c
	}
	for _, p := range s.Posts {
		l.posts[p.ID] = p.Clone()
	}
	for _, i := range s.Interactions {
		c := *i
		l.interactions[i.Key()] = &c
	}

	notifications := make([]*model.Notification, len(s.Notifications))
	copy(notifications, s.Notifications)
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].ID < notifications[j].ID
	})
	for _, n := range notifications {
		if _, exists := l.notifications[n.ID]; !exists {
			l.inbox[n.RecipientID] = append(l.inbox[n.RecipientID], n.ID)
		}
		l.notifications[n.ID] = n.Clone()
	}

	log.Info("Ledger restored from snapshot",
		"profiles", len(l.profiles),
		"follows", len(l.follows),
		"posts", len(l.posts),
		"notifications", len(l.notifications),
	)
}

// AuditReport 计数器与关系表的一致性检查结果
type AuditReport struct {
	Profiles           int
	Posts              int
	Mismatches         []string
	NextPostID         uint64
	NextNotificationID uint64
}

// Audit 重新统计关注边、回复与点赞，与增量维护的计数器对比
func (l *Ledger) Audit(ctx context.Context) (*AuditReport, error) {
	report := &AuditReport{}
	err := l.View(ctx, func(_ *LedgerTx) error {
		followers := make(map[string]uint64)
		following := make(map[string]uint64)
		for k := range l.follows {
			followers[k.FollowingID]++
			following[k.FollowerID]++
		}
		replies := make(map[uint64]uint64)
		for _, p := range l.posts {
			if p.ParentID != nil {
				replies[*p.ParentID]++
			}
		}
		likes := make(map[uint64]uint64)
		for k, i := range l.interactions {
			if i.Liked {
				likes[k.PostID]++
			}
		}

		for id, p := range l.profiles {
			if p.FollowerCount != followers[id] {
				report.Mismatches = append(report.Mismatches, "profile "+id+" follower-count")
			}
			if p.FollowingCount != following[id] {
				report.Mismatches = append(report.Mismatches, "profile "+id+" following-count")
			}
		}
		for id, p := range l.posts {
			if p.ReplyCount != replies[id] {
				report.Mismatches = append(report.Mismatches, "post "+formatID(id)+" reply-count")
			}
			if p.LikeCount != likes[id] {
				report.Mismatches = append(report.Mismatches, "post "+formatID(id)+" like-count")
			}
		}
		sort.Strings(report.Mismatches)

		report.Profiles = len(l.profiles)
		report.Posts = len(l.posts)
		report.NextPostID = l.settings.NextPostID
		report.NextNotificationID = l.settings.NextNotificationID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
