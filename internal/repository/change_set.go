package repository

import (
	"Keystone/internal/model"
	"time"
)

// ChangeSet 一次成功调用产生的全部写入
type ChangeSet struct {
	Op             string                `json:"op"`
	Caller         string                `json:"caller"`
	At             time.Time             `json:"at"`
	Profiles       []*model.Profile      `json:"profiles,omitempty"`
	FollowsCreated []*model.Follow       `json:"followsCreated,omitempty"`
	FollowsDeleted []model.FollowKey     `json:"followsDeleted,omitempty"`
	Posts          []*model.Post         `json:"posts,omitempty"`
	Interactions   []*model.Interaction  `json:"interactions,omitempty"`
	Notifications  []*model.Notification `json:"notifications,omitempty"`
	Settings       *model.Settings       `json:"settings,omitempty"`
}

func (cs *ChangeSet) Empty() bool {
	return len(cs.Profiles) == 0 &&
		len(cs.FollowsCreated) == 0 &&
		len(cs.FollowsDeleted) == 0 &&
		len(cs.Posts) == 0 &&
		len(cs.Interactions) == 0 &&
		len(cs.Notifications) == 0 &&
		cs.Settings == nil
}
