package model

import "time"

type Follow struct {
	FollowerID  string    `gorm:"primaryKey;type:varchar(64)" json:"followerId"`
	FollowingID string    `gorm:"primaryKey;type:varchar(64);index:idx_following_id" json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) Key() FollowKey {
	return FollowKey{FollowerID: f.FollowerID, FollowingID: f.FollowingID}
}

// FollowKey 关注关系的复合主键 (follower, following)
type FollowKey struct {
	FollowerID  string `json:"followerId"`
	FollowingID string `json:"followingId"`
}
