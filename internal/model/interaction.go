package model

import "time"

// Interaction 用户对帖子的点赞/收藏状态，首次点赞时惰性创建，永不删除
type Interaction struct {
	PostID            uint64    `gorm:"primaryKey;autoIncrement:false" json:"postId"`
	UserID            string    `gorm:"primaryKey;type:varchar(64);index:idx_user_id" json:"userId"`
	Liked             bool      `gorm:"type:tinyint(1);not null;default:0" json:"liked"`
	Bookmarked        bool      `gorm:"type:tinyint(1);not null;default:0" json:"bookmarked"`
	LastInteractionAt time.Time `json:"lastInteractionAt"`
}

func (Interaction) TableName() string {
	return "interactions"
}

func (i *Interaction) Key() InteractionKey {
	return InteractionKey{PostID: i.PostID, UserID: i.UserID}
}

type InteractionKey struct {
	PostID uint64 `json:"postId"`
	UserID string `json:"userId"`
}
