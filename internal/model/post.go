package model

import (
	"time"
)

type Post struct {
	ID                  uint64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	AuthorID            string           `gorm:"type:varchar(64);not null;index:idx_author_id" json:"authorId"`
	ContentHash         string           `gorm:"type:char(64);not null" json:"contentHash"`
	Content             string           `gorm:"type:text;not null" json:"content"`
	CreatedAt           time.Time        `json:"createdAt"`
	ParentID            *uint64          `gorm:"index:idx_parent_id" json:"parentId,omitempty"`
	LikeCount           uint64           `gorm:"not null;default:0" json:"likeCount"`
	ReplyCount          uint64           `gorm:"not null;default:0" json:"replyCount"`
	Visibility          Visibility       `gorm:"type:tinyint unsigned;not null" json:"visibility"`
	IsPremium           bool             `gorm:"type:tinyint(1);not null;default:0" json:"isPremium"`
	MonetizationEnabled bool             `gorm:"type:tinyint(1);not null;default:0" json:"monetizationEnabled"`
	TipsReceived        uint64           `gorm:"not null;default:0" json:"tipsReceived"`
	Status              ModerationStatus `gorm:"type:tinyint unsigned;not null;default:1" json:"status"` // 仅计数器与状态可变
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) Clone() *Post {
	c := *p
	if p.ParentID != nil {
		parent := *p.ParentID
		c.ParentID = &parent
	}
	return &c
}

func (p *Post) IsActive() bool {
	return p.Status == StatusActive
}
