package model

import "time"

// Notification 站内通知，只会作为其他操作的副作用产生
type Notification struct {
	ID            uint64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	RecipientID   string           `gorm:"type:varchar(64);not null;index:idx_recipient_id" json:"recipientId"`
	SenderID      *string          `gorm:"type:varchar(64)" json:"senderId,omitempty"` // 系统通知为空
	Type          NotificationType `gorm:"type:tinyint unsigned;not null" json:"type"`
	RelatedPostID *uint64          `json:"relatedPostId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	IsRead        bool             `gorm:"type:tinyint(1);not null;default:0" json:"isRead"`
	Content       string           `gorm:"type:varchar(1024);not null;default:''" json:"content"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) Clone() *Notification {
	c := *n
	if n.SenderID != nil {
		sender := *n.SenderID
		c.SenderID = &sender
	}
	if n.RelatedPostID != nil {
		postID := *n.RelatedPostID
		c.RelatedPostID = &postID
	}
	return &c
}
