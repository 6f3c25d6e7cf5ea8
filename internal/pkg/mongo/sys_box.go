package mongo

import (
	"Keystone/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SysBoxModel 系统通知在 Mongo 中的镜像，以账本通知 ID 去重
type SysBoxModel struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	NotificationID uint64             `bson:"notification_id" json:"notificationId"`
	ReceiverID     string             `bson:"receiver_id" json:"receiverId"`
	SenderID       *string            `bson:"sender_id,omitempty" json:"senderId,omitempty"` // 系统通知为空
	Type           string             `bson:"type" json:"type"`                              // follow, like, reply, tip, mention
	TargetID       *uint64            `bson:"target_id,omitempty" json:"targetId,omitempty"` // 关联的帖子ID
	Content        string             `bson:"content" json:"content"`
	IsRead         bool               `bson:"is_read" json:"isRead"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
}

func NewSysBoxModel(n *model.Notification) *SysBoxModel {
	return &SysBoxModel{
		NotificationID: n.ID,
		ReceiverID:     n.RecipientID,
		SenderID:       n.SenderID,
		Type:           n.Type.String(),
		TargetID:       n.RelatedPostID,
		Content:        n.Content,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}
