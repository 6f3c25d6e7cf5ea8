package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SysBoxRepo interface {
	EnsureIndexes(ctx context.Context) error
	UpsertNotification(ctx context.Context, msg *SysBoxModel) error
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
}

type sysBoxRepoImpl struct {
	col *mongo.Collection
}

func NewSysBoxRepo(db *mongo.Database) SysBoxRepo {
	return &sysBoxRepoImpl{
		col: db.Collection("sys_box"),
	}
}

// EnsureIndexes notification_id 唯一，receiver_id + created_at 用于分页
func (s *sysBoxRepoImpl) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "notification_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "is_read", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	return err
}

// UpsertNotification 新通知插入，已读状态变更覆盖，重复消费无副作用
func (s *sysBoxRepoImpl) UpsertNotification(ctx context.Context, msg *SysBoxModel) error {
	filter := bson.M{"notification_id": msg.NotificationID}
	update := bson.M{
		"$set": bson.M{"is_read": msg.IsRead},
		"$setOnInsert": bson.M{
			"receiver_id": msg.ReceiverID,
			"sender_id":   msg.SenderID,
			"type":        msg.Type,
			"target_id":   msg.TargetID,
			"content":     msg.Content,
			"created_at":  msg.CreatedAt,
		},
	}
	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetUnreadCount 获取用户的未读通知总数
func (s *sysBoxRepoImpl) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	filter := bson.M{"receiver_id": userID, "is_read": false}
	return s.col.CountDocuments(ctx, filter)
}
