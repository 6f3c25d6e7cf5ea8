package dto

// NotificationListReq 通知分页查询
type NotificationListReq struct {
	UserID   string `form:"user_id" binding:"required"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type NotificationUserReq struct {
	UserID string `form:"user_id" json:"user_id" binding:"required"`
}

type MarkReadDTO struct {
	UserID         string `json:"user_id" binding:"required"`
	NotificationID uint64 `json:"notification_id"`
}

// NotificationDTO 通知返回对象
type NotificationDTO struct {
	ID            uint64  `json:"id"`
	RecipientID   string  `json:"recipient_id"`
	SenderID      *string `json:"sender_id,omitempty"` // 系统通知为空
	Type          string  `json:"type"`
	RelatedPostID *uint64 `json:"related_post_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
	IsRead        bool    `json:"is_read"`
	Content       string  `json:"content"`
}

type NotificationListDTO struct {
	Items []*NotificationDTO `json:"items"`
	Total int                `json:"total"`
}

type UnreadCountDTO struct {
	UnreadCount int `json:"unread_count"`
}

type MarkAllReadDTO struct {
	Updated int `json:"updated"`
}
