package dto

// CreatePostDTO 发帖请求，parent_id 非空即为回复
type CreatePostDTO struct {
	AuthorID            string  `json:"author_id" binding:"required"`
	Content             string  `json:"content" binding:"required"`
	ParentID            *uint64 `json:"parent_id,omitempty"`
	Visibility          string  `json:"visibility" binding:"omitempty,oneof=public followers private"`
	IsPremium           bool    `json:"is_premium"`
	MonetizationEnabled bool    `json:"monetization_enabled"`
}

type CreatePostResultDTO struct {
	PostID uint64 `json:"post_id"`
}

// PostDTO 帖子返回对象
type PostDTO struct {
	ID                  uint64  `json:"id"`
	AuthorID            string  `json:"author_id"`
	ContentHash         string  `json:"content_hash"`
	Content             string  `json:"content"`
	CreatedAt           string  `json:"created_at"`
	ParentID            *uint64 `json:"parent_id,omitempty"`
	LikeCount           uint64  `json:"like_count"`
	ReplyCount          uint64  `json:"reply_count"`
	Visibility          string  `json:"visibility"`
	IsPremium           bool    `json:"is_premium"`
	MonetizationEnabled bool    `json:"monetization_enabled"`
	TipsReceived        uint64  `json:"tips_received"`
	Status              string  `json:"status"`
}

// PostActionDTO 点赞/收藏及撤销，代表哪个档案操作
type PostActionDTO struct {
	UserID string `json:"user_id" binding:"required"`
}

// InteractionDTO 互动状态，exists 为 false 时其余字段为默认值
type InteractionDTO struct {
	PostID            uint64 `json:"post_id"`
	UserID            string `json:"user_id"`
	Liked             bool   `json:"liked"`
	Bookmarked        bool   `json:"bookmarked"`
	LastInteractionAt string `json:"last_interaction_at,omitempty"`
	Exists            bool   `json:"exists"`
}
