package dto

// RegisterDTO 注册档案，调用者即档案 owner
type RegisterDTO struct {
	UserID      string  `json:"user_id" binding:"required"`
	Username    string  `json:"username" binding:"required"`
	DisplayName string  `json:"display_name" binding:"required"`
	Bio         string  `json:"bio"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// UpdateProfileDTO 修改展示信息，user_id 取自路径
type UpdateProfileDTO struct {
	DisplayName string  `json:"display_name" binding:"required"`
	Bio         string  `json:"bio"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type TipEnabledDTO struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ProfileDTO 档案返回对象
type ProfileDTO struct {
	UserID            string  `json:"user_id"`
	Owner             string  `json:"owner"`
	Username          string  `json:"username"`
	DisplayName       string  `json:"display_name"`
	Bio               string  `json:"bio"`
	AvatarURL         *string `json:"avatar_url,omitempty"`
	CreatedAt         string  `json:"created_at"`
	FollowerCount     uint64  `json:"follower_count"`
	FollowingCount    uint64  `json:"following_count"`
	PostCount         uint64  `json:"post_count"`
	VerificationLevel uint8   `json:"verification_level"`
	Status            string  `json:"status"`
	TipEnabled        bool    `json:"tip_enabled"`
	TipsReceived      uint64  `json:"tips_received"`
}
