package dto

// FollowDTO 关注/取关通用请求
type FollowDTO struct {
	FollowerID  string `json:"follower_id" binding:"required"`
	FollowingID string `json:"following_id" binding:"required"`
}

type IsFollowingDTO struct {
	IsFollowing bool `json:"is_following"`
}
