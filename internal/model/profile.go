package model

import (
	"time"
)

// Profile 用户身份档案，以 UserID 为主键
type Profile struct {
	UserID            string           `gorm:"primaryKey;type:varchar(64)" json:"userId"`
	Owner             string           `gorm:"type:varchar(128);not null;index:idx_owner" json:"owner"`
	Username          string           `gorm:"type:varchar(32);not null" json:"username"`
	DisplayName       string           `gorm:"type:varchar(64);not null" json:"displayName"`
	Bio               string           `gorm:"type:varchar(256);not null;default:''" json:"bio"`
	AvatarURL         *string          `gorm:"type:varchar(256);column:avatar_url" json:"avatarUrl,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	FollowerCount     uint64           `gorm:"not null;default:0" json:"followerCount"`
	FollowingCount    uint64           `gorm:"not null;default:0" json:"followingCount"`
	PostCount         uint64           `gorm:"not null;default:0" json:"postCount"`
	VerificationLevel uint8            `gorm:"type:tinyint unsigned;not null;default:0" json:"verificationLevel"`
	Status            ModerationStatus `gorm:"type:tinyint unsigned;not null;default:1" json:"status"`
	TipEnabled        bool             `gorm:"type:tinyint(1);not null;default:1" json:"tipEnabled"`
	TipsReceived      uint64           `gorm:"not null;default:0" json:"tipsReceived"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) Clone() *Profile {
	c := *p
	if p.AvatarURL != nil {
		avatar := *p.AvatarURL
		c.AvatarURL = &avatar
	}
	return &c
}

func (p *Profile) IsActive() bool {
	return p.Status == StatusActive
}
