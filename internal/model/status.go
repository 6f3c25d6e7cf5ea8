package model

import "fmt"

// ModerationStatus 账户/帖子的审核状态
type ModerationStatus uint8

const (
	StatusActive ModerationStatus = iota + 1
	StatusSuspended
	StatusBanned
	StatusPending
)

var moderationStatusNames = map[ModerationStatus]string{
	StatusActive:    "active",
	StatusSuspended: "suspended",
	StatusBanned:    "banned",
	StatusPending:   "pending",
}

func (s ModerationStatus) Valid() bool {
	_, ok := moderationStatusNames[s]
	return ok
}

func (s ModerationStatus) String() string {
	if name, ok := moderationStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ModerationStatus(%d)", uint8(s))
}

func (s ModerationStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid moderation status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *ModerationStatus) UnmarshalText(text []byte) error {
	v, ok := ParseModerationStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown moderation status %q", text)
	}
	*s = v
	return nil
}

// ParseModerationStatus 将字符串解析为审核状态
func ParseModerationStatus(s string) (ModerationStatus, bool) {
	for k, v := range moderationStatusNames {
		if v == s {
			return k, true
		}
	}
	return 0, false
}

// Visibility 帖子可见范围
type Visibility uint8

const (
	VisibilityPublic Visibility = iota + 1
	VisibilityFollowers
	VisibilityPrivate
)

var visibilityNames = map[Visibility]string{
	VisibilityPublic:    "public",
	VisibilityFollowers: "followers",
	VisibilityPrivate:   "private",
}

func (v Visibility) Valid() bool {
	_, ok := visibilityNames[v]
	return ok
}

func (v Visibility) String() string {
	if name, ok := visibilityNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Visibility(%d)", uint8(v))
}

func (v Visibility) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("invalid visibility %d", uint8(v))
	}
	return []byte(v.String()), nil
}

func (v *Visibility) UnmarshalText(text []byte) error {
	parsed, ok := ParseVisibility(string(text))
	if !ok {
		return fmt.Errorf("unknown visibility %q", text)
	}
	*v = parsed
	return nil
}

func ParseVisibility(s string) (Visibility, bool) {
	for k, v := range visibilityNames {
		if v == s {
			return k, true
		}
	}
	return 0, false
}

// NotificationType 通知类型
type NotificationType uint8

const (
	NotificationFollow NotificationType = iota + 1
	NotificationLike
	NotificationReply
	NotificationTip
	NotificationMention
)

var notificationTypeNames = map[NotificationType]string{
	NotificationFollow:  "follow",
	NotificationLike:    "like",
	NotificationReply:   "reply",
	NotificationTip:     "tip",
	NotificationMention: "mention",
}

func (t NotificationType) Valid() bool {
	_, ok := notificationTypeNames[t]
	return ok
}

func (t NotificationType) String() string {
	if name, ok := notificationTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("NotificationType(%d)", uint8(t))
}

func (t NotificationType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid notification type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *NotificationType) UnmarshalText(text []byte) error {
	parsed, ok := ParseNotificationType(string(text))
	if !ok {
		return fmt.Errorf("unknown notification type %q", text)
	}
	*t = parsed
	return nil
}

func ParseNotificationType(s string) (NotificationType, bool) {
	for k, v := range notificationTypeNames {
		if v == s {
			return k, true
		}
	}
	return 0, false
}
