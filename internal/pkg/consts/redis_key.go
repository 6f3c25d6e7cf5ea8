package consts

const (
	TokenRevokedKey           = "auth:revoked:"
	ProfileCounterKey         = "profile:counter:"
	PostCounterKey            = "post:counter:"
	NotificationUnreadKey     = "notify:unread:"
	NotificationChannelPrefix = "notify:channel:"
	LedgerSettingsKey         = "ledger:settings"
)
