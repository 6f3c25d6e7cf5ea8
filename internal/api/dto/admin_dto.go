package dto

type FeeRateDTO struct {
	FeeRate *uint64 `json:"fee_rate" binding:"required"`
}

type MinTipDTO struct {
	MinTip uint64 `json:"min_tip"`
}

type FeeCollectorDTO struct {
	FeeCollector string `json:"fee_collector" binding:"required"`
}

type StatusDTO struct {
	Status string `json:"status" binding:"required,oneof=active suspended banned pending"`
}

// SettingsDTO 账本全局配置
type SettingsDTO struct {
	FeeRate            uint64 `json:"fee_rate"`
	MinTip             uint64 `json:"min_tip"`
	MaxContentLength   int    `json:"max_content_length"`
	FeeCollector       string `json:"fee_collector"`
	Escrow             string `json:"escrow"`
	NextPostID         uint64 `json:"next_post_id"`
	NextNotificationID uint64 `json:"next_notification_id"`
}
