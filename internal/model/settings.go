package model

// SettingsID 全局配置为单行记录
const SettingsID uint8 = 1

// Settings 账本全局可变状态：费率、最低打赏额、计数器
type Settings struct {
	ID                 uint8  `gorm:"primaryKey;autoIncrement:false" json:"-"`
	FeeRate            uint64 `gorm:"not null" json:"feeRate"` // 基点, 1/10000
	MinTip             uint64 `gorm:"not null" json:"minTip"`
	MaxContentLength   int    `gorm:"not null" json:"maxContentLength"`
	FeeCollector       string `gorm:"type:varchar(128);not null" json:"feeCollector"`
	Escrow             string `gorm:"type:varchar(128);not null" json:"escrow"`
	NextPostID         uint64 `gorm:"not null" json:"nextPostId"`
	NextNotificationID uint64 `gorm:"not null" json:"nextNotificationId"`
}

func (Settings) TableName() string {
	return "ledger_settings"
}
