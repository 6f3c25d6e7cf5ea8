package model

// Account 外部价值转移原语在 MySQL 中的余额表
type Account struct {
	Principal string `gorm:"primaryKey;type:varchar(128)" json:"principal"`
	Balance   uint64 `gorm:"not null;default:0" json:"balance"`
}

func (Account) TableName() string {
	return "accounts"
}
