package model

import "time"

// LedgerEntry 每次提交的变更集日志，Hash 串联 PrevHash 形成防篡改链
type LedgerEntry struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement" json:"seq"`
	Op        string    `gorm:"type:varchar(32);not null" json:"op"`
	Caller    string    `gorm:"type:varchar(128);not null" json:"caller"`
	Payload   []byte    `gorm:"type:mediumblob;not null" json:"payload"`
	PrevHash  string    `gorm:"type:char(64);not null" json:"prevHash"`
	Hash      string    `gorm:"type:char(64);not null;uniqueIndex:idx_hash" json:"hash"`
	CreatedAt time.Time `json:"createdAt"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
