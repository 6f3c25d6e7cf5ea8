package dto

// TipDTO 打赏请求，amount 为最小单位整数
type TipDTO struct {
	TipperID    string  `json:"tipper_id" binding:"required"`
	RecipientID string  `json:"recipient_id" binding:"required"`
	PostID      *uint64 `json:"post_id,omitempty"`
	Amount      uint64  `json:"amount"`
}

type TipReceiptDTO struct {
	Amount         uint64 `json:"amount"`
	Fee            uint64 `json:"fee"`
	Net            uint64 `json:"net"`
	NotificationID uint64 `json:"notification_id"`
	Display        string `json:"display"`
}

type TipQuoteReq struct {
	Amount uint64 `form:"amount"`
}

type TipQuoteDTO struct {
	Amount  uint64 `json:"amount"`
	FeeRate uint64 `json:"fee_rate"`
	Fee     uint64 `json:"fee"`
	Net     uint64 `json:"net"`
	MinTip  uint64 `json:"min_tip"`
	Display string `json:"display"`
}
