package service

import (
	"Keystone/internal/model"
	"Keystone/internal/pkg/bank"
	"Keystone/internal/pkg/util"
	"Keystone/internal/pkg/validate"
	"Keystone/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

type TipService interface {
	Tip(ctx context.Context, caller string, req *TipRequest) (*TipReceipt, error)
	Quote(ctx context.Context, amount uint64) (*TipQuote, error)
	FormatAmount(amount uint64) string
}

type TipRequest struct {
	TipperID    string
	RecipientID string
	PostID      *uint64
	Amount      uint64
}

type TipReceipt struct {
	Amount         uint64
	Fee            uint64
	Net            uint64
	NotificationID uint64
}

type TipQuote struct {
	Amount  uint64
	FeeRate uint64
	Fee     uint64
	Net     uint64
	MinTip  uint64
}

type tipServiceImpl struct {
	ledger              *repository.Ledger
	bank                bank.Bank
	notificationService NotificationService
	displayDecimals     int32
}

func NewTipService(ledger *repository.Ledger, b bank.Bank, notificationService NotificationService, displayDecimals int32) TipService {
	return &tipServiceImpl{
		ledger:              ledger,
		bank:                b,
		notificationService: notificationService,
		displayDecimals:     displayDecimals,
	}
}

// SplitFee fee = floor(amount * rate / 10000)，net = amount - fee
func SplitFee(amount, feeRate uint64) (fee, net uint64) {
	gross := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0)
	feeDec := gross.Mul(decimal.NewFromBigInt(new(big.Int).SetUint64(feeRate), 0)).
		Shift(-4).
		Floor()
	fee = feeDec.BigInt().Uint64()
	return fee, amount - fee
}

func (s *tipServiceImpl) FormatAmount(amount uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -s.displayDecimals).StringFixed(s.displayDecimals)
}

func (s *tipServiceImpl) Tip(ctx context.Context, caller string, req *TipRequest) (*TipReceipt, error) {
	if err := validateUserIDs(req.TipperID, req.RecipientID); err != nil {
		return nil, err
	}
	if req.TipperID == req.RecipientID {
		return nil, ErrTipSelf
	}
	if validate.PositiveAmount(req.Amount) != nil {
		return nil, ErrTipAmountInvalid
	}

	receipt := &TipReceipt{Amount: req.Amount}
	err := s.ledger.Transaction(ctx, "tip", caller, func(tx *repository.LedgerTx) error {
		tipper, err := loadActiveProfile(tx, req.TipperID)
		if err != nil {
			return err
		}
		recipient, err := loadActiveProfile(tx, req.RecipientID)
		if err != nil {
			return err
		}
		if err = requireOwner(tipper, caller); err != nil {
			return err
		}
		if !recipient.TipEnabled {
			return ErrTipDisabled
		}

		settings := tx.Settings()
		if req.Amount < settings.MinTip {
			return ErrTipAmountInvalid
		}

		var post *model.Post
		if req.PostID != nil {
			if post, err = s.tipPostCheck(tx, *req.PostID, req.RecipientID); err != nil {
				return err
			}
		}

		receipt.Fee, receipt.Net = SplitFee(req.Amount, settings.FeeRate)
		if receipt.Net == 0 {
			return ErrNetAmountInvalid
		}

		balance, err := s.bank.Balance(ctx, caller)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
		if balance < req.Amount {
			return ErrInsufficientFunds
		}

		if recipient.TipsReceived > math.MaxUint64-req.Amount {
			return ErrTipAmountInvalid
		}
		recipient.TipsReceived += req.Amount
		tx.PutProfile(recipient)
		if post != nil {
			if post.TipsReceived > math.MaxUint64-req.Amount {
				return ErrTipAmountInvalid
			}
			post.TipsReceived += req.Amount
			tx.PutPost(post)
		}

		var relatedPostID *uint64
		if req.PostID != nil {
			relatedPostID = util.PtrUint64(*req.PostID)
		}
		receipt.NotificationID, err = s.notificationService.Emit(tx, req.RecipientID, util.PtrString(req.TipperID),
			model.NotificationTip, relatedPostID, tipper.DisplayName+" 打赏了你 "+s.FormatAmount(req.Amount))
		if err != nil {
			return err
		}

		// 资金移动放在最后：结算失败时暂存写入整体丢弃
		transfers := settlementTransfers(caller, settings.Escrow, settings.FeeCollector, recipient.Owner, receipt.Fee, receipt.Net)
		if err = s.bank.Settle(ctx, transfers...); err != nil {
			if errors.Is(err, bank.ErrInsufficientFunds) {
				return ErrInsufficientFunds
			}
			log.ErrorContext(ctx, "tip settlement failed", "tipper_id", req.TipperID, "err", err)
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
		tx.OnRollback(func(ctx context.Context) {
			if err := s.bank.Settle(ctx, reverseTransfers(transfers)...); err != nil {
				log.ErrorContext(ctx, "tip compensation failed", "tipper_id", req.TipperID, "amount", req.Amount, "err", err)
			}
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "Tip settled",
		"tipper_id", req.TipperID,
		"recipient_id", req.RecipientID,
		"amount", req.Amount,
		"fee", receipt.Fee,
		"net", receipt.Net,
	)
	return receipt, nil
}

// tipPostCheck 帖子存在、作者即收款人、开启打赏且 active
func (s *tipServiceImpl) tipPostCheck(tx *repository.LedgerTx, postID uint64, recipientID string) (*model.Post, error) {
	post, ok := tx.GetPost(postID)
	if !ok {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != recipientID {
		return nil, ErrTipPostMismatch
	}
	if !post.MonetizationEnabled {
		return nil, ErrPostNotMonetized
	}
	if !post.IsActive() {
		return nil, ErrPostInactive
	}
	return post, nil
}

func (s *tipServiceImpl) Quote(ctx context.Context, amount uint64) (*TipQuote, error) {
	if validate.PositiveAmount(amount) != nil {
		return nil, ErrTipAmountInvalid
	}
	var quote *TipQuote
	err := s.ledger.View(ctx, func(tx *repository.LedgerTx) error {
		settings := tx.Settings()
		fee, net := SplitFee(amount, settings.FeeRate)
		quote = &TipQuote{
			Amount:  amount,
			FeeRate: settings.FeeRate,
			Fee:     fee,
			Net:     net,
			MinTip:  settings.MinTip,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// settlementTransfers tipper -> escrow -> (fee collector, recipient)，fee 为 0 时不产生手续费转账
func settlementTransfers(from, escrow, feeCollector, to string, fee, net uint64) []bank.Transfer {
	transfers := []bank.Transfer{{From: from, To: escrow, Amount: fee + net}}
	if fee > 0 {
		transfers = append(transfers, bank.Transfer{From: escrow, To: feeCollector, Amount: fee})
	}
	return append(transfers, bank.Transfer{From: escrow, To: to, Amount: net})
}

func reverseTransfers(transfers []bank.Transfer) []bank.Transfer {
	reversed := make([]bank.Transfer, 0, len(transfers))
	for i := len(transfers) - 1; i >= 0; i-- {
		t := transfers[i]
		reversed = append(reversed, bank.Transfer{From: t.To, To: t.From, Amount: t.Amount})
	}
	return reversed
}
