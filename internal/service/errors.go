package service

import (
	"Keystone/internal/pkg/bank"
	"errors"
	"fmt"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	InsufficientFunds   = 402
	Forbidden           = 403
	NotFound            = 404
	AlreadyExists       = 409
	InvalidAmount       = 422
	InternalServerError = 500
)

var (
	ErrParamInvalid   = errors.New("参数错误")
	UnauthorizedError = errors.New("权限不足")
	UnExpectedError   = errors.New("系统异常，请稍后重试")

	ErrProfileNotFound = errors.New("用户不存在")
	ErrProfileExist    = errors.New("用户已存在")
	ErrProfileInactive = errors.New("用户状态异常")

	ErrFollowSelf     = errors.New("用户不能关注自己")
	ErrFollowExist    = errors.New("用户已关注")
	ErrFollowNotFound = errors.New("未关注该用户")

	ErrPostNotFound       = errors.New("帖子不存在")
	ErrPostInactive       = errors.New("帖子状态异常")
	ErrPostContentInvalid = errors.New("帖子内容为空或过长")
	ErrVisibilityInvalid  = errors.New("可见性参数错误")

	ErrLikeSelf            = errors.New("不能点赞自己的帖子")
	ErrActionDuplicate     = errors.New("重复操作")
	ErrInteractionNotFound = errors.New("互动记录不存在")
	ErrNotLiked            = errors.New("尚未点赞")
	ErrNotBookmarked       = errors.New("尚未收藏")

	ErrTipSelf           = errors.New("不能打赏自己")
	ErrTipDisabled       = errors.New("对方未开启打赏")
	ErrTipAmountInvalid  = errors.New("打赏金额无效")
	ErrInsufficientFunds = errors.New("余额不足")
	ErrNetAmountInvalid  = errors.New("扣除手续费后金额无效")
	ErrPostNotMonetized  = errors.New("帖子未开启打赏")
	ErrTipPostMismatch   = errors.New("帖子作者与收款人不一致")
	ErrTransferFailed    = errors.New("转账失败")

	ErrNotificationNotFound    = errors.New("通知不存在")
	ErrNotificationTypeInvalid = errors.New("通知类型错误")

	ErrFeeRateInvalid = errors.New("费率超出上限")
	ErrMinTipInvalid  = errors.New("最低打赏额必须大于0")
	ErrStatusInvalid  = errors.New("状态参数错误")
	ErrEscrowReserved = errors.New("托管账户不能作为收款人或用户")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:   BadRequest,
	UnauthorizedError: Unauthorized,
	UnExpectedError:   InternalServerError,

	ErrProfileNotFound: NotFound,
	ErrProfileExist:    AlreadyExists,
	ErrProfileInactive: Forbidden,

	ErrFollowSelf:     BadRequest,
	ErrFollowExist:    AlreadyExists,
	ErrFollowNotFound: NotFound,

	ErrPostNotFound:       NotFound,
	ErrPostInactive:       Forbidden,
	ErrPostContentInvalid: BadRequest,
	ErrVisibilityInvalid:  BadRequest,

	ErrLikeSelf:            BadRequest,
	ErrActionDuplicate:     AlreadyExists,
	ErrInteractionNotFound: NotFound,
	ErrNotLiked:            BadRequest,
	ErrNotBookmarked:       BadRequest,

	ErrTipSelf:           BadRequest,
	ErrTipDisabled:       Forbidden,
	ErrTipAmountInvalid:  InvalidAmount,
	ErrInsufficientFunds: InsufficientFunds,
	ErrNetAmountInvalid:  InvalidAmount,
	ErrPostNotMonetized:  Forbidden,
	ErrTipPostMismatch:   BadRequest,
	ErrTransferFailed:    InternalServerError,

	ErrNotificationNotFound:    NotFound,
	ErrNotificationTypeInvalid: BadRequest,

	ErrFeeRateInvalid: BadRequest,
	ErrMinTipInvalid:  BadRequest,
	ErrStatusInvalid:  BadRequest,
	ErrEscrowReserved: BadRequest,

	bank.ErrInsufficientFunds: InsufficientFunds,
}

// CodeOf 解析错误码，未登记的错误一律视为 500
func CodeOf(err error) int {
	if err == nil {
		return Ok
	}
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code
		}
	}
	return InternalServerError
}

// invalid 把校验错误包装为参数错误
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrParamInvalid, err)
}
