package validate

import (
	"regexp"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MinUserIDLen       = 3
	MaxUserIDLen       = 64
	MinUsernameLen     = 3
	MaxUsernameLen     = 32
	MaxDisplayNameLen  = 64
	MaxBioLen          = 256
	MaxAvatarLen       = 256
	MaxPrincipalLen    = 128
	MaxNotificationLen = 256
	MaxFeeRate         = 1000
	BasisPoints        = 10000
)

var (
	userIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// UserID 3-64 个字符，仅允许字母数字与 _ . -
func UserID(v string) error {
	return validation.Validate(v,
		validation.Required,
		validation.RuneLength(MinUserIDLen, MaxUserIDLen),
		validation.Match(userIDPattern),
	)
}

func Username(v string) error {
	return validation.Validate(v,
		validation.Required,
		validation.RuneLength(MinUsernameLen, MaxUsernameLen),
		validation.Match(usernamePattern),
	)
}

func DisplayName(v string) error {
	return validation.Validate(v,
		validation.Required,
		validation.RuneLength(1, MaxDisplayNameLen),
	)
}

func Bio(v string) error {
	return validation.Validate(v, validation.RuneLength(0, MaxBioLen))
}

// AvatarURL 头像为可选引用，nil 表示未设置
func AvatarURL(v *string) error {
	if v == nil {
		return nil
	}
	return validation.Validate(*v,
		validation.Required,
		validation.RuneLength(1, MaxAvatarLen),
	)
}

func Principal(v string) error {
	return validation.Validate(v,
		validation.Required,
		validation.RuneLength(1, MaxPrincipalLen),
	)
}

// PostContent 内容非空且不超过 maxLen 个字符
func PostContent(v string, maxLen int) error {
	return validation.Validate(v,
		validation.Required,
		validation.RuneLength(1, maxLen),
	)
}

func FeeRate(v uint64) error {
	return validation.Validate(v, validation.Max(uint64(MaxFeeRate)))
}

// PositiveAmount 金额必须大于 0
func PositiveAmount(v uint64) error {
	return validation.Validate(v, validation.Required)
}

// Truncate 截断到恰好 max 个字符
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
