package util

import (
	"regexp"
)

var mentionRegex = regexp.MustCompile(`@([A-Za-z0-9_.-]{3,64})`)

// ExtractMentions 提取去重后的 @user_id 列表，保持首次出现的顺序
func ExtractMentions(rawContent string) []string {
	matches := mentionRegex.FindAllStringSubmatch(rawContent, -1)

	seen := make(map[string]struct{})
	var mentions []string

	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		// 句末的点号属于标点而不是 user_id
		name := trimTrailingDots(m[1])
		if len(name) < 3 {
			continue
		}
		if _, exists := seen[name]; !exists {
			seen[name] = struct{}{}
			mentions = append(mentions, name)
		}
	}

	return mentions
}

func trimTrailingDots(s string) string {
	for len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}

// PtrUint64 用于将 uint64 转换为 *uint64
func PtrUint64(i uint64) *uint64 {
	return &i
}
