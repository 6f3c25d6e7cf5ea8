package util

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Sha3Hex 依次写入各段数据并返回 SHA3-256 的十六进制摘要
func Sha3Hex(parts ...[]byte) string {
	h := sha3.New256()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
