package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMentions(t *testing.T) {
	got := ExtractMentions("hi @bob and @carol.x, again @bob. also @al and @dave.")
	assert.Equal(t, []string{"bob", "carol.x", "dave"}, got)
}

func TestExtractMentions_None(t *testing.T) {
	assert.Empty(t, ExtractMentions("no mentions here, email a@b"))
}

func TestSha3Hex(t *testing.T) {
	// SHA3-256("")
	assert.Equal(t,
		"a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a",
		Sha3Hex())
	assert.Equal(t, Sha3Hex([]byte("ab")), Sha3Hex([]byte("a"), []byte("b")))
}
