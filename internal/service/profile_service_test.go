package service

import (
	"Keystone/internal/model"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	e := newTestEnv(t)
	avatar := "ipfs://avatar"
	id, err := e.profiles.Register(e.ctx, "owner-1", &RegisterRequest{
		UserID:      "carol.k",
		Username:    "carol_k",
		DisplayName: "Carol",
		Bio:         "hi",
		AvatarURL:   &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "carol.k", id)

	p := e.profile(t, "carol.k")
	assert.Equal(t, "owner-1", p.Owner)
	assert.Equal(t, model.StatusActive, p.Status)
	assert.True(t, p.TipEnabled)
	assert.Zero(t, p.FollowerCount)
	assert.Zero(t, p.PostCount)
	require.NotNil(t, p.AvatarURL)
	assert.Equal(t, avatar, *p.AvatarURL)
}

func TestRegister_Invalid(t *testing.T) {
	e := newTestEnv(t)
	cases := map[string]*RegisterRequest{
		"short id":       {UserID: "ab", Username: "abc", DisplayName: "x"},
		"bad id charset": {UserID: "a b c", Username: "abc", DisplayName: "x"},
		"bad username":   {UserID: "abc", Username: "a.bc", DisplayName: "x"},
		"empty display":  {UserID: "abc", Username: "abc"},
		"long bio":       {UserID: "abc", Username: "abc", DisplayName: "x", Bio: strings.Repeat("b", 257)},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.profiles.Register(e.ctx, "owner", req)
			assert.ErrorIs(t, err, ErrParamInvalid)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice")
	_, err := e.profiles.Register(e.ctx, "someone", &RegisterRequest{UserID: "alice", Username: "alice2", DisplayName: "A"})
	assert.ErrorIs(t, err, ErrProfileExist)
	assert.Equal(t, AlreadyExists, CodeOf(err))
	assert.Equal(t, "p-alice", e.profile(t, "alice").Owner)
}

func TestRegister_EscrowCannotOwnProfile(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.profiles.Register(e.ctx, testEscrow, &RegisterRequest{UserID: "vault", Username: "vault", DisplayName: "V"})
	assert.ErrorIs(t, err, ErrEscrowReserved)
	assert.Equal(t, BadRequest, CodeOf(err))

	_, err = e.profiles.GetProfile(e.ctx, "vault")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateProfile(t *testing.T) {
	e := newTestEnv(t)
	owner := e.register(t, "alice")

	err := e.profiles.Update(e.ctx, "intruder", &UpdateProfileRequest{UserID: "alice", DisplayName: "X"})
	assert.ErrorIs(t, err, UnauthorizedError)

	err = e.profiles.Update(e.ctx, owner, &UpdateProfileRequest{UserID: "nobody", DisplayName: "X"})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	require.NoError(t, e.profiles.Update(e.ctx, owner, &UpdateProfileRequest{UserID: "alice", DisplayName: "Alice", Bio: "new"}))
	p := e.profile(t, "alice")
	assert.Equal(t, "Alice", p.DisplayName)
	assert.Equal(t, "new", p.Bio)
	assert.Equal(t, "alice", p.Username)

	require.NoError(t, e.admin.SetProfileStatus(e.ctx, testDeployer, "alice", model.StatusSuspended))
	err = e.profiles.Update(e.ctx, owner, &UpdateProfileRequest{UserID: "alice", DisplayName: "Again"})
	assert.ErrorIs(t, err, ErrProfileInactive)
	assert.Equal(t, Forbidden, CodeOf(err))
}

func TestSetTipEnabled(t *testing.T) {
	e := newTestEnv(t)
	owner := e.register(t, "alice")

	assert.ErrorIs(t, e.profiles.SetTipEnabled(e.ctx, "other", "alice", false), UnauthorizedError)
	require.NoError(t, e.profiles.SetTipEnabled(e.ctx, owner, "alice", false))
	assert.False(t, e.profile(t, "alice").TipEnabled)
}
