package service

import (
	"Keystone/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeUnlike(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice")
	bob := e.register(t, "bob")
	postID := e.post(t, "alice", "hello", false)

	require.NoError(t, e.actions.LikePost(e.ctx, bob, "bob", postID))
	err := e.actions.LikePost(e.ctx, bob, "bob", postID)
	assert.ErrorIs(t, err, ErrActionDuplicate)
	assert.Equal(t, AlreadyExists, CodeOf(err))

	post, _ := e.posts.GetPost(e.ctx, postID)
	assert.Equal(t, uint64(1), post.LikeCount)
	inbox := e.inbox(t, "alice")
	require.Len(t, inbox, 1)
	assert.Equal(t, model.NotificationLike, inbox[0].Type)

	require.NoError(t, e.actions.CancelLikePost(e.ctx, bob, "bob", postID))
	assert.ErrorIs(t, e.actions.CancelLikePost(e.ctx, bob, "bob", postID), ErrNotLiked)

	post, _ = e.posts.GetPost(e.ctx, postID)
	assert.Equal(t, uint64(0), post.LikeCount)

	i, exists, err := e.actions.GetInteraction(e.ctx, postID, "bob")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.False(t, i.Liked)
}

func TestLike_Rejections(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice")
	bob := e.register(t, "bob")
	postID := e.post(t, "alice", "hello", false)

	assert.ErrorIs(t, e.actions.LikePost(e.ctx, alice, "alice", postID), ErrLikeSelf)
	assert.ErrorIs(t, e.actions.LikePost(e.ctx, bob, "bob", 42), ErrPostNotFound)
	assert.ErrorIs(t, e.actions.LikePost(e.ctx, alice, "bob", postID), UnauthorizedError)
	assert.ErrorIs(t, e.actions.CancelLikePost(e.ctx, bob, "bob", postID), ErrInteractionNotFound)

	require.NoError(t, e.admin.SetPostStatus(e.ctx, testDeployer, postID, model.StatusSuspended))
	assert.ErrorIs(t, e.actions.LikePost(e.ctx, bob, "bob", postID), ErrPostInactive)

	assert.Equal(t, uint64(1), e.settings(t).NextNotificationID)
}

func TestBookmark(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice")
	postID := e.post(t, "alice", "hello", false)

	// 可以收藏自己的帖子，且不产生通知
	require.NoError(t, e.actions.BookmarkPost(e.ctx, alice, "alice", postID))
	assert.ErrorIs(t, e.actions.BookmarkPost(e.ctx, alice, "alice", postID), ErrActionDuplicate)
	assert.Empty(t, e.inbox(t, "alice"))

	require.NoError(t, e.actions.CancelBookmarkPost(e.ctx, alice, "alice", postID))
	assert.ErrorIs(t, e.actions.CancelBookmarkPost(e.ctx, alice, "alice", postID), ErrNotBookmarked)

	post, _ := e.posts.GetPost(e.ctx, postID)
	assert.Zero(t, post.LikeCount)
}

func TestGetInteraction_Default(t *testing.T) {
	e := newTestEnv(t)
	i, exists, err := e.actions.GetInteraction(e.ctx, 7, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.False(t, i.Liked)
	assert.False(t, i.Bookmarked)
}
