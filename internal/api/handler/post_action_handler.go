package handler

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	postActionSvc service.PostActionService
}

func NewPostActionHandler(postActionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{postActionSvc: postActionSvc}
}

type postAction func(ctx context.Context, caller, userID string, postID uint64) error

func (s *PostActionHandler) LikePost(c *gin.Context) {
	s.handle(c, s.postActionSvc.LikePost)
}

func (s *PostActionHandler) CancelLikePost(c *gin.Context) {
	s.handle(c, s.postActionSvc.CancelLikePost)
}

func (s *PostActionHandler) BookmarkPost(c *gin.Context) {
	s.handle(c, s.postActionSvc.BookmarkPost)
}

func (s *PostActionHandler) CancelBookmarkPost(c *gin.Context) {
	s.handle(c, s.postActionSvc.CancelBookmarkPost)
}

func (s *PostActionHandler) handle(c *gin.Context, action postAction) {
	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.PostActionDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = action(c.Request.Context(), caller(c), req.UserID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostActionHandler) GetInteraction(c *gin.Context) {
	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	interaction, exists, err := s.postActionSvc.GetInteraction(c.Request.Context(), postID, c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	out := dto.InteractionDTO{Exists: exists}
	if err = toDTO(&out, interaction); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
