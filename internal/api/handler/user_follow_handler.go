package handler

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	userFollowSvc service.UserFollowService
}

func NewUserFollowHandler(userFollowSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{userFollowSvc: userFollowSvc}
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	var req dto.FollowDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userFollowSvc.Follow(c.Request.Context(), caller(c), req.FollowerID, req.FollowingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	var req dto.FollowDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userFollowSvc.Unfollow(c.Request.Context(), caller(c), req.FollowerID, req.FollowingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) IsFollowing(c *gin.Context) {
	following, err := s.userFollowSvc.IsFollowing(c.Request.Context(), c.Param("follower_id"), c.Param("following_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IsFollowingDTO{IsFollowing: following})
}
