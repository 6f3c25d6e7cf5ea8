package handler

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileSvc service.ProfileService
}

func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

func (s *ProfileHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID, err := s.profileSvc.Register(c.Request.Context(), caller(c), &service.RegisterRequest{
		UserID:      req.UserID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{"user_id": userID})
}

func (s *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	err := s.profileSvc.Update(c.Request.Context(), caller(c), &service.UpdateProfileRequest{
		UserID:      c.Param("user_id"),
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ProfileHandler) SetTipEnabled(c *gin.Context) {
	var req dto.TipEnabledDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.profileSvc.SetTipEnabled(c.Request.Context(), caller(c), c.Param("user_id"), *req.Enabled); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := s.profileSvc.GetProfile(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var out dto.ProfileDTO
	if err = toDTO(&out, profile); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
