package handler

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/model"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

func (s *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := s.adminSvc.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	var out dto.SettingsDTO
	if err = toDTO(&out, &settings); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *AdminHandler) SetFeeRate(c *gin.Context) {
	var req dto.FeeRateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.adminSvc.SetFeeRate(c.Request.Context(), caller(c), *req.FeeRate); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) SetMinTip(c *gin.Context) {
	var req dto.MinTipDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.adminSvc.SetMinTip(c.Request.Context(), caller(c), req.MinTip); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) SetFeeCollector(c *gin.Context) {
	var req dto.FeeCollectorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.adminSvc.SetFeeCollector(c.Request.Context(), caller(c), req.FeeCollector); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) SetProfileStatus(c *gin.Context) {
	status, ok := s.bindStatus(c)
	if !ok {
		return
	}
	if err := s.adminSvc.SetProfileStatus(c.Request.Context(), caller(c), c.Param("user_id"), status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) SetPostStatus(c *gin.Context) {
	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	status, ok := s.bindStatus(c)
	if !ok {
		return
	}
	if err = s.adminSvc.SetPostStatus(c.Request.Context(), caller(c), postID, status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) bindStatus(c *gin.Context) (model.ModerationStatus, bool) {
	var req dto.StatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return 0, false
	}
	status, ok := model.ParseModerationStatus(req.Status)
	if !ok {
		response.Error(c, service.ErrStatusInvalid)
		return 0, false
	}
	return status, true
}
