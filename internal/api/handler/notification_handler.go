package handler

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// GetNotificationList 获取通知列表，最新的在前
func (h *NotificationHandler) GetNotificationList(c *gin.Context) {
	var req dto.NotificationListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, total, err := h.notificationSvc.List(c.Request.Context(), caller(c), req.UserID, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.NotificationDTO, 0, len(list))
	if err = toDTO(&items, list); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NotificationListDTO{Items: items, Total: total})
}

// GetUnreadCount 获取未读数
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	var req dto.NotificationUserReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	unread, err := h.notificationSvc.UnreadCount(c.Request.Context(), caller(c), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.UnreadCountDTO{UnreadCount: unread})
}

// MarkRead 标记单条已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req dto.MarkReadDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), caller(c), req.UserID, req.NotificationID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAllRead 一键已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	var req dto.NotificationUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.notificationSvc.MarkAllRead(c.Request.Context(), caller(c), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MarkAllReadDTO{Updated: updated})
}
