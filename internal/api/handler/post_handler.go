package handler

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/model"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	visibility := model.VisibilityPublic
	if req.Visibility != "" {
		v, ok := model.ParseVisibility(req.Visibility)
		if !ok {
			response.Error(c, service.ErrVisibilityInvalid)
			return
		}
		visibility = v
	}

	postID, err := s.postSvc.CreatePost(c.Request.Context(), caller(c), &service.CreatePostRequest{
		AuthorID:            req.AuthorID,
		Content:             req.Content,
		ParentID:            req.ParentID,
		Visibility:          visibility,
		IsPremium:           req.IsPremium,
		MonetizationEnabled: req.MonetizationEnabled,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.CreatePostResultDTO{PostID: postID})
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var out dto.PostDTO
	if err = toDTO(&out, post); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
