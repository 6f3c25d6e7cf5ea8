package handler

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"

	"github.com/gin-gonic/gin"
)

type TipHandler struct {
	tipSvc service.TipService
}

func NewTipHandler(tipSvc service.TipService) *TipHandler {
	return &TipHandler{tipSvc: tipSvc}
}

func (s *TipHandler) Tip(c *gin.Context) {
	var req dto.TipDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := s.tipSvc.Tip(c.Request.Context(), caller(c), &service.TipRequest{
		TipperID:    req.TipperID,
		RecipientID: req.RecipientID,
		PostID:      req.PostID,
		Amount:      req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	out := dto.TipReceiptDTO{Display: s.tipSvc.FormatAmount(receipt.Amount)}
	if err = toDTO(&out, receipt); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *TipHandler) Quote(c *gin.Context) {
	var req dto.TipQuoteReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	quote, err := s.tipSvc.Quote(c.Request.Context(), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := dto.TipQuoteDTO{Display: s.tipSvc.FormatAmount(quote.Amount)}
	if err = toDTO(&out, quote); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
