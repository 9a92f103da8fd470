package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appstock "github.com/xiebiao/bookdepot/internal/application/stock"
	"github.com/xiebiao/bookdepot/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
	"github.com/xiebiao/bookdepot/pkg/response"
)

// HistoryHandler 库存历史HTTP处理器
type HistoryHandler struct {
	queryHistoryUseCase *appstock.QueryHistoryUseCase
}

// NewHistoryHandler 创建历史处理器
func NewHistoryHandler(queryHistoryUseCase *appstock.QueryHistoryUseCase) *HistoryHandler {
	return &HistoryHandler{queryHistoryUseCase: queryHistoryUseCase}
}

// GetHistory 查询单本图书的库存历史
// @Summary      查询图书库存历史
// @Description  按时间倒序返回图书的全部库存变更
// @Tags         历史
// @Produce      json
// @Param        key path int true "图书ID"
// @Success      200 {object} dto.BookHistoryResponse
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /history/{key} [get]
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("key"), 10, 32)
	if err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeInvalidParams, "图书ID必须是整数"))
		return
	}

	result, err := h.queryHistoryUseCase.History(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	history := make([]dto.HistoryItem, len(result.History))
	for i, item := range result.History {
		history[i] = dto.HistoryItem{Date: item.Date, Quantity: item.Quantity}
	}
	response.OK(c, dto.BookHistoryResponse{
		Book:    dto.HistoryBookBrief{BookID: result.Book.BookID, Title: result.Book.Title},
		History: history,
	})
}

// SearchHistory 按条件检索库存历史
// @Summary      检索库存历史
// @Description  start/end/book都是可选条件,同时给出时取交集
// @Tags         历史
// @Produce      json
// @Param        start query string false "起始日期(YYYY-MM-DD,含当天)"
// @Param        end query string false "结束日期(YYYY-MM-DD,含当天)"
// @Param        book query int false "图书ID"
// @Success      200 {object} dto.SearchHistoryResponse
// @Failure      400 {object} response.ErrorBody "日期格式错误"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /history [get]
func (h *HistoryHandler) SearchHistory(c *gin.Context) {
	var req dto.HistorySearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeBindError, "参数错误: %s", err.Error()))
		return
	}

	result, err := h.queryHistoryUseCase.Search(c.Request.Context(), appstock.SearchHistoryRequest{
		BookID: req.Book,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	history := make([]dto.SearchHistoryItem, len(result.History))
	for i, item := range result.History {
		history[i] = dto.SearchHistoryItem{
			Book:     dto.HistoryBookBrief{BookID: item.Book.BookID, Title: item.Book.Title},
			Date:     item.Date,
			Quantity: item.Quantity,
		}
	}
	response.OK(c, dto.SearchHistoryResponse{History: history, Total: result.Total})
}
