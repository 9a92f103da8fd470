package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookdepot/internal/application/book"
	"github.com/xiebiao/bookdepot/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
	"github.com/xiebiao/bookdepot/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	addBookUseCase     *appbook.AddBookUseCase
	getBookUseCase     *appbook.GetBookUseCase
	searchBooksUseCase *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(addBookUseCase *appbook.AddBookUseCase, getBookUseCase *appbook.GetBookUseCase, searchBooksUseCase *appbook.SearchBooksUseCase) *BookHandler {
	return &BookHandler{
		addBookUseCase:     addBookUseCase,
		getBookUseCase:     getBookUseCase,
		searchBooksUseCase: searchBooksUseCase,
	}
}

// AddBook 登记图书
// @Summary      登记图书
// @Description  登记一本新书,author字段传作者姓名,作者必须已登记
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      201 {object} dto.AddBookResponse
// @Failure      400 {object} response.ErrorBody "参数错误或条码已存在"
// @Failure      404 {object} response.ErrorBody "作者不存在"
// @Router       /book [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeBindError, "参数错误: %s", err.Error()))
		return
	}

	result, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		Barcode:     req.Barcode,
		Title:       req.Title,
		PublishYear: req.PublishYear,
		AuthorName:  req.Author,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.AddBookResponse{
		BookID:   result.ID,
		BookName: result.Title,
		Author:   req.Author,
	})
}

// GetBook 查询图书详情
// @Summary      查询图书详情
// @Description  返回图书信息、作者信息与当前库存数量
// @Tags         图书
// @Produce      json
// @Param        key path int true "图书ID"
// @Success      200 {object} dto.BookDetailResponse
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /book/{key} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("key"), 10, 32)
	if err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeInvalidParams, "图书ID必须是整数"))
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toBookDetailDTO(result))
}

// SearchBooks 按条码检索图书
// @Summary      按条码检索图书
// @Description  无匹配时返回found=0与空列表,不是错误
// @Tags         图书
// @Produce      json
// @Param        barcode query string true "条码"
// @Success      200 {object} dto.SearchBooksResponse
// @Router       /book [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	barcode := c.Query("barcode")

	result, err := h.searchBooksUseCase.Execute(c.Request.Context(), barcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.BookDetailResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = toBookDetailDTO(item)
	}
	response.OK(c, dto.SearchBooksResponse{Found: result.Found, Items: items})
}

// toBookDetailDTO 用例响应 → HTTP DTO
func toBookDetailDTO(r *appbook.BookDetailResponse) dto.BookDetailResponse {
	return dto.BookDetailResponse{
		Key:         r.Key,
		Barcode:     r.Barcode,
		Title:       r.Title,
		PublishYear: r.PublishYear,
		Author: dto.BookAuthorBrief{
			Name:      r.Author.Name,
			BirthDate: r.Author.BirthDate,
		},
		Quantity: r.Quantity,
	}
}
