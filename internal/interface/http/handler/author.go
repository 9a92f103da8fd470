package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookdepot/internal/application/author"
	"github.com/xiebiao/bookdepot/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
	"github.com/xiebiao/bookdepot/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	registerAuthorUseCase *appauthor.RegisterAuthorUseCase
	getAuthorUseCase      *appauthor.GetAuthorUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(registerAuthorUseCase *appauthor.RegisterAuthorUseCase, getAuthorUseCase *appauthor.GetAuthorUseCase) *AuthorHandler {
	return &AuthorHandler{
		registerAuthorUseCase: registerAuthorUseCase,
		getAuthorUseCase:      getAuthorUseCase,
	}
}

// AddAuthor 登记作者
// @Summary      登记作者
// @Description  登记一位新作者,出生日期必须晚于1900-01-01
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        request body dto.AddAuthorRequest true "作者信息"
// @Success      201 {object} dto.AddAuthorResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Router       /author [post]
func (h *AuthorHandler) AddAuthor(c *gin.Context) {
	var req dto.AddAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeBindError, "参数错误: %s", err.Error()))
		return
	}

	result, err := h.registerAuthorUseCase.Execute(c.Request.Context(), appauthor.RegisterAuthorRequest{
		Name:      req.Name,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.AddAuthorResponse{AuthorID: result.ID})
}

// GetAuthor 查询作者
// @Summary      查询作者
// @Tags         作者
// @Produce      json
// @Param        author_Id path int true "作者ID"
// @Success      200 {object} dto.AuthorResponse
// @Failure      404 {object} response.ErrorBody "作者不存在"
// @Router       /author/{author_Id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("author_Id"), 10, 32)
	if err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeInvalidParams, "作者ID必须是整数"))
		return
	}

	result, err := h.getAuthorUseCase.Execute(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AuthorResponse{AuthorID: result.ID, Name: result.Name})
}
