package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appstock "github.com/xiebiao/bookdepot/internal/application/stock"
	"github.com/xiebiao/bookdepot/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
	"github.com/xiebiao/bookdepot/pkg/response"
)

// LeftoverHandler 库存HTTP处理器
type LeftoverHandler struct {
	setLeftoverUseCase    *appstock.SetLeftoverUseCase
	addQuantityUseCase    *appstock.AddQuantityUseCase
	removeQuantityUseCase *appstock.RemoveQuantityUseCase
	bulkImportUseCase     *appstock.BulkImportUseCase
	getLeftoverUseCase    *appstock.GetLeftoverUseCase
}

// NewLeftoverHandler 创建库存处理器
func NewLeftoverHandler(
	setLeftoverUseCase *appstock.SetLeftoverUseCase,
	addQuantityUseCase *appstock.AddQuantityUseCase,
	removeQuantityUseCase *appstock.RemoveQuantityUseCase,
	bulkImportUseCase *appstock.BulkImportUseCase,
	getLeftoverUseCase *appstock.GetLeftoverUseCase,
) *LeftoverHandler {
	return &LeftoverHandler{
		setLeftoverUseCase:    setLeftoverUseCase,
		addQuantityUseCase:    addQuantityUseCase,
		removeQuantityUseCase: removeQuantityUseCase,
		bulkImportUseCase:     bulkImportUseCase,
		getLeftoverUseCase:    getLeftoverUseCase,
	}
}

// GetLeftover 查询库存数量
// @Summary      查询库存数量
// @Description  返回图书当前库存数量,尚无库存记录时返回0
// @Tags         库存
// @Produce      json
// @Param        key path int true "图书ID"
// @Success      200 {object} dto.LeftoverResponse
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /leftover/{key} [get]
func (h *LeftoverHandler) GetLeftover(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("key"), 10, 32)
	if err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeInvalidParams, "图书ID必须是整数"))
		return
	}

	result, err := h.getLeftoverUseCase.Execute(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LeftoverResponse{BookID: result.BookID, Quantity: result.Quantity})
}

// SetLeftover 设置库存数量(老接口)
// @Summary      设置库存数量
// @Description  按图书ID直接报目标数量,内部换算为增量变更记入台账
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        request body dto.SetLeftoverRequest true "库存信息"
// @Success      201 {object} dto.SuccessResponse
// @Failure      400 {object} response.ErrorBody "数量非法"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /leftover [post]
func (h *LeftoverHandler) SetLeftover(c *gin.Context) {
	var req dto.SetLeftoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeBindError, "参数错误: %s", err.Error()))
		return
	}

	_, err := h.setLeftoverUseCase.Execute(c.Request.Context(), appstock.SetLeftoverRequest{
		BookID:   req.Book,
		Quantity: req.Quantity.String(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SuccessResponse{Success: true})
}

// AddQuantity 入库
// @Summary      入库
// @Description  按条码入库,数量必须是正整数
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        request body dto.ChangeQuantityRequest true "入库信息"
// @Success      201 {object} dto.SuccessResponse
// @Failure      400 {object} response.ErrorBody "数量非法"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /leftover/add [post]
func (h *LeftoverHandler) AddQuantity(c *gin.Context) {
	var req dto.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeBindError, "参数错误: %s", err.Error()))
		return
	}

	_, err := h.addQuantityUseCase.Execute(c.Request.Context(), appstock.ChangeQuantityRequest{
		Barcode:  req.Barcode,
		Quantity: req.Quantity.String(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SuccessResponse{Success: true})
}

// RemoveQuantity 出库
// @Summary      出库
// @Description  按条码出库,数量必须是正整数,库存不足整笔拒绝
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        request body dto.ChangeQuantityRequest true "出库信息"
// @Success      200 {object} dto.SuccessResponse
// @Failure      400 {object} response.ErrorBody "数量非法或库存不足"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /leftover/remove [post]
func (h *LeftoverHandler) RemoveQuantity(c *gin.Context) {
	var req dto.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeBindError, "参数错误: %s", err.Error()))
		return
	}

	_, err := h.removeQuantityUseCase.Execute(c.Request.Context(), appstock.ChangeQuantityRequest{
		Barcode:  req.Barcode,
		Quantity: req.Quantity.String(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SuccessResponse{Success: true})
}

// BulkImport 批量导入
// @Summary      批量导入库存变更
// @Description  multipart上传.xlsx或.txt文件,逐行应用;某行失败时中止,之前已提交的行保持提交
// @Tags         库存
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "导入文件(.xlsx或.txt)"
// @Success      201 {object} dto.SuccessResponse
// @Failure      400 {object} response.ErrorBody "文件格式或某行数量非法"
// @Failure      404 {object} response.ErrorBody "某行条码未登记"
// @Router       /leftover/bulk [post]
func (h *LeftoverHandler) BulkImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "缺少file字段"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperrors.Wrap(err, "读取上传文件失败"))
		return
	}
	defer file.Close()

	_, err = h.bulkImportUseCase.Execute(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SuccessResponse{Success: true})
}
