package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
)

// 统一响应约定
// 设计说明：
// 1. 成功响应直接返回业务数据（如 {"success": true} 或 {"author_Id": 1}），
//    不再额外包一层envelope，方便盘点工具等已有客户端直接对接
// 2. 失败响应统一为 {"error": "<message>"}，HTTP状态码反映错误类别
//    （404资源不存在 / 400参数或业务错误 / 500系统错误）
// 3. 详细的内部错误（AppError.Err）只进日志，不返回给客户端

// ErrorBody 错误响应体
type ErrorBody struct {
	Error string `json:"error"`
}

// OK 成功响应（200）
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := ledger.AddQuantity(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	c.JSON(appErr.HTTPStatus(), ErrorBody{Error: appErr.Message})
}

// ErrorWithStatus 指定HTTP状态码的错误响应
// 用途：参数绑定失败等未经过AppError体系的场景
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}
