package dto

import (
	"encoding/json"
	"strings"
)

// RawQuantity 数量字段的原始文本
//
// 设计说明:客户端可能把数量发成JSON数字(5)或字符串("5"),
// 两种都接受;这里只还原为原始文本,整数校验统一由领域层的
// 数量校验完成,保证各入口(单笔接口、批量导入)规则一致
type RawQuantity string

// UnmarshalJSON 接受数字或字符串两种形式
func (q *RawQuantity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))

	// 字符串形式:去掉引号
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*q = RawQuantity(str)
		return nil
	}

	// 数字形式(含小数、科学计数法):保留原始文本交给领域层校验
	*q = RawQuantity(s)
	return nil
}

// String 返回原始文本
func (q RawQuantity) String() string {
	return string(q)
}

// SetLeftoverRequest HTTP设置库存请求(老接口,按图书ID直接报目标数量)
type SetLeftoverRequest struct {
	Book     uint        `json:"book" binding:"required" example:"1"`
	Quantity RawQuantity `json:"quantity" binding:"required" example:"10"`
}

// ChangeQuantityRequest HTTP入库/出库请求(按条码定位图书)
type ChangeQuantityRequest struct {
	Barcode  string      `json:"barcode" binding:"required" example:"9780000010001"`
	Quantity RawQuantity `json:"quantity" binding:"required" example:"5"`
}

// SuccessResponse 库存操作成功响应
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// LeftoverResponse HTTP库存数量响应
type LeftoverResponse struct {
	BookID   uint `json:"book_id" example:"1"`
	Quantity int  `json:"quantity" example:"7"`
}

// HistorySearchRequest HTTP历史检索请求(query参数)
type HistorySearchRequest struct {
	Start string `form:"start" binding:"omitempty" example:"2025-06-01"`
	End   string `form:"end" binding:"omitempty" example:"2025-06-30"`
	Book  uint   `form:"book" binding:"omitempty" example:"1"`
}

// HistoryBookBrief 历史响应中的图书标识
type HistoryBookBrief struct {
	BookID uint   `json:"book_id" example:"1"`
	Title  string `json:"title" example:"三体"`
}

// HistoryItem 历史条目
type HistoryItem struct {
	Date     string `json:"date" example:"2025-06-01 12:00:00"`
	Quantity int    `json:"quantity" example:"-3"`
}

// BookHistoryResponse HTTP单本图书历史响应
type BookHistoryResponse struct {
	Book    HistoryBookBrief `json:"book"`
	History []HistoryItem    `json:"history"`
}

// SearchHistoryItem HTTP历史检索条目(带图书标识)
type SearchHistoryItem struct {
	Book     HistoryBookBrief `json:"book"`
	Date     string           `json:"date" example:"2025-06-01 12:00:00"`
	Quantity int              `json:"quantity" example:"5"`
}

// SearchHistoryResponse HTTP历史检索响应
type SearchHistoryResponse struct {
	History []SearchHistoryItem `json:"history"`
	Total   int                 `json:"total" example:"2"`
}
