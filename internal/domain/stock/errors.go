package stock

import (
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrInsufficientQuantity 库存不足(扣减后数量将为负)
	ErrInsufficientQuantity = apperrors.New(apperrors.ErrCodeInsufficientQuantity, "库存不足")

	// ErrInvalidQuantity 数量格式非法(不是整数)
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须是整数")

	// ErrNonPositiveQuantity 数量必须是正整数
	ErrNonPositiveQuantity = apperrors.New(apperrors.ErrCodeNonPositiveQuantity, "数量必须是正整数")

	// ErrStockRecordNotFound 库存记录不存在
	// 注意:对外接口查询不存在的库存按数量0处理,此错误只在仓储层内部使用
	ErrStockRecordNotFound = apperrors.New(apperrors.ErrCodeNotFound, "库存记录不存在")
)
