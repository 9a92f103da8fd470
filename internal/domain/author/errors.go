package author

import (
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
)

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrInvalidBirthDate 出生日期不合法
	ErrInvalidBirthDate = apperrors.New(apperrors.ErrCodeInvalidBirthDate, "出生日期必须晚于1900年1月1日")

	// ErrEmptyName 姓名不能为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "作者姓名不能为空")
)
