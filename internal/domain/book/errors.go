package book

import (
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBarcodeDuplicate 条码已存在
	ErrBarcodeDuplicate = apperrors.New(apperrors.ErrCodeBarcodeDuplicate, "条码已存在")

	// ErrEmptyTitle 书名不能为空
	ErrEmptyTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrInvalidAuthorID 无效的作者ID
	ErrInvalidAuthorID = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的作者ID")
)
