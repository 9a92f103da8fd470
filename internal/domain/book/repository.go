package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 批量导入逐行按条码定位图书,FindByBarcode必须走唯一索引
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, b *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByBarcode 根据条码查找图书
	FindByBarcode(ctx context.Context, barcode string) (*Book, error)

	// ListByBarcode 按条码检索图书列表(无匹配返回空列表,不是错误)
	ListByBarcode(ctx context.Context, barcode string) ([]*Book, error)

	// FindByIDs 批量查询图书(历史查询与图书信息做两步关联时使用)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)
}
