package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. Barcode是对外的业务标识(库存操作、批量导入都按条码定位图书),
//    数据库层保证唯一;内部关联一律用自增ID
// 2. AuthorID关联作者表,作者信息通过author仓储二次查询,
//    不依赖ORM的懒加载
type Book struct {
	ID          uint
	Barcode     string // 条码(业务唯一标识)
	Title       string // 书名
	PublishYear int    // 出版年份
	AuthorID    uint   // 作者ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(barcode, title string, publishYear int, authorID uint) (*Book, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if authorID == 0 {
		return nil, ErrInvalidAuthorID
	}
	now := time.Now()
	return &Book{
		Barcode:     barcode,
		Title:       title,
		PublishYear: publishYear,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
