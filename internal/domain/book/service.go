package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:作者姓名到作者ID的解析属于用例编排,在应用层完成,
// 领域服务只接收已解析的AuthorID
type Service interface {
	// AddBook 登记图书
	// 业务规则:书名非空,作者ID必须有效,条码不能重复(数据库唯一索引兜底)
	AddBook(ctx context.Context, barcode, title string, publishYear int, authorID uint) (*Book, error)

	// GetBookByID 根据ID获取图书
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByBarcode 根据条码获取图书
	GetBookByBarcode(ctx context.Context, barcode string) (*Book, error)

	// SearchByBarcode 按条码检索图书
	SearchByBarcode(ctx context.Context, barcode string) ([]*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 登记图书
func (s *service) AddBook(ctx context.Context, barcode, title string, publishYear int, authorID uint) (*Book, error) {
	b, err := NewBook(barcode, title, publishYear, authorID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByBarcode 根据条码获取图书
func (s *service) GetBookByBarcode(ctx context.Context, barcode string) (*Book, error) {
	return s.repo.FindByBarcode(ctx, barcode)
}

// SearchByBarcode 按条码检索图书
func (s *service) SearchByBarcode(ctx context.Context, barcode string) ([]*Book, error) {
	return s.repo.ListByBarcode(ctx, barcode)
}
