package book

import (
	"context"

	"github.com/xiebiao/bookdepot/internal/domain/author"
	"github.com/xiebiao/bookdepot/internal/domain/book"
	"github.com/xiebiao/bookdepot/internal/domain/stock"
)

// GetBookUseCase 图书详情查询用例
// 设计说明:详情聚合三块数据——图书本身、作者信息、当前库存数量,
// 图书存在但尚无库存记录时数量按0返回
type GetBookUseCase struct {
	bookService   book.Service
	authorService author.Service
	stockService  stock.Service
}

// NewGetBookUseCase 创建图书详情查询用例
func NewGetBookUseCase(bookService book.Service, authorService author.Service, stockService stock.Service) *GetBookUseCase {
	return &GetBookUseCase{
		bookService:   bookService,
		authorService: authorService,
		stockService:  stockService,
	}
}

// BookAuthorBrief 详情里的作者信息
type BookAuthorBrief struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

// BookDetailResponse 图书详情响应DTO
type BookDetailResponse struct {
	Key         uint            `json:"key"` // 图书ID(沿用老接口字段名)
	Barcode     string          `json:"barcode"`
	Title       string          `json:"title"`
	PublishYear int             `json:"publish_year"`
	Author      BookAuthorBrief `json:"author"`
	Quantity    int             `json:"quantity"`
}

// newBookDetailResponse 组装详情DTO
func newBookDetailResponse(b *book.Book, a *author.Author, quantity int) *BookDetailResponse {
	return &BookDetailResponse{
		Key:         b.ID,
		Barcode:     b.Barcode,
		Title:       b.Title,
		PublishYear: b.PublishYear,
		Author: BookAuthorBrief{
			Name:      a.Name,
			BirthDate: a.BirthDate.Format("2006-01-02"),
		},
		Quantity: quantity,
	}
}

// Execute 根据ID查询图书详情
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDetailResponse, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a, err := uc.authorService.GetAuthorByID(ctx, b.AuthorID)
	if err != nil {
		return nil, err
	}

	quantity, err := uc.stockService.CurrentQuantity(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	return newBookDetailResponse(b, a, quantity), nil
}
