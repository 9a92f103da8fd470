package book

import (
	"context"

	"github.com/xiebiao/bookdepot/internal/domain/author"
	"github.com/xiebiao/bookdepot/internal/domain/book"
	"github.com/xiebiao/bookdepot/internal/domain/stock"
)

// SearchBooksUseCase 图书检索用例
// 设计说明:检索结果与详情查询返回同样的聚合(图书+作者+当前数量),
// 无匹配返回空列表而不是错误
type SearchBooksUseCase struct {
	bookService   book.Service
	authorService author.Service
	stockService  stock.Service
}

// NewSearchBooksUseCase 创建图书检索用例
func NewSearchBooksUseCase(bookService book.Service, authorService author.Service, stockService stock.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		bookService:   bookService,
		authorService: authorService,
		stockService:  stockService,
	}
}

// SearchBooksResponse 检索响应DTO
type SearchBooksResponse struct {
	Found int                   `json:"found"`
	Items []*BookDetailResponse `json:"items"`
}

// Execute 按条码检索图书
func (uc *SearchBooksUseCase) Execute(ctx context.Context, barcode string) (*SearchBooksResponse, error) {
	books, err := uc.bookService.SearchByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	items := make([]*BookDetailResponse, 0, len(books))
	for _, b := range books {
		a, err := uc.authorService.GetAuthorByID(ctx, b.AuthorID)
		if err != nil {
			return nil, err
		}
		quantity, err := uc.stockService.CurrentQuantity(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, newBookDetailResponse(b, a, quantity))
	}

	return &SearchBooksResponse{Found: len(items), Items: items}, nil
}
