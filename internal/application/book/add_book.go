package book

import (
	"context"

	"github.com/xiebiao/bookdepot/internal/domain/author"
	"github.com/xiebiao/bookdepot/internal/domain/book"
)

// AddBookUseCase 图书登记用例
// 设计说明:
// 1. 对外接口按作者姓名登记图书,姓名到作者ID的解析在这里完成,
//    领域服务只接收已解析的AuthorID
// 2. 作者不存在时直接报错,不做隐式创建
type AddBookUseCase struct {
	bookService   book.Service
	authorService author.Service
}

// NewAddBookUseCase 创建图书登记用例
func NewAddBookUseCase(bookService book.Service, authorService author.Service) *AddBookUseCase {
	return &AddBookUseCase{
		bookService:   bookService,
		authorService: authorService,
	}
}

// AddBookRequest 图书登记请求DTO
type AddBookRequest struct {
	Barcode     string // 条码
	Title       string // 书名
	PublishYear int    // 出版年份
	AuthorName  string // 作者姓名
}

// AddBookResponse 图书登记响应DTO
type AddBookResponse struct {
	ID          uint   `json:"id"`
	Barcode     string `json:"barcode"`
	Title       string `json:"title"`
	PublishYear int    `json:"publish_year"`
	AuthorID    uint   `json:"author_id"`
}

// Execute 执行图书登记
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*AddBookResponse, error) {
	// 1. 解析作者姓名
	a, err := uc.authorService.GetAuthorByName(ctx, req.AuthorName)
	if err != nil {
		return nil, err
	}

	// 2. 登记图书
	b, err := uc.bookService.AddBook(ctx, req.Barcode, req.Title, req.PublishYear, a.ID)
	if err != nil {
		return nil, err
	}

	return &AddBookResponse{
		ID:          b.ID,
		Barcode:     b.Barcode,
		Title:       b.Title,
		PublishYear: b.PublishYear,
		AuthorID:    b.AuthorID,
	}, nil
}
