package stock

import (
	"context"
	"time"

	"github.com/xiebiao/bookdepot/internal/domain/book"
	"github.com/xiebiao/bookdepot/internal/domain/stock"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
)

// QueryHistoryUseCase 库存历史查询用例
//
// 设计说明:
// 1. 两种查询形态:单本图书的完整历史、按条件(图书/时间段)的过滤检索
// 2. 指定了图书但图书不存在是调用方错误,返回图书不存在,
//    而不是静默返回空列表
// 3. 历史与图书信息的关联采用两步查询(先查历史再批量查图书),
//    不依赖ORM的关联加载
type QueryHistoryUseCase struct {
	historyRepo stock.HistoryRepository
	bookRepo    book.Repository
}

// NewQueryHistoryUseCase 创建历史查询用例
func NewQueryHistoryUseCase(historyRepo stock.HistoryRepository, bookRepo book.Repository) *QueryHistoryUseCase {
	return &QueryHistoryUseCase{
		historyRepo: historyRepo,
		bookRepo:    bookRepo,
	}
}

// BookBrief 历史响应中的图书标识
type BookBrief struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
}

// HistoryItem 历史条目DTO
type HistoryItem struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"` // 带符号的变更数量
}

// BookHistoryResponse 单本图书历史响应DTO
type BookHistoryResponse struct {
	Book    BookBrief     `json:"book"`
	History []HistoryItem `json:"history"`
}

// History 查询单本图书的完整历史(时间倒序)
func (uc *QueryHistoryUseCase) History(ctx context.Context, bookID uint) (*BookHistoryResponse, error) {
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.historyRepo.ListByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	history := make([]HistoryItem, len(entries))
	for i, e := range entries {
		history[i] = HistoryItem{
			Date:     e.Timestamp.Format("2006-01-02 15:04:05"),
			Quantity: e.SignedQuantity,
		}
	}

	return &BookHistoryResponse{
		Book:    BookBrief{BookID: b.ID, Title: b.Title},
		History: history,
	}, nil
}

// SearchHistoryRequest 历史检索请求DTO(条件都是可选的,同时给出时取交集)
type SearchHistoryRequest struct {
	BookID uint   // 按图书过滤(0表示全部)
	Start  string // 起始日期(YYYY-MM-DD,含当天)
	End    string // 结束日期(YYYY-MM-DD,含当天)
}

// SearchHistoryItem 检索结果条目DTO(带图书标识)
type SearchHistoryItem struct {
	Book     BookBrief `json:"book"`
	Date     string    `json:"date"`
	Quantity int       `json:"quantity"`
}

// SearchHistoryResponse 历史检索响应DTO
type SearchHistoryResponse struct {
	History []SearchHistoryItem `json:"history"`
	Total   int                 `json:"total"`
}

// Search 按条件检索历史
func (uc *QueryHistoryUseCase) Search(ctx context.Context, req SearchHistoryRequest) (*SearchHistoryResponse, error) {
	filter := stock.HistoryFilter{BookID: req.BookID}

	if req.Start != "" {
		start, err := time.Parse("2006-01-02", req.Start)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "起始日期格式必须为YYYY-MM-DD")
		}
		filter.Start = start
	}
	if req.End != "" {
		end, err := time.Parse("2006-01-02", req.End)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "结束日期格式必须为YYYY-MM-DD")
		}
		// 结束日期含当天
		filter.End = end.Add(24*time.Hour - time.Nanosecond)
	}

	// 指定了图书必须先确认图书存在
	if req.BookID != 0 {
		if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
			return nil, err
		}
	}

	entries, err := uc.historyRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	// 批量补齐图书标识
	ids := make([]uint, 0, len(entries))
	seen := make(map[uint]bool)
	for _, e := range entries {
		if !seen[e.BookID] {
			seen[e.BookID] = true
			ids = append(ids, e.BookID)
		}
	}

	books := map[uint]*book.Book{}
	if len(ids) > 0 {
		books, err = uc.bookRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	history := make([]SearchHistoryItem, len(entries))
	for i, e := range entries {
		brief := BookBrief{BookID: e.BookID}
		if b, ok := books[e.BookID]; ok {
			brief.Title = b.Title
		}
		history[i] = SearchHistoryItem{
			Book:     brief,
			Date:     e.Timestamp.Format("2006-01-02 15:04:05"),
			Quantity: e.SignedQuantity,
		}
	}

	return &SearchHistoryResponse{History: history, Total: len(history)}, nil
}
