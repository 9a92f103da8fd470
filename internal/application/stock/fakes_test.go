package stock

import (
	"context"
	"time"

	"github.com/xiebiao/bookdepot/internal/domain/book"
	"github.com/xiebiao/bookdepot/internal/domain/stock"
)

// memBookService 内存图书服务,按条码与ID索引
type memBookService struct {
	byID      map[uint]*book.Book
	byBarcode map[string]*book.Book
}

func newMemBookService(books ...*book.Book) *memBookService {
	s := &memBookService{
		byID:      make(map[uint]*book.Book),
		byBarcode: make(map[string]*book.Book),
	}
	for _, b := range books {
		s.byID[b.ID] = b
		s.byBarcode[b.Barcode] = b
	}
	return s
}

func (s *memBookService) AddBook(ctx context.Context, barcode, title string, publishYear int, authorID uint) (*book.Book, error) {
	return nil, nil
}

func (s *memBookService) GetBookByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (s *memBookService) GetBookByBarcode(ctx context.Context, barcode string) (*book.Book, error) {
	b, ok := s.byBarcode[barcode]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (s *memBookService) SearchByBarcode(ctx context.Context, barcode string) ([]*book.Book, error) {
	if b, ok := s.byBarcode[barcode]; ok {
		return []*book.Book{b}, nil
	}
	return nil, nil
}

// memStockService 内存库存服务
// 保持与真实实现一致的语义:失败的变更不留任何痕迹
type memStockService struct {
	quantities map[uint]int
	history    []*stock.HistoryEntry
	books      *memBookService
	nextID     uint
}

func newMemStockService(books *memBookService) *memStockService {
	return &memStockService{
		quantities: make(map[uint]int),
		books:      books,
		nextID:     1,
	}
}

func (s *memStockService) ApplyDelta(ctx context.Context, bookID uint, delta int) (*stock.StockRecord, *stock.HistoryEntry, error) {
	if _, err := s.books.GetBookByID(ctx, bookID); err != nil {
		return nil, nil, err
	}

	candidate := s.quantities[bookID] + delta
	if candidate < 0 {
		return nil, nil, stock.ErrInsufficientQuantity
	}
	s.quantities[bookID] = candidate

	now := time.Now()
	entry := &stock.HistoryEntry{ID: s.nextID, BookID: bookID, SignedQuantity: delta, Timestamp: now}
	s.nextID++
	s.history = append(s.history, entry)

	record := &stock.StockRecord{BookID: bookID, Quantity: candidate, UpdatedAt: now}
	return record, entry, nil
}

func (s *memStockService) AddQuantity(ctx context.Context, bookID uint, quantity int) (*stock.StockRecord, *stock.HistoryEntry, error) {
	if quantity <= 0 {
		return nil, nil, stock.ErrNonPositiveQuantity
	}
	return s.ApplyDelta(ctx, bookID, quantity)
}

func (s *memStockService) RemoveQuantity(ctx context.Context, bookID uint, quantity int) (*stock.StockRecord, *stock.HistoryEntry, error) {
	if quantity <= 0 {
		return nil, nil, stock.ErrNonPositiveQuantity
	}
	return s.ApplyDelta(ctx, bookID, -quantity)
}

func (s *memStockService) CurrentQuantity(ctx context.Context, bookID uint) (int, error) {
	if _, err := s.books.GetBookByID(ctx, bookID); err != nil {
		return 0, err
	}
	return s.quantities[bookID], nil
}

func (s *memStockService) SetQuantity(ctx context.Context, bookID uint, target int) (*stock.StockRecord, *stock.HistoryEntry, error) {
	if target < 0 {
		return nil, nil, stock.ErrInsufficientQuantity
	}
	current, err := s.CurrentQuantity(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}
	if target == current {
		return &stock.StockRecord{BookID: bookID, Quantity: current, UpdatedAt: time.Now()}, nil, nil
	}
	return s.ApplyDelta(ctx, bookID, target-current)
}

// recordingPublisher 记录发布事件的发布器
type recordingPublisher struct {
	events []StockChangedEvent
}

func (p *recordingPublisher) PublishStockChanged(ctx context.Context, event StockChangedEvent) error {
	p.events = append(p.events, event)
	return nil
}

// memHistoryRepo 内存历史仓储(时间倒序)
type memHistoryRepo struct {
	entries []*stock.HistoryEntry
}

func (r *memHistoryRepo) ListByBookID(ctx context.Context, bookID uint) ([]*stock.HistoryEntry, error) {
	return r.Search(ctx, stock.HistoryFilter{BookID: bookID})
}

func (r *memHistoryRepo) Search(ctx context.Context, filter stock.HistoryFilter) ([]*stock.HistoryEntry, error) {
	var out []*stock.HistoryEntry
	// 倒序遍历模拟timestamp DESC, id DESC
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if filter.BookID != 0 && e.BookID != filter.BookID {
			continue
		}
		if !filter.Start.IsZero() && e.Timestamp.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && e.Timestamp.After(filter.End) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// memBookRepo 内存图书仓储(历史查询用例只用到查找类方法)
type memBookRepo struct {
	svc *memBookService
}

func (r *memBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }

func (r *memBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.svc.GetBookByID(ctx, id)
}

func (r *memBookRepo) FindByBarcode(ctx context.Context, barcode string) (*book.Book, error) {
	return r.svc.GetBookByBarcode(ctx, barcode)
}

func (r *memBookRepo) ListByBarcode(ctx context.Context, barcode string) ([]*book.Book, error) {
	return r.svc.SearchByBarcode(ctx, barcode)
}

func (r *memBookRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	out := make(map[uint]*book.Book)
	for _, id := range ids {
		if b, ok := r.svc.byID[id]; ok {
			out[id] = b
		}
	}
	return out, nil
}
