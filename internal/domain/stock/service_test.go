package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookdepot/internal/domain/book"
)

// fakeBookRepo 内存图书仓储,只实现服务测试需要的查找
type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(ids ...uint) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, id := range ids {
		r.books[id] = &book.Book{ID: id, Barcode: "bc", Title: "t", AuthorID: 1}
	}
	return r
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindByBarcode(ctx context.Context, barcode string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) ListByBarcode(ctx context.Context, barcode string) ([]*book.Book, error) {
	return nil, nil
}

func (r *fakeBookRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	return r.books, nil
}

// fakeStockRepo 内存库存仓储
// 模拟真实实现的事务语义:变更失败时记录和历史都不动
type fakeStockRepo struct {
	records map[uint]*StockRecord
	history []*HistoryEntry
	nextID  uint
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{records: make(map[uint]*StockRecord), nextID: 1}
}

func (r *fakeStockRepo) ApplyDelta(ctx context.Context, bookID uint, delta int) (*StockRecord, *HistoryEntry, error) {
	record, ok := r.records[bookID]
	if !ok {
		record = NewStockRecord(bookID, time.Now())
	}

	entry, err := record.Apply(delta, time.Now())
	if err != nil {
		return nil, nil, err
	}

	r.records[bookID] = record
	entry.ID = r.nextID
	r.nextID++
	r.history = append(r.history, entry)
	return record, entry, nil
}

func (r *fakeStockRepo) GetByBookID(ctx context.Context, bookID uint) (*StockRecord, error) {
	record, ok := r.records[bookID]
	if !ok {
		return nil, ErrStockRecordNotFound
	}
	return record, nil
}

// signedSum 历史带符号数量求和,用于对账校验
func (r *fakeStockRepo) signedSum(bookID uint) int {
	sum := 0
	for _, e := range r.history {
		if e.BookID == bookID {
			sum += e.SignedQuantity
		}
	}
	return sum
}

// TestService_AddAndRemove 测试入库出库与对账不变量
func TestService_AddAndRemove(t *testing.T) {
	repo := newFakeStockRepo()
	svc := NewService(repo, newFakeBookRepo(1))
	ctx := context.Background()

	record, entry, err := svc.AddQuantity(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, record.Quantity)
	assert.Equal(t, 10, entry.SignedQuantity)

	record, entry, err = svc.RemoveQuantity(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, record.Quantity)
	assert.Equal(t, -3, entry.SignedQuantity)

	// 对账:当前数量 == 历史带符号数量之和
	assert.Equal(t, record.Quantity, repo.signedSum(1))
	require.Len(t, repo.history, 2)
}

// TestService_RemoveInsufficient 测试库存不足时整体拒绝
func TestService_RemoveInsufficient(t *testing.T) {
	repo := newFakeStockRepo()
	svc := NewService(repo, newFakeBookRepo(1))
	ctx := context.Background()

	_, _, err := svc.RemoveQuantity(ctx, 1, 5)
	require.ErrorIs(t, err, ErrInsufficientQuantity)

	// 失败的变更不留任何痕迹
	assert.Empty(t, repo.history)
	q, err := svc.CurrentQuantity(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, q)
}

// TestService_NonPositiveRejected 测试入库出库数量必须为正
func TestService_NonPositiveRejected(t *testing.T) {
	repo := newFakeStockRepo()
	svc := NewService(repo, newFakeBookRepo(1))
	ctx := context.Background()

	_, _, err := svc.AddQuantity(ctx, 1, 0)
	require.ErrorIs(t, err, ErrNonPositiveQuantity)

	_, _, err = svc.RemoveQuantity(ctx, 1, -2)
	require.ErrorIs(t, err, ErrNonPositiveQuantity)

	assert.Empty(t, repo.history)
}

// TestService_BookNotFound 测试图书不存在时所有操作统一报错
func TestService_BookNotFound(t *testing.T) {
	repo := newFakeStockRepo()
	svc := NewService(repo, newFakeBookRepo())
	ctx := context.Background()

	_, _, err := svc.AddQuantity(ctx, 99, 1)
	require.ErrorIs(t, err, book.ErrBookNotFound)

	_, err = svc.CurrentQuantity(ctx, 99)
	require.ErrorIs(t, err, book.ErrBookNotFound)

	_, _, err = svc.SetQuantity(ctx, 99, 5)
	require.ErrorIs(t, err, book.ErrBookNotFound)
}

// TestService_CurrentQuantityAbsent 测试无库存记录时按0处理
func TestService_CurrentQuantityAbsent(t *testing.T) {
	svc := NewService(newFakeStockRepo(), newFakeBookRepo(1))

	q, err := svc.CurrentQuantity(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, q)
}

// TestService_SetQuantity 测试直接设置数量换算为增量
func TestService_SetQuantity(t *testing.T) {
	repo := newFakeStockRepo()
	svc := NewService(repo, newFakeBookRepo(1))
	ctx := context.Background()

	// 从0设置到8,历史记录+8
	record, entry, err := svc.SetQuantity(ctx, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, record.Quantity)
	assert.Equal(t, 8, entry.SignedQuantity)

	// 从8下调到3,历史记录-5
	record, entry, err = svc.SetQuantity(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, record.Quantity)
	assert.Equal(t, -5, entry.SignedQuantity)

	// 设置为当前值,不产生历史
	record, entry, err = svc.SetQuantity(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, record.Quantity)
	assert.Nil(t, entry)
	require.Len(t, repo.history, 2)

	// 目标为负直接拒绝
	_, _, err = svc.SetQuantity(ctx, 1, -1)
	require.ErrorIs(t, err, ErrInsufficientQuantity)

	assert.Equal(t, 3, repo.signedSum(1))
}
