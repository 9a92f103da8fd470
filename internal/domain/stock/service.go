package stock

import (
	"context"
	"errors"

	"github.com/xiebiao/bookdepot/internal/domain/book"
)

// Service 库存领域服务接口
//
// 核心业务规则:
// 1. 所有操作先校验图书存在,图书不存在一律返回ErrBookNotFound
// 2. 变更统一走带符号增量(delta),入库为正、出库为负
// 3. 任何时刻满足对账不变量:当前数量 == 历史带符号数量之和
type Service interface {
	// ApplyDelta 应用一次带符号的库存变更
	ApplyDelta(ctx context.Context, bookID uint, delta int) (*StockRecord, *HistoryEntry, error)

	// AddQuantity 入库(quantity必须为正)
	AddQuantity(ctx context.Context, bookID uint, quantity int) (*StockRecord, *HistoryEntry, error)

	// RemoveQuantity 出库(quantity必须为正,库存不足则拒绝)
	RemoveQuantity(ctx context.Context, bookID uint, quantity int) (*StockRecord, *HistoryEntry, error)

	// CurrentQuantity 查询当前数量(图书存在但无库存记录时返回0)
	CurrentQuantity(ctx context.Context, bookID uint) (int, error)

	// SetQuantity 直接设置库存数量(内部换算为增量变更,保持对账不变量)
	SetQuantity(ctx context.Context, bookID uint, target int) (*StockRecord, *HistoryEntry, error)
}

// service 领域服务实现
type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService 创建库存领域服务
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

// ApplyDelta 应用一次带符号的库存变更
func (s *service) ApplyDelta(ctx context.Context, bookID uint, delta int) (*StockRecord, *HistoryEntry, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, nil, err
	}
	return s.repo.ApplyDelta(ctx, bookID, delta)
}

// AddQuantity 入库
func (s *service) AddQuantity(ctx context.Context, bookID uint, quantity int) (*StockRecord, *HistoryEntry, error) {
	if quantity <= 0 {
		return nil, nil, ErrNonPositiveQuantity
	}
	return s.ApplyDelta(ctx, bookID, quantity)
}

// RemoveQuantity 出库
func (s *service) RemoveQuantity(ctx context.Context, bookID uint, quantity int) (*StockRecord, *HistoryEntry, error) {
	if quantity <= 0 {
		return nil, nil, ErrNonPositiveQuantity
	}
	return s.ApplyDelta(ctx, bookID, -quantity)
}

// CurrentQuantity 查询当前数量
// 设计说明:图书存在但还没有库存记录是正常状态(尚未发生过库存操作),
// 返回0而不是错误;图书不存在才报错
func (s *service) CurrentQuantity(ctx context.Context, bookID uint) (int, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return 0, err
	}

	record, err := s.repo.GetByBookID(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrStockRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.Quantity, nil
}

// SetQuantity 直接设置库存数量
// 设计说明:换算成增量(目标值-当前值)走ApplyDelta,历史里记录的是
// 带符号的差值而不是目标值,对账不变量因此保持成立;
// 目标值等于当前值时不产生历史条目
func (s *service) SetQuantity(ctx context.Context, bookID uint, target int) (*StockRecord, *HistoryEntry, error) {
	if target < 0 {
		return nil, nil, ErrInsufficientQuantity
	}

	current, err := s.CurrentQuantity(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}

	delta := target - current
	if delta == 0 {
		record, err := s.repo.GetByBookID(ctx, bookID)
		if err != nil {
			if errors.Is(err, ErrStockRecordNotFound) {
				return nil, nil, nil
			}
			return nil, nil, err
		}
		return record, nil, nil
	}

	return s.repo.ApplyDelta(ctx, bookID, delta)
}
