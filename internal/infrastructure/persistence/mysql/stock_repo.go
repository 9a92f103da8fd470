package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookdepot/internal/domain/stock"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
)

// stockRepository 库存仓储实现(MySQL)
//
// 设计说明:
// 1. ApplyDelta是唯一的写路径,在单个事务内完成:
//    行锁读取(SELECT FOR UPDATE) → 领域校验 → 保存记录 → 追加历史
// 2. 行锁把同一本图书的并发变更串行化,避免丢失更新;
//    不同图书之间互不阻塞
// 3. 记录不存在时在同一事务内创建数量0的记录再应用变更,
//    并发首次创建靠book_id唯一索引兜底
type stockRepository struct {
	db        *gorm.DB
	txManager *TxManager
}

// NewStockRepository 创建库存仓储
func NewStockRepository(db *gorm.DB, txManager *TxManager) stock.Repository {
	return &stockRepository{db: db, txManager: txManager}
}

// ApplyDelta 在单个事务内应用一次带符号变更并追加历史
func (r *stockRepository) ApplyDelta(ctx context.Context, bookID uint, delta int) (*stock.StockRecord, *stock.HistoryEntry, error) {
	var (
		record *stock.StockRecord
		entry  *stock.HistoryEntry
	)

	err := r.txManager.Transaction(ctx, func(txCtx context.Context) error {
		db := dbFromContext(txCtx, r.db)

		// 1. 行锁读取库存记录
		var model StockRecordModel
		err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("book_id = ?", bookID).
			First(&model).Error

		now := time.Now()
		switch {
		case err == nil:
			// 已有记录

		case errors.Is(err, gorm.ErrRecordNotFound):
			// 2. 首次库存操作,惰性创建数量0的记录
			model = StockRecordModel{BookID: bookID, Quantity: 0}
			if createErr := db.Create(&model).Error; createErr != nil {
				if isDuplicateError(createErr) {
					// 并发创建撞上唯一索引,重新加锁读取
					if retryErr := db.Clauses(clause.Locking{Strength: "UPDATE"}).
						Where("book_id = ?", bookID).
						First(&model).Error; retryErr != nil {
						return apperrors.Wrap(retryErr, "读取库存记录失败")
					}
				} else {
					return apperrors.Wrap(createErr, "创建库存记录失败")
				}
			}

		default:
			return apperrors.Wrap(err, "读取库存记录失败")
		}

		// 3. 领域校验(非负不变量在这里守住)
		rec := toStockRecordEntity(&model)
		appliedEntry, err := rec.Apply(delta, now)
		if err != nil {
			return err // 回滚,不留任何痕迹
		}

		// 4. 保存记录
		if err := db.Model(&StockRecordModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"quantity":   rec.Quantity,
				"updated_at": rec.UpdatedAt,
			}).Error; err != nil {
			return apperrors.Wrap(err, "更新库存记录失败")
		}

		// 5. 同一事务内追加历史
		historyModel := &HistoryModel{
			BookID:         appliedEntry.BookID,
			SignedQuantity: appliedEntry.SignedQuantity,
			Timestamp:      appliedEntry.Timestamp,
		}
		if err := db.Create(historyModel).Error; err != nil {
			return apperrors.Wrap(err, "写入库存历史失败")
		}
		appliedEntry.ID = historyModel.ID

		record = rec
		entry = appliedEntry
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return record, entry, nil
}

// GetByBookID 查询图书的库存记录
func (r *stockRepository) GetByBookID(ctx context.Context, bookID uint) (*stock.StockRecord, error) {
	var model StockRecordModel
	err := dbFromContext(ctx, r.db).Where("book_id = ?", bookID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrStockRecordNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存记录失败")
	}
	return toStockRecordEntity(&model), nil
}

// toStockRecordEntity GORM模型 → 领域实体
func toStockRecordEntity(model *StockRecordModel) *stock.StockRecord {
	return &stock.StockRecord{
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
