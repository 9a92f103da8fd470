package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookdepot/internal/domain/stock"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
)

// historyRepository 库存历史仓储实现(MySQL)
// 历史条目只由stockRepository.ApplyDelta写入,这里只读
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository 创建库存历史仓储
func NewHistoryRepository(db *gorm.DB) stock.HistoryRepository {
	return &historyRepository{db: db}
}

// ListByBookID 查询某本图书的全部历史
func (r *historyRepository) ListByBookID(ctx context.Context, bookID uint) ([]*stock.HistoryEntry, error) {
	return r.Search(ctx, stock.HistoryFilter{BookID: bookID})
}

// Search 按条件检索历史
// 排序:时间倒序,时间相同按自增ID倒序(插入顺序是最终依据)
func (r *historyRepository) Search(ctx context.Context, filter stock.HistoryFilter) ([]*stock.HistoryEntry, error) {
	query := dbFromContext(ctx, r.db).Model(&HistoryModel{})

	if filter.BookID != 0 {
		query = query.Where("book_id = ?", filter.BookID)
	}
	if !filter.Start.IsZero() {
		query = query.Where("timestamp >= ?", filter.Start)
	}
	if !filter.End.IsZero() {
		query = query.Where("timestamp <= ?", filter.End)
	}

	var models []HistoryModel
	if err := query.Order("timestamp DESC, id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询库存历史失败")
	}

	entries := make([]*stock.HistoryEntry, len(models))
	for i := range models {
		entries[i] = &stock.HistoryEntry{
			ID:             models[i].ID,
			BookID:         models[i].BookID,
			SignedQuantity: models[i].SignedQuantity,
			Timestamp:      models[i].Timestamp,
		}
	}
	return entries, nil
}
