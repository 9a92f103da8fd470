package stock

import "context"

// LeftoverCache 库存数量缓存接口
// 设计说明:
// 1. 只缓存"当前数量"这一个读多写少的值,历史查询不走缓存
// 2. 缓存不可用时直接穿透到数据库,缓存层自身负责熔断降级
// 3. 任何库存变更后必须失效对应缓存,宁可缓存缺失也不要脏读
type LeftoverCache interface {
	// Get 读取缓存的数量,第二个返回值表示是否命中
	Get(ctx context.Context, bookID uint) (int, bool, error)

	// Set 写入数量
	Set(ctx context.Context, bookID uint, quantity int) error

	// Invalidate 失效缓存
	Invalidate(ctx context.Context, bookID uint) error
}

// NopLeftoverCache 空实现,缓存未启用时使用
type NopLeftoverCache struct{}

func (NopLeftoverCache) Get(ctx context.Context, bookID uint) (int, bool, error) {
	return 0, false, nil
}

func (NopLeftoverCache) Set(ctx context.Context, bookID uint, quantity int) error { return nil }

func (NopLeftoverCache) Invalidate(ctx context.Context, bookID uint) error { return nil }
