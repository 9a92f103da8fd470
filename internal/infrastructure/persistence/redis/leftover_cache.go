package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	appstock "github.com/xiebiao/bookdepot/internal/application/stock"
	"github.com/xiebiao/bookdepot/pkg/circuitbreaker"
	"github.com/xiebiao/bookdepot/pkg/metrics"
)

// leftoverCache 库存数量缓存实现(Redis)
//
// 设计说明:
// 1. 键格式 leftover:<book_id>,值为数量的十进制文本,带TTL兜底
// 2. 所有Redis访问都经过熔断器:Redis故障时读写快速失败,
//    调用方降级到数据库,不拖慢主流程
// 3. 熔断器状态变化通过Gauge指标暴露
type leftoverCache struct {
	client  *redis.Client
	breaker *circuitbreaker.Breaker
	ttl     time.Duration
}

// NewLeftoverCache 创建库存数量缓存
func NewLeftoverCache(client *redis.Client, ttl time.Duration) appstock.LeftoverCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &leftoverCache{
		client:  client,
		breaker: circuitbreaker.New("leftover-cache", 5, 30*time.Second),
		ttl:     ttl,
	}
}

// Get 读取缓存的数量
func (c *leftoverCache) Get(ctx context.Context, bookID uint) (int, bool, error) {
	var (
		quantity int
		hit      bool
	)

	err := c.do(func() error {
		val, err := c.client.Get(ctx, cacheKey(bookID)).Result()
		if errors.Is(err, redis.Nil) {
			return nil // 未命中不是错误
		}
		if err != nil {
			return err
		}

		n, err := strconv.Atoi(val)
		if err != nil {
			// 值被污染,当作未命中并清理
			c.client.Del(ctx, cacheKey(bookID))
			return nil
		}
		quantity = n
		hit = true
		return nil
	})

	switch {
	case errors.Is(err, circuitbreaker.ErrOpen):
		metrics.IncCounterVec(metrics.LeftoverCacheRequests, map[string]string{"result": "rejected"})
		return 0, false, err
	case err != nil:
		metrics.IncCounterVec(metrics.LeftoverCacheRequests, map[string]string{"result": "error"})
		return 0, false, err
	case hit:
		metrics.IncCounterVec(metrics.LeftoverCacheRequests, map[string]string{"result": "hit"})
	default:
		metrics.IncCounterVec(metrics.LeftoverCacheRequests, map[string]string{"result": "miss"})
	}
	return quantity, hit, nil
}

// Set 写入数量
func (c *leftoverCache) Set(ctx context.Context, bookID uint, quantity int) error {
	return c.do(func() error {
		return c.client.Set(ctx, cacheKey(bookID), strconv.Itoa(quantity), c.ttl).Err()
	})
}

// Invalidate 失效缓存
func (c *leftoverCache) Invalidate(ctx context.Context, bookID uint) error {
	return c.do(func() error {
		return c.client.Del(ctx, cacheKey(bookID)).Err()
	})
}

// do 经熔断器执行并上报熔断器状态指标
func (c *leftoverCache) do(fn func() error) error {
	err := c.breaker.Do(fn)
	metrics.SetGaugeVec(metrics.CircuitBreakerState,
		map[string]string{"name": "leftover-cache"},
		float64(c.breaker.State()))
	return err
}

// cacheKey 缓存键
func cacheKey(bookID uint) string {
	return fmt.Sprintf("leftover:%d", bookID)
}
