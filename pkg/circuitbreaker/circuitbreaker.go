// Package circuitbreaker 实现一个轻量的熔断器（Circuit Breaker Pattern）
//
// 在bookdepot中用于保护Redis库存缓存的读路径：
// 缓存故障时快速降级到数据库，而不是让每个请求都等待超时。
//
// 三种状态：
// 1. CLOSED（关闭）：请求正常通过，统计连续失败次数
// 2. OPEN（打开）：连续失败达到阈值后快速失败，给下游恢复时间
// 3. HALF_OPEN（半开）：冷却期过后放行一个探测请求，成功则关闭，失败则重新打开
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpen 熔断器打开时的快速失败错误
var ErrOpen = errors.New("circuit breaker is open")

// Breaker 熔断器
// 策略固定为“连续失败计数 + 冷却时间”，够用且容易推理：
// - 连续失败达到FailureThreshold → OPEN
// - OPEN持续Cooldown后 → HALF_OPEN，放行一个探测请求
// - 探测成功 → CLOSED；探测失败 → 重新OPEN并重置冷却计时
type Breaker struct {
	name             string
	failureThreshold int
	cooldown         time.Duration

	mu       sync.Mutex
	state    State
	failures int       // 连续失败次数（CLOSED状态下统计）
	openedAt time.Time // 进入OPEN状态的时间
	probing  bool      // HALF_OPEN状态下是否已有探测请求在途
}

// New 创建熔断器
// failureThreshold建议3-10，cooldown建议5s-60s
func New(name string, failureThreshold int, cooldown time.Duration) *Breaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	return &Breaker{
		name:             name,
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		state:            StateClosed,
	}
}

// Do 通过熔断器执行fn
// 熔断器打开时不调用fn，直接返回ErrOpen
func (b *Breaker) Do(fn func() error) error {
	if err := b.before(); err != nil {
		return err
	}
	err := fn()
	b.after(err)
	return err
}

// State 返回当前状态（会先处理OPEN→HALF_OPEN的超时转换）
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeHalfOpen()
	return b.state
}

// before 请求准入判断
func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.maybeHalfOpen()

	switch b.state {
	case StateOpen:
		return ErrOpen
	case StateHalfOpen:
		// 半开状态只放行一个探测请求，其余快速失败
		if b.probing {
			return ErrOpen
		}
		b.probing = true
		return nil
	default:
		return nil
	}
}

// after 根据执行结果更新状态
func (b *Breaker) after(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.probing = false
		if err != nil {
			// 探测失败，重新熔断
			b.trip()
			return
		}
		// 探测成功，恢复正常
		b.state = StateClosed
		b.failures = 0
		return
	}

	if err != nil {
		b.failures++
		if b.failures >= b.failureThreshold {
			b.trip()
		}
		return
	}
	b.failures = 0
}

// trip 进入OPEN状态
func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = time.Now()
	b.failures = 0
}

// maybeHalfOpen OPEN状态冷却期结束后转为HALF_OPEN
// 调用方必须持有b.mu
func (b *Breaker) maybeHalfOpen() {
	if b.state == StateOpen && time.Since(b.openedAt) >= b.cooldown {
		b.state = StateHalfOpen
		b.probing = false
	}
}
