package service

import (
	"context"
	"fmt"
	"time"
)

// Limiter 节点调用的并发队列
type Limiter struct {
	semaphore    chan struct{}
	queueTimeout time.Duration
}

// NewLimiter 创建并发限制，maxConcurrent <= 0 时返回 nil（不限制）
func NewLimiter(maxConcurrent int, queueTimeout time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		return nil
	}
	return &Limiter{
		semaphore:    make(chan struct{}, maxConcurrent),
		queueTimeout: queueTimeout,
	}
}

// Acquire 等待执行槽位，排队超时返回 ErrQueueFull
func (l *Limiter) Acquire(ctx context.Context) (func(), error) {
	if l == nil {
		return func() {}, nil
	}

	if l.queueTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.queueTimeout)
		defer cancel()
	}

	select {
	case l.semaphore <- struct{}{}:
		return func() { <-l.semaphore }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrQueueFull, ctx.Err())
	}
}
