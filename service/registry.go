package service

import (
	"context"
	"fmt"

	"github.com/Samsany/comfyui-xdesign-nodes/utils"
	"go.uber.org/zap"
)

// Registry 节点注册表，创建后只读
type Registry struct {
	nodes   map[string]Node
	kinds   []string
	limiter *Limiter
}

// RegistryOption 注册表选项
type RegistryOption func(*Registry)

// WithLimiter 限制同时执行的节点调用
func WithLimiter(l *Limiter) RegistryOption {
	return func(r *Registry) { r.limiter = l }
}

// NewRegistry 注册全部节点
func NewRegistry(loader *Loader, pre *Preprocessor, enc *Encoder, opts ...RegistryOption) *Registry {
	r := &Registry{nodes: make(map[string]Node)}
	for _, opt := range opts {
		opt(r)
	}
	for _, n := range newNodes(loader, pre, enc) {
		kind := n.Spec().Kind
		if _, dup := r.nodes[kind]; dup {
			panic("duplicate node kind " + kind)
		}
		r.nodes[kind] = n
		r.kinds = append(r.kinds, kind)
	}
	return r
}

// ClassMappings 节点类型 -> 节点实现（副本）
func (r *Registry) ClassMappings() map[string]Node {
	out := make(map[string]Node, len(r.nodes))
	for k, n := range r.nodes {
		out[k] = n
	}
	return out
}

// DisplayNameMappings 节点类型 -> 显示名称（副本）
func (r *Registry) DisplayNameMappings() map[string]string {
	out := make(map[string]string, len(r.nodes))
	for k, n := range r.nodes {
		out[k] = n.Spec().DisplayName
	}
	return out
}

// Kinds 按注册顺序返回节点类型
func (r *Registry) Kinds() []string {
	return append([]string(nil), r.kinds...)
}

func (r *Registry) Lookup(kind string) (Node, bool) {
	n, ok := r.nodes[kind]
	return n, ok
}

// Invoke 调用节点
func (r *Registry) Invoke(ctx context.Context, kind string, params map[string]any) ([]any, error) {
	n, ok := r.nodes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, kind)
	}

	release, err := r.limiter.Acquire(ctx)
	if err != nil {
		utils.Logger.Warn("node invocation rejected", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	defer release()

	outputs, err := n.Invoke(ctx, params)
	if err != nil {
		utils.Logger.Error("node invocation failed", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	return outputs, nil
}
