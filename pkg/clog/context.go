package clog

import (
	"context"
	"maps"
	"sync"
)

// Attribute keys shared by the request log line and the text handler.
const (
	ErrorAttributeKey      = "error.message"
	StackAttributeKey      = "error.stack"
	ViolationsAttributeKey = "error.violations"
	ProviderAttributeKey   = "provider"
	ModelAttributeKey      = "model"
)

// requestAttrs collects attributes over the life of one request. Handlers
// add to it and the chi middleware emits them in a single record.
type requestAttrs struct {
	mu    sync.Mutex
	attrs map[string]any
}

type requestAttrsKey struct{}

func ContextWithSlog(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestAttrsKey{}, &requestAttrs{attrs: make(map[string]any)})
}

func fromContext(ctx context.Context) *requestAttrs {
	ra, _ := ctx.Value(requestAttrsKey{}).(*requestAttrs)
	return ra
}

// AddAttribute is a no-op when ctx was not prepared by ContextWithSlog.
func AddAttribute(ctx context.Context, key string, value any) {
	AddAttributes(ctx, map[string]any{key: value})
}

// AddAttributes merges attributes into the request. Nested maps are merged
// key by key and rendered as slog groups.
func AddAttributes(ctx context.Context, attributes map[string]any) {
	ra := fromContext(ctx)
	if ra == nil {
		return
	}
	ra.mu.Lock()
	defer ra.mu.Unlock()
	mergeMaps(ra.attrs, attributes)
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		vMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		if dstMap, ok := dst[k].(map[string]any); ok {
			mergeMaps(dstMap, vMap)
			continue
		}
		dst[k] = maps.Clone(vMap)
	}
}

func AddError(ctx context.Context, err error) {
	AddAttribute(ctx, ErrorAttributeKey, err)
}

func AddStack(ctx context.Context, stack string) {
	AddAttribute(ctx, StackAttributeKey, stack)
}

// AddViolations records the fields a request was rejected for, as
// "field: rule" entries.
func AddViolations(ctx context.Context, violations []string) {
	if len(violations) == 0 {
		return
	}
	AddAttribute(ctx, ViolationsAttributeKey, violations)
}

// AddProvider tags the request with the model provider that served it.
func AddProvider(ctx context.Context, provider, model string) {
	AddAttributes(ctx, map[string]any{
		ProviderAttributeKey: provider,
		ModelAttributeKey:    model,
	})
}

// GetAttributes returns a snapshot of the request attributes, or nil when
// ctx carries none.
func GetAttributes(ctx context.Context) map[string]any {
	ra := fromContext(ctx)
	if ra == nil {
		return nil
	}
	ra.mu.Lock()
	defer ra.mu.Unlock()
	return maps.Clone(ra.attrs)
}
