package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledCacheBehaves(t *testing.T) {
	ctx := context.Background()
	views := NewOrderViews(nil)

	// Without redis every operation is a safe no-op and every read a miss.
	views.Set(ctx, []byte(`[]`), "list", "user-1", "")
	views.Invalidate(ctx)

	data, ok := views.Get(ctx, "list", "user-1", "")
	assert.False(t, ok)
	assert.Nil(t, data)
}
