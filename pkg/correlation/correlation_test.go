package correlation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithAndFrom(t *testing.T) {
	ctx := With(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", From(ctx))
}

func TestFrom_EmptyWhenAbsent(t *testing.T) {
	assert.Empty(t, From(context.Background()))
}
