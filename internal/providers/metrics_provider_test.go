package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sid/internal/structures"
)

func TestNewMetricsProvider_DisabledReturnsNoop(t *testing.T) {
	conf := &structures.Config{}
	m := NewMetricsProvider(conf)

	_, ok := m.(*noopMetrics)
	assert.True(t, ok)
}

func TestHttpStatusBucket(t *testing.T) {
	cases := map[int]string{
		100: "1xx",
		200: "2xx",
		204: "2xx",
		301: "3xx",
		404: "4xx",
		409: "4xx",
		500: "5xx",
		503: "5xx",
	}
	for code, want := range cases {
		assert.Equal(t, want, httpStatusBucket(code), "status %d", code)
	}
}
