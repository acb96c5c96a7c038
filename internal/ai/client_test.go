package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("", "", "gpt-4o-mini", zap.NewNop())
	assert.Error(t, err, "missing api key")

	_, err = NewClient("", "sk-test", "", zap.NewNop())
	assert.Error(t, err, "missing model")

	client, err := NewClient("https://llm.internal/v1", "sk-test", "gpt-4o-mini", zap.NewNop())
	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestIsRetryable(t *testing.T) {
	client := &Client{logger: zap.NewNop()}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"authentication failure", errors.New("authentication failed"), false},
		{"unauthorized", errors.New("unauthorized request"), false},
		{"http 401", errors.New("status 401"), false},
		{"invalid request", errors.New("invalid request body"), false},
		{"http 400", errors.New("status 400: bad request"), false},
		{"rate limit", errors.New("status 429: rate limit exceeded"), true},
		{"timeout", errors.New("context deadline exceeded"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.isRetryable(tt.err))
		})
	}
}
