package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutrisur/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	reply string
	err   error
	block bool
}

func (s stubProvider) generate(ctx context.Context, _, _ string) (string, error) {
	if s.block {
		<-ctx.Done()

		return "", ctx.Err()
	}

	return s.reply, s.err
}

func TestGenerator_Generate(t *testing.T) {
	tests := []struct {
		name      string
		provider  provider
		timeout   time.Duration
		want      string
		wantErrIs error
	}{
		{
			name:     "reply is passed through",
			provider: stubProvider{reply: `{"textReply":"hi"}`},
			want:     `{"textReply":"hi"}`,
		},
		{
			name:      "disabled provider",
			provider:  disabled{},
			wantErrIs: ErrDisabled,
		},
		{
			name:      "provider error is wrapped",
			provider:  stubProvider{err: errEmptyCandidates},
			wantErrIs: errEmptyCandidates,
		},
		{
			name:      "slow provider hits the timeout",
			provider:  stubProvider{block: true},
			timeout:   20 * time.Millisecond,
			wantErrIs: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &generatorImpl{
				name:     "stub",
				provider: tt.provider,
				timeout:  tt.timeout,
				otel:     mocks.NewOtel(),
			}

			got, err := gen.Generate(context.Background(), "system", "prompt")

			if tt.wantErrIs != nil {
				assert.True(t, errors.Is(err, tt.wantErrIs), "unexpected error: %v", err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
