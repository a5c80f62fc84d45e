package llm

import (
	"context"

	pkgRetry "github.com/futig/flowcraft-backend/internal/pkg/retry"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

func withRetry(ctx context.Context, rc pkgRetry.RetryConfig, provider string, fn func() (string, error)) (string, error) {
	if rc.Attempts == 0 {
		rc = *pkgRetry.DefaultRetryConfig()
	}

	return pkgRetry.DoWithData(ctx, &rc, fn, func(n uint, err error) {
		ctxzap.Warn(ctx, "LLM request failed, retrying",
			zap.String("provider", provider),
			zap.Uint("attempt", n+1),
			zap.Error(err),
		)
	})
}
