package evaluation

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/gradewise/eval-backend/internal/pkg/normalize"
)

// logReport surfaces normalizer degradation. It is a warning, never an
// error: the response stays schema-valid regardless.
func logReport(ctx context.Context, operation string, report *normalize.Report) {
	if !report.Degraded() {
		return
	}

	ctxzap.Warn(ctx, "model reply required normalization",
		zap.String("operation", operation),
		zap.Bool("strict_parse", report.StrictParse),
		zap.Int("fallbacks", report.Fallbacks),
		zap.String("notes", report.Summary()),
	)
}
