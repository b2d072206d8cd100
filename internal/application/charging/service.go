package charging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/charging/backend/internal/domain/charging"
	"github.com/charging/backend/internal/infrastructure/telemetry"
)

// StatementService provides application-level charging operations: it loads
// a usage ledger and runs every pricing policy over it.
type StatementService struct {
	logger *zap.Logger
}

// NewStatementService creates a new StatementService
func NewStatementService(logger *zap.Logger) *StatementService {
	return &StatementService{logger: logger}
}

// GenerateStatements parses the raw ledger document and produces one
// statement per pricing policy, in report order. Any ledger defect aborts
// the whole run.
func (s *StatementService) GenerateStatements(ctx context.Context, data []byte) ([]*charging.Statement, error) {
	started := time.Now()

	ctx, span := telemetry.StartServiceSpan(ctx, "statement", "generate",
		telemetry.WithAttribute("ledger_bytes", len(data)))
	defer span.End()

	ledger, err := charging.ParseLedger(data)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("ledger rejected",
			zap.Int("bytes", len(data)),
			zap.Error(err))
		return nil, err
	}
	telemetry.SetAttribute(span, "events", ledger.Len())

	policies := charging.AllPolicies()
	statements := make([]*charging.Statement, 0, len(policies))
	for _, policy := range policies {
		statement, err := charging.RunStatement(ledger, policy)
		if err != nil {
			telemetry.RecordError(span, err)
			s.logger.Warn("statement run failed",
				zap.String("policy", policy.Name()),
				zap.Error(err))
			return nil, err
		}
		statements = append(statements, statement)
		telemetry.AddEvent(span, "policy_applied", "policy", policy.Name())
	}

	s.logger.Info("statements generated",
		zap.Int("events", ledger.Len()),
		zap.Int("policies", len(statements)),
		zap.Duration("elapsed", time.Since(started)))
	return statements, nil
}
