package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that write one record per event to logger.
// Failed visits are logged at warn level, everything else at info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnVisitStart: func(ctx context.Context, e *domain.VisitEvent) {
			logger.InfoContext(ctx, "visit_start",
				"stack", e.Stack,
				"visit_id", e.VisitID,
				"location", e.Location,
				"action", e.Action,
				"cold_boot", e.ColdBoot,
			)
		},
		OnVisitFinish: func(ctx context.Context, e *domain.VisitEvent) {
			attrs := []any{
				"stack", e.Stack,
				"visit_id", e.VisitID,
				"location", e.Location,
				"state", e.State,
				"duration", e.Duration,
			}
			if e.Err != nil {
				logger.WarnContext(ctx, "visit_finish", append(attrs, "err", e.Err)...)
				return
			}
			logger.InfoContext(ctx, "visit_finish", attrs...)
		},
		OnRouteDecision: func(ctx context.Context, e *domain.RouteEvent) {
			logger.InfoContext(ctx, "route_decision", "location", e.Location, "handler", e.Handler, "decision", e.Decision)
		},
		OnProposal: func(ctx context.Context, e *domain.ProposalEvent) {
			logger.InfoContext(ctx, "proposal",
				"location", e.Location,
				"context", e.Context,
				"presentation", e.Presentation,
				"accepted", e.Accepted,
			)
		},
	}
}
