package matching

import (
	"log/slog"

	"tracklink/internal/logging"
)

// Resolver selects recordings and releases and logs every decision.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver returns a Resolver. A nil logger discards output.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logging.NewComponentLogger(logger, "matching")}
}
