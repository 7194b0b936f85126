package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/dataport/pkg/adapter"
)

func init() {
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Adapter {
		return New(logger)
	})
}
