package validate

import (
	"github.com/telefwd/tg-forwarder/internal/app/models"
	"github.com/telefwd/tg-forwarder/internal/utils/logger"
	"go.uber.org/zap"
)

// NormalizeFilters parses the configured message-type filter tokens. Unknown
// tokens are logged and dropped; an empty result defaults to the wildcard.
func NormalizeFilters(tokens []string) []models.FilterType {
	filters := make([]models.FilterType, 0, len(tokens))

	for _, token := range tokens {
		filter, err := models.ParseFilter(token)
		if err != nil {
			logger.Warn("dropping unknown message type filter",
				zap.String("function", "NormalizeFilters"),
				zap.String("token", token),
			)
			continue
		}
		filters = append(filters, filter)
		logger.Info("message type filter enabled",
			zap.String("filter", string(filter)),
		)
	}

	if len(filters) == 0 {
		logger.Info("no message type filters configured, forwarding all types")
		filters = append(filters, models.FilterAll)
	}

	return filters
}

// MatchesAny reports whether any of the filters accepts the given kind.
func MatchesAny(filters []models.FilterType, kind models.MediaKind) bool {
	for _, f := range filters {
		if f.Matches(kind) {
			return true
		}
	}
	return false
}
