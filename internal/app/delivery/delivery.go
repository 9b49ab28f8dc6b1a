package delivery

import (
	"net/http"
	"time"

	"github.com/telefwd/tg-forwarder/internal/app"
	"github.com/telefwd/tg-forwarder/internal/utils/logger"
	"github.com/telefwd/tg-forwarder/internal/utils/responses"
	"go.uber.org/zap"
)

// StatusDelivery exposes the read-only HTTP surface of the forwarder: a
// liveness endpoint, a statistics snapshot and a channel-resolution probe.
type StatusDelivery struct {
	provider  app.StatusProvider
	resolver  app.ChannelResolver
	startedAt time.Time
}

func CreateStatusDelivery(provider app.StatusProvider, resolver app.ChannelResolver) *StatusDelivery {
	return &StatusDelivery{
		provider:  provider,
		resolver:  resolver,
		startedAt: time.Now(),
	}
}

func (d *StatusDelivery) Health(w http.ResponseWriter, r *http.Request) {
	responses.DoJSONResponse(w, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(d.startedAt).Seconds()),
	}, http.StatusOK)
}

func (d *StatusDelivery) Status(w http.ResponseWriter, r *http.Request) {
	const funcName = "StatusDelivery.Status"
	logger.Debug("serving forwarder status", zap.String("function", funcName))

	responses.DoJSONResponse(w, d.provider.Stats(), http.StatusOK)
}

// ResolveChannel resolves a channel reference to its chat id, going through
// the same cache the coordinator uses. Diagnostic, read-only.
func (d *StatusDelivery) ResolveChannel(w http.ResponseWriter, r *http.Request) {
	const funcName = "StatusDelivery.ResolveChannel"

	identifier := r.URL.Query().Get("identifier")
	if identifier == "" {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "identifier query parameter is required")
		return
	}

	chatID, err := d.resolver.Resolve(r.Context(), identifier)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	logger.Debug("channel resolved via status api",
		zap.String("function", funcName),
		zap.String("identifier", identifier),
		zap.Int64("chat_id", chatID),
	)
	responses.DoJSONResponse(w, map[string]any{
		"identifier": identifier,
		"chat_id":    chatID,
	}, http.StatusOK)
}
