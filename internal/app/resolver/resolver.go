package resolver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/telefwd/tg-forwarder/internal/app"
	"github.com/telefwd/tg-forwarder/internal/utils/errs"
	"github.com/telefwd/tg-forwarder/internal/utils/logger"
	"go.uber.org/zap"
)

const (
	channelIDPrefix = "-100"
	linkHostMarker  = "t.me/"
)

// Resolver maps channel references (canonical "-100…" ids, "@handle" forms,
// t.me links or bare handles) to numeric chat ids, memoizing results per
// original input string. Safe for concurrent use.
type Resolver struct {
	client app.TelegramClient

	mu    sync.RWMutex
	cache map[string]int64
}

func CreateResolver(client app.TelegramClient) *Resolver {
	return &Resolver{
		client: client,
		cache:  make(map[string]int64),
	}
}

// Resolve blocks until the identifier is resolved or fails.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (int64, error) {
	const funcName = "Resolver.Resolve"

	r.mu.RLock()
	if chatID, ok := r.cache[identifier]; ok {
		r.mu.RUnlock()
		logger.Debug("channel found in cache",
			zap.String("function", funcName),
			zap.String("identifier", identifier),
			zap.Int64("chat_id", chatID),
		)
		return chatID, nil
	}
	r.mu.RUnlock()

	if isCanonicalChannelID(identifier) {
		chatID, err := strconv.ParseInt(identifier, 10, 64)
		if err != nil {
			return 0, errs.NewChannelError(identifier, err)
		}
		r.store(identifier, chatID)
		return chatID, nil
	}

	handle, err := handleFromIdentifier(identifier)
	if err != nil {
		return 0, err
	}

	chat, err := r.client.SearchPublicChat(ctx, handle)
	if err != nil {
		return 0, errs.NewChannelError(identifier, fmt.Errorf("lookup handle %q: %w", handle, err))
	}

	logger.Info("channel resolved",
		zap.String("function", funcName),
		zap.String("identifier", identifier),
		zap.Int64("chat_id", chat.ID),
	)
	r.store(identifier, chat.ID)
	return chat.ID, nil
}

// ResolveAsync is the deferred-result form of Resolve.
func (r *Resolver) ResolveAsync(ctx context.Context, identifier string) <-chan app.ResolveResult {
	result := make(chan app.ResolveResult, 1)
	go func() {
		chatID, err := r.Resolve(ctx, identifier)
		result <- app.ResolveResult{ChatID: chatID, Err: err}
	}()
	return result
}

// ClearCache drops all memoized resolutions, for long-running processes that
// need to re-resolve after channel changes.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]int64)
	logger.Debug("channel cache cleared",
		zap.String("function", "Resolver.ClearCache"),
	)
}

func (r *Resolver) store(identifier string, chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[identifier] = chatID
}

// isCanonicalChannelID reports whether the string is the supergroup prefix
// followed by at least one decimal digit and nothing else.
func isCanonicalChannelID(identifier string) bool {
	if !strings.HasPrefix(identifier, channelIDPrefix) {
		return false
	}

	digits := identifier[len(channelIDPrefix):]
	if digits == "" {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func handleFromIdentifier(identifier string) (string, error) {
	if identifier == "" {
		return "", errs.NewChannelError(identifier, fmt.Errorf("empty channel identifier"))
	}

	if strings.Contains(identifier, linkHostMarker) {
		return handleFromLink(identifier)
	}
	if strings.HasPrefix(identifier, "@") {
		return identifier[1:], nil
	}
	return identifier, nil
}

// handleFromLink extracts the path segment following the channel host marker.
func handleFromLink(link string) (string, error) {
	rest := link[strings.Index(link, linkHostMarker)+len(linkHostMarker):]
	end := strings.IndexAny(rest, "/?# ")
	if end >= 0 {
		rest = rest[:end]
	}

	if rest == "" {
		return "", errs.NewChannelError(link, fmt.Errorf("cannot extract handle from link"))
	}

	logger.Debug("handle extracted from link",
		zap.String("function", "handleFromLink"),
		zap.String("link", link),
		zap.String("handle", rest),
	)
	return rest, nil
}
