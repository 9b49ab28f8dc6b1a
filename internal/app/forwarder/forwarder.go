package forwarder

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/telefwd/tg-forwarder/internal/app"
	"github.com/telefwd/tg-forwarder/internal/app/media"
	"github.com/telefwd/tg-forwarder/internal/app/models"
	"github.com/telefwd/tg-forwarder/internal/app/state"
	"github.com/telefwd/tg-forwarder/internal/config"
	"github.com/telefwd/tg-forwarder/internal/utils/errs"
	"github.com/telefwd/tg-forwarder/internal/utils/logger"
	"github.com/telefwd/tg-forwarder/internal/utils/validate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// mediaGroupLookback bounds how far back the sibling fetch looks when
// collecting a media group. Albums are capped well below this.
const mediaGroupLookback = 50

// Forwarder polls the source channel for unseen messages and re-materializes
// them in the target channel through the media pipeline.
type Forwarder struct {
	client   app.TelegramClient
	resolver app.ChannelResolver
	pipeline app.MediaPipeline
	store    *state.Store

	cfg     config.ForwarderConfig
	filters []models.FilterType

	mu           sync.Mutex
	running      bool
	sourceChatID int64
	targetChatID int64
	stopCh       chan struct{}
	done         chan struct{}
}

func CreateForwarder(
	client app.TelegramClient,
	resolver app.ChannelResolver,
	pipeline app.MediaPipeline,
	store *state.Store,
) *Forwarder {
	return &Forwarder{
		client:   client,
		resolver: resolver,
		pipeline: pipeline,
		store:    store,
	}
}

// Init validates and normalizes the forwarder configuration.
func (f *Forwarder) Init(cfg config.ForwarderConfig) {
	const funcName = "Forwarder.Init"

	f.cfg = cfg
	f.filters = validate.NormalizeFilters(cfg.MessageFilters)

	logger.Info("forwarder initialized",
		zap.String("function", funcName),
		zap.String("mode", string(cfg.Mode)),
		zap.Duration("poll_interval", cfg.PollInterval()),
		zap.Int("page_size", cfg.PageSize),
		zap.Int("max_concurrent_downloads", cfg.MaxConcurrentDownloads),
		zap.Int("max_concurrent_uploads", cfg.MaxConcurrentUploads),
		zap.Int("retry_count", cfg.RetryCount),
	)
}

// Start resolves both channel references, verifies the acting identity may
// post into the target, establishes the initial high-water mark and launches
// the poll loop. Resolution or permission failure aborts startup.
func (f *Forwarder) Start(ctx context.Context, source, target string) error {
	const funcName = "Forwarder.Start"

	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return errs.ErrForwarderRunning
	}
	f.mu.Unlock()

	logger.Info("starting forwarder",
		zap.String("function", funcName),
		zap.String("source", source),
		zap.String("target", target),
	)

	var sourceID, targetID int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := f.resolver.Resolve(gctx, source)
		if err != nil {
			return fmt.Errorf("resolve source channel: %w", err)
		}
		sourceID = id
		return nil
	})
	g.Go(func() error {
		id, err := f.resolver.Resolve(gctx, target)
		if err != nil {
			return fmt.Errorf("resolve target channel: %w", err)
		}
		targetID = id
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("channels resolved",
		zap.String("function", funcName),
		zap.Int64("source_chat_id", sourceID),
		zap.Int64("target_chat_id", targetID),
	)

	if err := f.checkSendPermission(ctx, targetID); err != nil {
		return err
	}

	// History prior to startup is never forwarded.
	latest := f.latestMessageID(ctx, sourceID)
	f.store.AdvanceMark(latest)

	f.mu.Lock()
	f.running = true
	f.sourceChatID = sourceID
	f.targetChatID = targetID
	f.stopCh = make(chan struct{})
	f.done = make(chan struct{})
	f.mu.Unlock()

	f.pipeline.Start()
	go f.pollLoop(ctx)

	logger.Info("forwarder started",
		zap.String("function", funcName),
		zap.Int64("initial_mark", latest),
	)
	return nil
}

// Stop signals the poll loop to exit, joins it and stops the pipeline. Idempotent.
func (f *Forwarder) Stop() {
	const funcName = "Forwarder.Stop"

	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}
	f.running = false
	close(f.stopCh)
	f.mu.Unlock()

	<-f.done
	f.pipeline.Stop()

	logger.Info("forwarder stopped",
		zap.String("function", funcName),
		zap.Int("forwarded_total", f.store.ForwardedCount()),
		zap.Int("failed_total", f.store.FailedCount()),
	)
}

// IsRunning reports whether the poll loop is still alive.
func (f *Forwarder) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running {
		return false
	}
	select {
	case <-f.done:
		return false
	default:
		return true
	}
}

// Stats implements app.StatusProvider.
func (f *Forwarder) Stats() models.ForwarderStats {
	running := f.IsRunning()

	f.mu.Lock()
	sourceID, targetID := f.sourceChatID, f.targetChatID
	f.mu.Unlock()

	processedMessages, processedGroups := f.store.Sizes()
	return models.ForwarderStats{
		Running:           running,
		SourceChatID:      sourceID,
		TargetChatID:      targetID,
		LastMessageID:     f.store.Mark(),
		ForwardedCount:    f.store.ForwardedCount(),
		FailedCount:       f.store.FailedCount(),
		ActiveDownloads:   f.pipeline.ActiveDownloads(),
		ActiveUploads:     f.pipeline.ActiveUploads(),
		ProcessedMessages: processedMessages,
		ProcessedGroups:   processedGroups,
	}
}

func (f *Forwarder) pollLoop(ctx context.Context) {
	const funcName = "Forwarder.pollLoop"

	defer close(f.done)
	logger.Debug("poll loop started", zap.String("function", funcName))

	for {
		select {
		case <-f.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		seen, err := f.pollOnce(ctx)
		if err != nil {
			logger.Error("poll iteration failed",
				zap.String("function", funcName),
				zap.Error(err),
			)
			// Simple backoff: wait twice the interval before retrying.
			if !f.sleep(ctx, 2*f.cfg.PollInterval()) {
				return
			}
			continue
		}

		if f.cfg.Mode == config.ModeOneTime && seen > 0 {
			logger.Info("one-time mode: page processed, poll loop finished",
				zap.String("function", funcName),
				zap.Int("messages", seen),
			)
			return
		}

		if !f.sleep(ctx, f.cfg.PollInterval()) {
			return
		}
	}
}

func (f *Forwarder) pollOnce(ctx context.Context) (int, error) {
	const funcName = "Forwarder.pollOnce"

	msgs, err := f.getNewMessages(ctx)
	if err != nil {
		return 0, err
	}
	if len(msgs) == 0 {
		logger.Debug("no new messages", zap.String("function", funcName))
		return 0, nil
	}

	logger.Info("fetched new messages",
		zap.String("function", funcName),
		zap.Int("count", len(msgs)),
	)

	for _, msg := range msgs {
		select {
		case <-f.stopCh:
			return len(msgs), nil
		case <-ctx.Done():
			return len(msgs), nil
		default:
		}
		f.handleMessage(ctx, msg)
	}
	return len(msgs), nil
}

func (f *Forwarder) handleMessage(ctx context.Context, msg *models.Message) {
	const funcName = "Forwarder.handleMessage"

	if f.store.IsMessageProcessed(msg.ID) {
		f.store.AdvanceMark(msg.ID)
		return
	}

	if !validate.MatchesAny(f.filters, msg.Kind) {
		logger.Debug("skipping message: type excluded by filters",
			zap.String("function", funcName),
			zap.Int64("message_id", msg.ID),
			zap.String("kind", string(msg.Kind)),
		)
		f.store.MarkMessageProcessed(msg.ID)
		f.store.AdvanceMark(msg.ID)
		return
	}

	key := msg.MediaGroupKey
	switch {
	case key != "" && !f.store.IsGroupProcessed(key):
		f.forwardGroup(ctx, key, msg)
	case key != "":
		// Seen, not new work: the group was already forwarded.
		logger.Debug("skipping message: media group already processed",
			zap.String("function", funcName),
			zap.Int64("message_id", msg.ID),
			zap.String("group_key", key),
		)
		f.store.MarkMessageProcessed(msg.ID)
		f.store.AdvanceMark(msg.ID)
	default:
		f.forwardSingle(ctx, msg)
	}
}

func (f *Forwarder) forwardGroup(ctx context.Context, key string, trigger *models.Message) {
	const funcName = "Forwarder.forwardGroup"

	siblings, err := f.getMediaGroupMessages(ctx, key)
	if err != nil {
		logger.Error("failed to fetch media group messages",
			zap.String("function", funcName),
			zap.String("group_key", key),
			zap.Error(err),
		)
		// The trigger is skipped; later siblings re-trigger the group.
		f.store.AddFailed(1)
		f.store.MarkMessageProcessed(trigger.ID)
		f.store.AdvanceMark(trigger.ID)
		return
	}
	if len(siblings) == 0 {
		logger.Warn("media group lookback found no siblings, forwarding as a single message",
			zap.String("function", funcName),
			zap.String("group_key", key),
			zap.Int64("message_id", trigger.ID),
		)
		f.forwardSingle(ctx, trigger)
		return
	}

	logger.Info("forwarding media group",
		zap.String("function", funcName),
		zap.String("group_key", key),
		zap.Int("members", len(siblings)),
	)

	ok := f.forwardMediaGroup(ctx, siblings)

	maxID := trigger.ID
	for _, m := range siblings {
		if m.ID > maxID {
			maxID = m.ID
		}
		f.store.MarkMessageProcessed(m.ID)
	}

	if ok {
		f.store.AddForwarded(len(siblings))
		f.store.MarkGroupProcessed(key)
	} else {
		f.store.AddFailed(len(siblings))
	}

	// A partially failed group is not retried whole: the mark advances to
	// the maximum member id either way.
	f.store.AdvanceMark(maxID)
}

func (f *Forwarder) forwardMediaGroup(ctx context.Context, msgs []*models.Message) bool {
	const funcName = "Forwarder.forwardMediaGroup"

	group := <-f.pipeline.SubmitDownloadGroup(ctx, msgs)
	if group == nil {
		logger.Error("failed to download media group",
			zap.String("function", funcName),
		)
		return false
	}
	if group.FailedCount() > 0 {
		logger.Error("media group has failed downloads",
			zap.String("function", funcName),
			zap.String("group_key", group.Key()),
			zap.Int("failed", group.FailedCount()),
		)
		return false
	}

	result := <-f.pipeline.SubmitUploadGroup(ctx, f.targetChatID, group)
	if result.Err != nil {
		logger.Error("failed to upload media group",
			zap.String("function", funcName),
			zap.String("group_key", group.Key()),
			zap.Error(result.Err),
		)
		return false
	}
	if len(result.Messages) == 0 {
		logger.Error("media group upload produced no messages",
			zap.String("function", funcName),
			zap.String("group_key", group.Key()),
		)
		return false
	}

	logger.Info("media group forwarded",
		zap.String("function", funcName),
		zap.String("group_key", group.Key()),
		zap.Int("messages", len(result.Messages)),
	)
	return true
}

// forwardSingle forwards one non-grouped message, retrying a failed forward
// up to retry_count times and then skipping it. The high-water mark always
// advances once the message has been decided on, so a permanently failing
// message cannot stall the loop.
func (f *Forwarder) forwardSingle(ctx context.Context, msg *models.Message) {
	const funcName = "Forwarder.forwardSingle"

	ok := false
	if msg.Kind == models.KindText || media.SendableKind(msg.Kind) {
		attempts := f.cfg.RetryCount + 1
		for attempt := 1; attempt <= attempts; attempt++ {
			if f.forwardMessage(ctx, msg) {
				ok = true
				break
			}
			if attempt < attempts {
				logger.Warn("retrying message forward",
					zap.String("function", funcName),
					zap.Int64("message_id", msg.ID),
					zap.Int("attempt", attempt),
					zap.Int("max_attempts", attempts),
				)
				if !f.sleep(ctx, f.cfg.RetryDelay()) {
					break
				}
			}
		}
	} else {
		logger.Warn("unsupported message kind, skipping",
			zap.String("function", funcName),
			zap.Int64("message_id", msg.ID),
			zap.String("kind", string(msg.Kind)),
		)
	}

	if ok {
		f.store.AddForwarded(1)
		logger.Info("message forwarded",
			zap.String("function", funcName),
			zap.Int64("message_id", msg.ID),
		)
	} else {
		f.store.AddFailed(1)
		logger.Error("message forward failed, skipping",
			zap.String("function", funcName),
			zap.Int64("message_id", msg.ID),
		)
	}

	f.store.MarkMessageProcessed(msg.ID)
	f.store.AdvanceMark(msg.ID)
}

func (f *Forwarder) forwardMessage(ctx context.Context, msg *models.Message) bool {
	const funcName = "Forwarder.forwardMessage"

	if msg.Kind == models.KindText {
		if _, err := f.client.SendText(ctx, f.targetChatID, msg.Text); err != nil {
			logger.Error("failed to send text message",
				zap.String("function", funcName),
				zap.Int64("message_id", msg.ID),
				zap.Error(err),
			)
			return false
		}
		return true
	}

	task := <-f.pipeline.SubmitDownload(ctx, msg)
	if task.State() != media.StateCompleted {
		logger.Error("media download did not complete",
			zap.String("function", funcName),
			zap.String("task_id", task.ID()),
			zap.String("state", string(task.State())),
			zap.String("error", task.Error()),
		)
		return false
	}

	result := <-f.pipeline.SubmitUpload(ctx, f.targetChatID, task)
	if result.Err != nil {
		logger.Error("media upload failed",
			zap.String("function", funcName),
			zap.String("task_id", task.ID()),
			zap.Error(result.Err),
		)
		return false
	}

	logger.Info("media message forwarded",
		zap.String("function", funcName),
		zap.Int64("source_message_id", msg.ID),
		zap.Int64("target_message_id", result.Message.ID),
	)
	return true
}

// getNewMessages fetches messages newer than the high-water mark, ascending by id.
func (f *Forwarder) getNewMessages(ctx context.Context) ([]*models.Message, error) {
	history, err := f.client.GetChatHistory(ctx, f.sourceChatID, 0, f.cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("get chat history: %w", err)
	}

	mark := f.store.Mark()
	fresh := make([]*models.Message, 0, len(history))
	for _, msg := range history {
		if msg.ID > mark {
			fresh = append(fresh, msg)
		}
	}

	sort.Slice(fresh, func(i, j int) bool {
		return fresh[i].ID < fresh[j].ID
	})
	return fresh, nil
}

func (f *Forwarder) getMediaGroupMessages(ctx context.Context, key string) ([]*models.Message, error) {
	history, err := f.client.GetChatHistory(ctx, f.sourceChatID, 0, mediaGroupLookback)
	if err != nil {
		return nil, fmt.Errorf("get media group history: %w", err)
	}

	siblings := make([]*models.Message, 0, len(history))
	for _, msg := range history {
		if msg.MediaGroupKey == key {
			siblings = append(siblings, msg)
		}
	}

	sort.Slice(siblings, func(i, j int) bool {
		return siblings[i].ID < siblings[j].ID
	})
	return siblings, nil
}

// checkSendPermission verifies the acting identity may post into the target:
// administrators need the explicit post permission, ordinary members are
// allowed only outside broadcast channels.
func (f *Forwarder) checkSendPermission(ctx context.Context, chatID int64) error {
	const funcName = "Forwarder.checkSendPermission"

	identifier := strconv.FormatInt(chatID, 10)

	myID, err := f.client.GetMyID(ctx)
	if err != nil {
		return errs.NewChannelError(identifier, fmt.Errorf("get own identity: %w", err))
	}

	chat, err := f.client.GetChat(ctx, chatID)
	if err != nil {
		return errs.NewChannelError(identifier, fmt.Errorf("get chat: %w", err))
	}

	member, err := f.client.GetChatMember(ctx, chatID, myID)
	if err != nil {
		return errs.NewChannelError(identifier, fmt.Errorf("get chat member: %w", err))
	}

	switch member.Status {
	case models.MemberStatusAdministrator:
		if member.CanPostMessages {
			return nil
		}
	case models.MemberStatusMember:
		if !chat.IsChannel {
			return nil
		}
	}

	logger.Error("no permission to post into the target chat",
		zap.String("function", funcName),
		zap.Int64("chat_id", chatID),
		zap.String("member_status", string(member.Status)),
	)
	return errs.NewChannelError(identifier, errs.ErrPermissionDenied)
}

func (f *Forwarder) latestMessageID(ctx context.Context, chatID int64) int64 {
	const funcName = "Forwarder.latestMessageID"

	history, err := f.client.GetChatHistory(ctx, chatID, 0, 1)
	if err != nil {
		logger.Warn("cannot get latest message id, forwarding starts from the next message",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return 0
	}
	if len(history) == 0 {
		return 0
	}
	return history[0].ID
}

func (f *Forwarder) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-f.stopCh:
		return false
	case <-ctx.Done():
		return false
	}
}
