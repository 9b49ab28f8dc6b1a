package media

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/telefwd/tg-forwarder/internal/app/models"
	"github.com/telefwd/tg-forwarder/internal/utils/errs"
	"github.com/telefwd/tg-forwarder/internal/utils/logger"
	"go.uber.org/zap"
)

const queueCapacity = 128

// Client is the part of the chat-protocol client the pipeline needs.
type Client interface {
	DownloadFile(ctx context.Context, fileID int32) (*models.File, error)
	SendMedia(ctx context.Context, chatID int64, item models.OutboundMedia) (*models.Message, error)
	SendMediaAlbum(ctx context.Context, chatID int64, items []models.OutboundMedia) ([]*models.Message, error)
}

// UploadResult is the resolution of a single upload handle. Upload failures
// are carried as an error because the sent message is the only value.
type UploadResult struct {
	Message *models.Message
	Err     error
}

// GroupUploadResult is the resolution of a whole-group upload handle.
type GroupUploadResult struct {
	Messages []*models.Message
	Err      error
}

type downloadJob struct {
	ctx    context.Context
	task   *Task
	result chan *Task
}

type uploadJob struct {
	ctx    context.Context
	chatID int64
	task   *Task
	result chan UploadResult
}

// Pipeline runs two fixed-size worker pools consuming download and upload
// queues. Handles returned by Submit* resolve exactly once.
type Pipeline struct {
	client Client

	downloadWorkers int
	uploadWorkers   int

	downloadQueue chan *downloadJob
	uploadQueue   chan *uploadJob

	activeDownloads atomic.Int32
	activeUploads   atomic.Int32

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func CreatePipeline(client Client, maxDownloads, maxUploads int) *Pipeline {
	const funcName = "CreatePipeline"

	if maxDownloads <= 0 {
		logger.Warn("max concurrent downloads must be positive, coercing to 1",
			zap.String("function", funcName),
			zap.Int("requested", maxDownloads),
		)
		maxDownloads = 1
	}
	if maxUploads <= 0 {
		logger.Warn("max concurrent uploads must be positive, coercing to 1",
			zap.String("function", funcName),
			zap.Int("requested", maxUploads),
		)
		maxUploads = 1
	}

	return &Pipeline{
		client:          client,
		downloadWorkers: maxDownloads,
		uploadWorkers:   maxUploads,
	}
}

// Start launches the worker pools. Calling Start on a running pipeline is a no-op.
func (p *Pipeline) Start() {
	const funcName = "Pipeline.Start"

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		logger.Warn("media pipeline is already running",
			zap.String("function", funcName),
		)
		return
	}

	p.downloadQueue = make(chan *downloadJob, queueCapacity)
	p.uploadQueue = make(chan *uploadJob, queueCapacity)
	p.stopCh = make(chan struct{})
	p.running = true

	for i := 0; i < p.downloadWorkers; i++ {
		p.wg.Add(1)
		go p.downloadWorker()
	}
	for i := 0; i < p.uploadWorkers; i++ {
		p.wg.Add(1)
		go p.uploadWorker()
	}

	logger.Info("media pipeline started",
		zap.String("function", funcName),
		zap.Int("download_workers", p.downloadWorkers),
		zap.Int("upload_workers", p.uploadWorkers),
	)
}

// Stop joins every worker, then resolves all still-queued handles so no
// awaiter can block across shutdown. Idempotent.
func (p *Pipeline) Stop() {
	const funcName = "Pipeline.Stop"

	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	p.wg.Wait()

	cancelled := 0
	for drained := false; !drained; {
		select {
		case job := <-p.downloadQueue:
			job.task.SetState(StateCancelled)
			job.result <- job.task
			cancelled++
		case job := <-p.uploadQueue:
			job.task.SetState(StateCancelled)
			job.result <- UploadResult{Err: errs.ErrPipelineStopped}
			cancelled++
		default:
			drained = true
		}
	}

	logger.Info("media pipeline stopped",
		zap.String("function", funcName),
		zap.Int("cancelled_tasks", cancelled),
	)
}

// SubmitDownload enqueues a download for the message and returns a handle
// that resolves with the task once a worker finishes it. Transfer failures
// are delivered as a Failed task, not lost. The enqueue happens under the
// running guard, so a job admitted here is always seen by Stop's drain.
func (p *Pipeline) SubmitDownload(ctx context.Context, msg *models.Message) <-chan *Task {
	result := make(chan *Task, 1)
	task := CreateTask(DirectionDownload, msg)

	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		task.SetState(StateCancelled)
		result <- task
		return result
	}
	p.downloadQueue <- &downloadJob{ctx: ctx, task: task, result: result}
	p.mu.Unlock()

	return result
}

// SubmitUpload enqueues an upload of a downloaded task to the target chat.
func (p *Pipeline) SubmitUpload(ctx context.Context, chatID int64, task *Task) <-chan UploadResult {
	result := make(chan UploadResult, 1)

	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		task.SetState(StateCancelled)
		result <- UploadResult{Err: errs.ErrPipelineStopped}
		return result
	}
	p.uploadQueue <- &uploadJob{ctx: ctx, chatID: chatID, task: task, result: result}
	p.mu.Unlock()

	return result
}

// SubmitDownloadGroup submits one download per message and resolves with the
// folded group once every member finished. The group key is taken from the
// first message; without one the handle resolves to nil immediately. The
// fold runs on its own goroutine so it can never starve the worker pool.
func (p *Pipeline) SubmitDownloadGroup(ctx context.Context, msgs []*models.Message) <-chan *GroupTask {
	const funcName = "Pipeline.SubmitDownloadGroup"

	result := make(chan *GroupTask, 1)

	if len(msgs) == 0 || msgs[0].MediaGroupKey == "" {
		logger.Warn("no media group key on submitted messages",
			zap.String("function", funcName),
		)
		result <- nil
		return result
	}

	group := CreateGroupTask(msgs[0].MediaGroupKey)

	handles := make([]<-chan *Task, 0, len(msgs))
	for _, msg := range msgs {
		handles = append(handles, p.SubmitDownload(ctx, msg))
	}

	go func() {
		for _, handle := range handles {
			group.AddTask(<-handle)
		}

		logger.Info("media group download finished",
			zap.String("function", funcName),
			zap.String("group_key", group.Key()),
			zap.Int("completed", group.CompletedCount()),
			zap.Int("failed", group.FailedCount()),
		)
		result <- group
	}()

	return result
}

// SubmitUploadGroup sends the group's completed members as one album. The
// group caption is attached to the first item only; unsupported member kinds
// are skipped with a warning. A client send error fails the whole group.
// A nil or memberless group resolves with ErrNoMediaGroup.
func (p *Pipeline) SubmitUploadGroup(ctx context.Context, chatID int64, group *GroupTask) <-chan GroupUploadResult {
	const funcName = "Pipeline.SubmitUploadGroup"

	result := make(chan GroupUploadResult, 1)

	if group == nil || group.Size() == 0 {
		logger.Warn("no media group to upload",
			zap.String("function", funcName),
		)
		result <- GroupUploadResult{Err: errs.ErrNoMediaGroup}
		return result
	}

	go func() {
		caption := group.Caption()
		items := make([]models.OutboundMedia, 0, group.Size())

		for _, task := range group.Tasks() {
			if task.State() != StateCompleted {
				continue
			}

			itemCaption := ""
			if len(items) == 0 {
				itemCaption = caption
			}

			item, err := outboundFromTask(task, itemCaption)
			if err != nil {
				logger.Warn("skipping unsupported media kind in group",
					zap.String("function", funcName),
					zap.String("task_id", task.ID()),
					zap.String("kind", string(task.Message().Kind)),
				)
				continue
			}
			items = append(items, item)
		}

		if len(items) == 0 {
			result <- GroupUploadResult{}
			return
		}

		msgs, err := p.client.SendMediaAlbum(ctx, chatID, items)
		if err != nil {
			result <- GroupUploadResult{Err: errs.NewMediaError(group.Key(), err)}
			return
		}

		logger.Info("media group uploaded",
			zap.String("function", funcName),
			zap.String("group_key", group.Key()),
			zap.Int("messages", len(msgs)),
		)
		result <- GroupUploadResult{Messages: msgs}
	}()

	return result
}

func (p *Pipeline) ActiveDownloads() int {
	return int(p.activeDownloads.Load())
}

func (p *Pipeline) ActiveUploads() int {
	return int(p.activeUploads.Load())
}

func (p *Pipeline) downloadWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			return
		case job := <-p.downloadQueue:
			p.activeDownloads.Add(1)
			p.runDownload(job)
			p.activeDownloads.Add(-1)
		}
	}
}

func (p *Pipeline) runDownload(job *downloadJob) {
	const funcName = "Pipeline.runDownload"

	task := job.task
	task.SetState(StateProcessing)

	if err := p.downloadFile(job.ctx, task); err != nil {
		logger.Error("download failed",
			zap.String("function", funcName),
			zap.String("task_id", task.ID()),
			zap.Error(err),
		)
		task.SetError(err.Error())
		task.SetState(StateFailed)
	} else {
		task.SetProgress(100)
		task.SetState(StateCompleted)
	}

	job.result <- task
}

func (p *Pipeline) downloadFile(ctx context.Context, task *Task) error {
	const funcName = "Pipeline.downloadFile"

	msg := task.Message()
	if msg.FileID == 0 {
		return errs.NewMediaError(task.ID(), errs.ErrNoMediaFile)
	}

	file, err := p.client.DownloadFile(ctx, msg.FileID)
	if err != nil {
		return errs.NewMediaError(task.ID(), fmt.Errorf("fetch file: %w", err))
	}
	if !file.Completed {
		return errs.NewMediaError(task.ID(), errs.ErrFileIncomplete)
	}
	task.SetProgress(80)

	data, err := os.ReadFile(file.LocalPath)
	if err != nil {
		return errs.NewMediaError(task.ID(), fmt.Errorf("read local file: %w", err))
	}

	fileName := fmt.Sprintf("media_%d%s", msg.ID, models.FileExtension(msg))
	task.SetBuffer(data, fileName)

	logger.Info("file downloaded",
		zap.String("function", funcName),
		zap.String("file_name", fileName),
		zap.Int("size_bytes", len(data)),
	)
	return nil
}

func (p *Pipeline) uploadWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			return
		case job := <-p.uploadQueue:
			p.activeUploads.Add(1)
			p.runUpload(job)
			p.activeUploads.Add(-1)
		}
	}
}

func (p *Pipeline) runUpload(job *uploadJob) {
	const funcName = "Pipeline.runUpload"

	task := job.task
	task.SetState(StateProcessing)

	msg, err := p.uploadFile(job.ctx, job.chatID, task)
	if err != nil {
		logger.Error("upload failed",
			zap.String("function", funcName),
			zap.String("task_id", task.ID()),
			zap.Error(err),
		)
		task.SetError(err.Error())
		task.SetState(StateFailed)
		job.result <- UploadResult{Err: err}
		return
	}

	task.SetProgress(100)
	task.SetState(StateCompleted)
	job.result <- UploadResult{Message: msg}
}

func (p *Pipeline) uploadFile(ctx context.Context, chatID int64, task *Task) (*models.Message, error) {
	item, err := outboundFromTask(task, task.Message().Caption)
	if err != nil {
		return nil, err
	}

	msg, err := p.client.SendMedia(ctx, chatID, item)
	if err != nil {
		return nil, errs.NewMediaError(task.ID(), fmt.Errorf("send media: %w", err))
	}
	return msg, nil
}

// SendableKind reports whether the kind can be re-materialized as an
// outbound media message. Voice and video notes download fine but cannot be
// re-sent from a buffer, so they are rejected before any bytes move.
func SendableKind(kind models.MediaKind) bool {
	switch kind {
	case models.KindPhoto, models.KindVideo, models.KindDocument,
		models.KindAudio, models.KindAnimation, models.KindSticker:
		return true
	default:
		return false
	}
}

// outboundFromTask selects the outbound message shape for the task's media
// kind. Stickers carry no caption.
func outboundFromTask(task *Task, caption string) (models.OutboundMedia, error) {
	kind := task.Message().Kind

	if !SendableKind(kind) {
		return models.OutboundMedia{}, errs.NewMediaError(task.ID(), errs.ErrUnsupportedMedia)
	}
	if kind == models.KindSticker {
		caption = ""
	}

	return models.OutboundMedia{
		Kind:     kind,
		Data:     task.Buffer(),
		FileName: task.FileName(),
		Caption:  caption,
	}, nil
}
