package app

import (
	"context"

	"github.com/telefwd/tg-forwarder/internal/app/media"
	"github.com/telefwd/tg-forwarder/internal/app/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go

// TelegramClient is the surface of the external chat-protocol client the core
// needs. The client owns connection lifecycle, authentication and wire
// encoding; the core only ever sees the structured objects from models.
type TelegramClient interface {
	// GetChatHistory returns up to limit of the most recent messages of the
	// chat, newest first. fromMessageID == 0 starts from the latest message.
	GetChatHistory(ctx context.Context, chatID int64, fromMessageID int64, limit int) ([]*models.Message, error)
	SearchPublicChat(ctx context.Context, handle string) (*models.Chat, error)
	GetChat(ctx context.Context, chatID int64) (*models.Chat, error)
	GetChatMember(ctx context.Context, chatID int64, userID int64) (*models.ChatMember, error)
	GetMyID(ctx context.Context) (int64, error)
	// DownloadFile fetches the file to local storage synchronously and
	// returns its state including the local path.
	DownloadFile(ctx context.Context, fileID int32) (*models.File, error)
	SendText(ctx context.Context, chatID int64, text string) (*models.Message, error)
	SendMedia(ctx context.Context, chatID int64, item models.OutboundMedia) (*models.Message, error)
	SendMediaAlbum(ctx context.Context, chatID int64, items []models.OutboundMedia) ([]*models.Message, error)
}

// ResolveResult is the deferred form of a channel resolution.
type ResolveResult struct {
	ChatID int64
	Err    error
}

type ChannelResolver interface {
	Resolve(ctx context.Context, identifier string) (int64, error)
	ResolveAsync(ctx context.Context, identifier string) <-chan ResolveResult
	ClearCache()
}

type MediaPipeline interface {
	Start()
	Stop()
	SubmitDownload(ctx context.Context, msg *models.Message) <-chan *media.Task
	SubmitUpload(ctx context.Context, chatID int64, task *media.Task) <-chan media.UploadResult
	SubmitDownloadGroup(ctx context.Context, msgs []*models.Message) <-chan *media.GroupTask
	SubmitUploadGroup(ctx context.Context, chatID int64, group *media.GroupTask) <-chan media.GroupUploadResult
	ActiveDownloads() int
	ActiveUploads() int
}

// StatusProvider exposes coordinator statistics to the delivery layer.
type StatusProvider interface {
	Stats() models.ForwarderStats
}
