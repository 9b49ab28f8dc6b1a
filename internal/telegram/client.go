package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/telefwd/tg-forwarder/internal/app/models"
	"github.com/telefwd/tg-forwarder/internal/config"
	"github.com/telefwd/tg-forwarder/internal/utils/errs"
	"github.com/telefwd/tg-forwarder/internal/utils/logger"
	"github.com/zelenin/go-tdlib/client"
	"go.uber.org/zap"
)

// Client adapts the TDLib client to the narrow surface the core needs. It
// owns session storage, authorization and the translation between TDLib
// objects and the models package.
type Client struct {
	raw    *client.Client
	myID   int64
	tmpDir string
}

// CreateClient authorizes against the Telegram servers. Authorization is
// interactive on first run (code prompt on stdin); subsequent runs reuse the
// session database.
func CreateClient(cfg *config.Config) (*Client, error) {
	const funcName = "telegram.CreateClient"

	authorizer := client.ClientAuthorizer(&client.SetTdlibParametersRequest{
		UseTestDc:           false,
		DatabaseDirectory:   filepath.Join(".tdlib", "database"),
		FilesDirectory:      filepath.Join(".tdlib", "files"),
		UseFileDatabase:     true,
		UseChatInfoDatabase: true,
		UseMessageDatabase:  true,
		UseSecretChats:      false,
		ApiId:               int32(cfg.API.ID),
		ApiHash:             cfg.API.Hash,
		SystemLanguageCode:  "en",
		DeviceModel:         "Server",
		SystemVersion:       "1.0.0",
		ApplicationVersion:  "1.0.0",
	})
	go client.CliInteractor(authorizer)

	logger.Info("authorizing telegram client",
		zap.String("function", funcName),
		zap.String("phone", cfg.API.Phone),
	)

	raw, err := client.NewClient(authorizer, client.WithLogVerbosity(&client.SetLogVerbosityLevelRequest{
		NewVerbosityLevel: 1,
	}))
	if err != nil {
		return nil, fmt.Errorf("create tdlib client: %w", err)
	}

	if cfg.Proxy.Enabled {
		_, err = raw.AddProxy(&client.AddProxyRequest{
			Server: cfg.Proxy.Host,
			Port:   int32(cfg.Proxy.Port),
			Enable: true,
			Type: &client.ProxyTypeSocks5{
				Username: cfg.Proxy.Username,
				Password: cfg.Proxy.Password,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("add proxy: %w", err)
		}
		logger.Info("proxy enabled",
			zap.String("function", funcName),
			zap.String("host", cfg.Proxy.Host),
			zap.Int("port", cfg.Proxy.Port),
		)
	}

	me, err := raw.GetMe()
	if err != nil {
		return nil, fmt.Errorf("get own identity: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "tgfwd_upload_")
	if err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	logger.Info("telegram client authorized",
		zap.String("function", funcName),
		zap.Int64("user_id", me.Id),
	)
	return &Client{
		raw:    raw,
		myID:   me.Id,
		tmpDir: tmpDir,
	}, nil
}

// Close shuts down the TDLib client and removes the upload staging directory.
func (c *Client) Close() {
	_, err := c.raw.Close()
	if err != nil {
		logger.Warn("tdlib close failed",
			zap.String("function", "telegram.Client.Close"),
			zap.Error(err),
		)
	}
	_ = os.RemoveAll(c.tmpDir)
}

func (c *Client) GetMyID(ctx context.Context) (int64, error) {
	return c.myID, nil
}

func (c *Client) GetChatHistory(ctx context.Context, chatID int64, fromMessageID int64, limit int) ([]*models.Message, error) {
	history, err := c.raw.GetChatHistory(&client.GetChatHistoryRequest{
		ChatId:        chatID,
		FromMessageId: fromMessageID,
		Offset:        0,
		Limit:         int32(limit),
		OnlyLocal:     false,
	})
	if err != nil {
		return nil, fmt.Errorf("get chat history: %w", err)
	}

	msgs := make([]*models.Message, 0, len(history.Messages))
	for _, m := range history.Messages {
		msgs = append(msgs, convertMessage(m))
	}
	return msgs, nil
}

func (c *Client) SearchPublicChat(ctx context.Context, handle string) (*models.Chat, error) {
	chat, err := c.raw.SearchPublicChat(&client.SearchPublicChatRequest{
		Username: handle,
	})
	if err != nil {
		return nil, fmt.Errorf("search public chat: %w", err)
	}
	return convertChat(chat), nil
}

func (c *Client) GetChat(ctx context.Context, chatID int64) (*models.Chat, error) {
	chat, err := c.raw.GetChat(&client.GetChatRequest{
		ChatId: chatID,
	})
	if err != nil {
		return nil, fmt.Errorf("get chat: %w", err)
	}
	return convertChat(chat), nil
}

func (c *Client) GetChatMember(ctx context.Context, chatID int64, userID int64) (*models.ChatMember, error) {
	member, err := c.raw.GetChatMember(&client.GetChatMemberRequest{
		ChatId:   chatID,
		MemberId: &client.MessageSenderUser{UserId: userID},
	})
	if err != nil {
		return nil, fmt.Errorf("get chat member: %w", err)
	}

	result := &models.ChatMember{Status: models.MemberStatusOther}
	switch status := member.Status.(type) {
	case *client.ChatMemberStatusCreator:
		result.Status = models.MemberStatusAdministrator
		result.CanPostMessages = true
	case *client.ChatMemberStatusAdministrator:
		result.Status = models.MemberStatusAdministrator
		if status.Rights != nil {
			result.CanPostMessages = status.Rights.CanPostMessages
		}
	case *client.ChatMemberStatusMember:
		result.Status = models.MemberStatusMember
	}
	return result, nil
}

func (c *Client) DownloadFile(ctx context.Context, fileID int32) (*models.File, error) {
	file, err := c.raw.DownloadFile(&client.DownloadFileRequest{
		FileId:      fileID,
		Priority:    1,
		Synchronous: true,
	})
	if err != nil {
		return nil, fmt.Errorf("download file %d: %w", fileID, err)
	}

	result := &models.File{
		ID:   file.Id,
		Size: file.Size,
	}
	if file.Local != nil {
		result.LocalPath = file.Local.Path
		result.Completed = file.Local.IsDownloadingCompleted
	}
	return result, nil
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string) (*models.Message, error) {
	msg, err := c.raw.SendMessage(&client.SendMessageRequest{
		ChatId: chatID,
		InputMessageContent: &client.InputMessageText{
			Text: &client.FormattedText{Text: text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("send text: %w", err)
	}
	return convertMessage(msg), nil
}

func (c *Client) SendMedia(ctx context.Context, chatID int64, item models.OutboundMedia) (*models.Message, error) {
	content, err := c.inputContent(item)
	if err != nil {
		return nil, err
	}

	msg, err := c.raw.SendMessage(&client.SendMessageRequest{
		ChatId:              chatID,
		InputMessageContent: content,
	})
	if err != nil {
		return nil, fmt.Errorf("send media: %w", err)
	}
	return convertMessage(msg), nil
}

func (c *Client) SendMediaAlbum(ctx context.Context, chatID int64, items []models.OutboundMedia) ([]*models.Message, error) {
	contents := make([]client.InputMessageContent, 0, len(items))
	for _, item := range items {
		content, err := c.inputContent(item)
		if err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}

	sent, err := c.raw.SendMessageAlbum(&client.SendMessageAlbumRequest{
		ChatId:               chatID,
		InputMessageContents: contents,
	})
	if err != nil {
		return nil, fmt.Errorf("send media album: %w", err)
	}

	msgs := make([]*models.Message, 0, len(sent.Messages))
	for _, m := range sent.Messages {
		msgs = append(msgs, convertMessage(m))
	}
	return msgs, nil
}

// inputContent stages the media buffer as a local file and wraps it in the
// input content for its kind.
// TODO: delete staged files on updateMessageSendSucceeded instead of only at
// Close; a long-running Continuous session accumulates them until shutdown.
func (c *Client) inputContent(item models.OutboundMedia) (client.InputMessageContent, error) {
	path := filepath.Join(c.tmpDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), item.FileName))
	if err := os.WriteFile(path, item.Data, 0o600); err != nil {
		return nil, fmt.Errorf("stage media file: %w", err)
	}

	local := &client.InputFileLocal{Path: path}
	caption := &client.FormattedText{Text: item.Caption}

	switch item.Kind {
	case models.KindPhoto:
		return &client.InputMessagePhoto{Photo: local, Caption: caption}, nil
	case models.KindVideo:
		return &client.InputMessageVideo{Video: local, Caption: caption}, nil
	case models.KindDocument:
		return &client.InputMessageDocument{Document: local, Caption: caption}, nil
	case models.KindAudio:
		return &client.InputMessageAudio{Audio: local, Caption: caption}, nil
	case models.KindAnimation:
		return &client.InputMessageAnimation{Animation: local, Caption: caption}, nil
	case models.KindSticker:
		return &client.InputMessageSticker{Sticker: local}, nil
	default:
		return nil, errs.NewMediaError(item.FileName, errs.ErrUnsupportedMedia)
	}
}

func convertChat(chat *client.Chat) *models.Chat {
	result := &models.Chat{
		ID:    chat.Id,
		Title: chat.Title,
	}
	if t, ok := chat.Type.(*client.ChatTypeSupergroup); ok {
		result.IsChannel = t.IsChannel
	}
	return result
}

func convertMessage(m *client.Message) *models.Message {
	msg := &models.Message{
		ID:     m.Id,
		ChatID: m.ChatId,
		Kind:   models.KindOther,
		Date:   time.Unix(int64(m.Date), 0),
	}
	if m.MediaAlbumId != 0 {
		msg.MediaGroupKey = strconv.FormatInt(int64(m.MediaAlbumId), 10)
	}

	switch content := m.Content.(type) {
	case *client.MessageText:
		msg.Kind = models.KindText
		if content.Text != nil {
			msg.Text = content.Text.Text
		}

	case *client.MessagePhoto:
		msg.Kind = models.KindPhoto
		msg.Caption = formattedText(content.Caption)
		msg.MimeType = "image/jpeg"
		if content.Photo != nil && len(content.Photo.Sizes) > 0 {
			// Sizes are ordered ascending; the last one is the original.
			msg.FileID = content.Photo.Sizes[len(content.Photo.Sizes)-1].Photo.Id
		}

	case *client.MessageVideo:
		msg.Kind = models.KindVideo
		msg.Caption = formattedText(content.Caption)
		if content.Video != nil {
			msg.FileID = content.Video.Video.Id
			msg.MimeType = content.Video.MimeType
			msg.FileName = content.Video.FileName
		}

	case *client.MessageDocument:
		msg.Kind = models.KindDocument
		msg.Caption = formattedText(content.Caption)
		if content.Document != nil {
			msg.FileID = content.Document.Document.Id
			msg.MimeType = content.Document.MimeType
			msg.FileName = content.Document.FileName
		}

	case *client.MessageAudio:
		msg.Kind = models.KindAudio
		msg.Caption = formattedText(content.Caption)
		if content.Audio != nil {
			msg.FileID = content.Audio.Audio.Id
			msg.MimeType = content.Audio.MimeType
			msg.FileName = content.Audio.FileName
		}

	case *client.MessageAnimation:
		msg.Kind = models.KindAnimation
		msg.Caption = formattedText(content.Caption)
		if content.Animation != nil {
			msg.FileID = content.Animation.Animation.Id
			msg.MimeType = content.Animation.MimeType
			msg.FileName = content.Animation.FileName
		}

	case *client.MessageSticker:
		msg.Kind = models.KindSticker
		if content.Sticker != nil {
			msg.FileID = content.Sticker.Sticker.Id
		}

	case *client.MessageVoiceNote:
		msg.Kind = models.KindVoiceNote
		msg.Caption = formattedText(content.Caption)
		if content.VoiceNote != nil {
			msg.FileID = content.VoiceNote.Voice.Id
			msg.MimeType = content.VoiceNote.MimeType
		}

	case *client.MessageVideoNote:
		msg.Kind = models.KindVideoNote
		if content.VideoNote != nil {
			msg.FileID = content.VideoNote.Video.Id
		}
	}

	return msg
}

func formattedText(t *client.FormattedText) string {
	if t == nil {
		return ""
	}
	return t.Text
}
