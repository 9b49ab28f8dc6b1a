package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MediaKind is the closed set of message content kinds the forwarder
// distinguishes. Anything the client reports outside this set maps to KindOther.
type MediaKind string

const (
	KindText      MediaKind = "text"
	KindPhoto     MediaKind = "photo"
	KindVideo     MediaKind = "video"
	KindDocument  MediaKind = "document"
	KindAudio     MediaKind = "audio"
	KindAnimation MediaKind = "animation"
	KindSticker   MediaKind = "sticker"
	KindVoiceNote MediaKind = "voice_note"
	KindVideoNote MediaKind = "video_note"
	KindOther     MediaKind = "other"
)

// Message is the structured view of one source message. The chat-protocol
// client converts its wire objects into this shape; the core never sees
// transport-level types.
type Message struct {
	ID            int64
	ChatID        int64
	Kind          MediaKind
	Text          string
	Caption       string
	MediaGroupKey string
	FileID        int32
	MimeType      string
	FileName      string
	Date          time.Time
}

func (m *Message) IsMedia() bool {
	switch m.Kind {
	case KindPhoto, KindVideo, KindDocument, KindAudio,
		KindAnimation, KindSticker, KindVoiceNote, KindVideoNote:
		return true
	default:
		return false
	}
}

// Body returns the text of a text message, or the caption otherwise.
func (m *Message) Body() string {
	if m.Kind == KindText {
		return m.Text
	}
	return m.Caption
}

type Chat struct {
	ID        int64
	Title     string
	IsChannel bool
}

type MemberStatus string

const (
	MemberStatusAdministrator MemberStatus = "administrator"
	MemberStatusMember        MemberStatus = "member"
	MemberStatusOther         MemberStatus = "other"
)

type ChatMember struct {
	Status          MemberStatus
	CanPostMessages bool
}

// File describes a client-side file reference after a fetch request.
type File struct {
	ID        int32
	LocalPath string
	Size      int64
	Completed bool
}

// OutboundMedia is one re-materialized media item ready to be sent.
type OutboundMedia struct {
	Kind     MediaKind
	Data     []byte
	FileName string
	Caption  string
}

// ForwarderStats is a point-in-time snapshot of the coordinator state.
type ForwarderStats struct {
	Running           bool  `json:"running"`
	SourceChatID      int64 `json:"source_chat_id"`
	TargetChatID      int64 `json:"target_chat_id"`
	LastMessageID     int64 `json:"last_message_id"`
	ForwardedCount    int   `json:"forwarded_count"`
	FailedCount       int   `json:"failed_count"`
	ActiveDownloads   int   `json:"active_downloads"`
	ActiveUploads     int   `json:"active_uploads"`
	ProcessedMessages int   `json:"processed_messages"`
	ProcessedGroups   int   `json:"processed_groups"`
}

// TaskID derives the stable transfer-task identifier for a message, so
// repeated submissions for the same message collide predictably.
func TaskID(chatID, messageID int64) string {
	return fmt.Sprintf("%d_%d", chatID, messageID)
}

var documentExtByMime = map[string]string{
	"application/pdf":              ".pdf",
	"application/zip":              ".zip",
	"application/x-rar-compressed": ".rar",
	"text/plain":                   ".txt",
	"application/msword":           ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

var audioExtByMime = map[string]string{
	"audio/mpeg":   ".mp3",
	"audio/ogg":    ".ogg",
	"audio/x-wav":  ".wav",
	"audio/x-flac": ".flac",
}

var videoExtByMime = map[string]string{
	"video/mp4":        ".mp4",
	"video/webm":       ".webm",
	"video/x-matroska": ".mkv",
}

// FileExtension infers a file extension for a downloaded media message from
// its kind, original file name and MIME type.
func FileExtension(m *Message) string {
	switch m.Kind {
	case KindPhoto:
		return ".jpg"
	case KindVideo:
		if ext, ok := videoExtByMime[m.MimeType]; ok {
			return ext
		}
		return ".mp4"
	case KindDocument:
		if ext := filepath.Ext(m.FileName); ext != "" {
			return ext
		}
		if ext, ok := documentExtByMime[m.MimeType]; ok {
			return ext
		}
		return ".bin"
	case KindAudio:
		if ext, ok := audioExtByMime[m.MimeType]; ok {
			return ext
		}
		return ".mp3"
	case KindAnimation:
		return ".mp4"
	case KindSticker:
		if m.MimeType == "application/x-tgsticker" {
			return ".tgs"
		}
		return ".webp"
	default:
		return ".bin"
	}
}

// FilterType is one message-type filter token from the configuration.
type FilterType string

const (
	FilterText      FilterType = "text"
	FilterPhoto     FilterType = "photo"
	FilterVideo     FilterType = "video"
	FilterDocument  FilterType = "document"
	FilterAudio     FilterType = "audio"
	FilterSticker   FilterType = "sticker"
	FilterAnimation FilterType = "animation"
	FilterAll       FilterType = "all"
)

var filterKinds = map[FilterType]MediaKind{
	FilterText:      KindText,
	FilterPhoto:     KindPhoto,
	FilterVideo:     KindVideo,
	FilterDocument:  KindDocument,
	FilterAudio:     KindAudio,
	FilterSticker:   KindSticker,
	FilterAnimation: KindAnimation,
}

// ParseFilter maps a configuration token to a FilterType.
func ParseFilter(token string) (FilterType, error) {
	f := FilterType(strings.ToLower(strings.TrimSpace(token)))
	if f == FilterAll {
		return f, nil
	}
	if _, ok := filterKinds[f]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown message type filter: %q", token)
}

func (f FilterType) Matches(kind MediaKind) bool {
	if f == FilterAll {
		return true
	}
	return filterKinds[f] == kind
}
