package forwarder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	mock_app "github.com/telefwd/tg-forwarder/internal/app/mocks"
	"github.com/telefwd/tg-forwarder/internal/app/media"
	"github.com/telefwd/tg-forwarder/internal/app/models"
	"github.com/telefwd/tg-forwarder/internal/app/resolver"
	"github.com/telefwd/tg-forwarder/internal/app/state"
	"github.com/telefwd/tg-forwarder/internal/config"
	"github.com/telefwd/tg-forwarder/internal/utils/errs"
	"github.com/telefwd/tg-forwarder/internal/utils/logger"
)

const (
	sourceChatID = int64(-100111)
	targetChatID = int64(-100222)
	sourceRef    = "-100111"
	targetRef    = "-100222"
	myUserID     = int64(7)
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func testConfig(mode config.Mode) config.ForwarderConfig {
	return config.ForwarderConfig{
		Mode:                   mode,
		PollIntervalMS:         10,
		PageSize:               10,
		MaxConcurrentDownloads: 2,
		MaxConcurrentUploads:   2,
		RetryCount:             0,
		RetryDelayMS:           1,
	}
}

func createTestForwarder(client *mock_app.MockTelegramClient, cfg config.ForwarderConfig) (*Forwarder, *state.Store) {
	store := state.CreateStore(0)
	pipeline := media.CreatePipeline(client, cfg.MaxConcurrentDownloads, cfg.MaxConcurrentUploads)
	fwd := CreateForwarder(client, resolver.CreateResolver(client), pipeline, store)
	fwd.Init(cfg)
	return fwd, store
}

// expectStartup wires the permission check and the initial high-water mark
// fetch for a successful Start against canonical channel ids.
func expectStartup(client *mock_app.MockTelegramClient, latestID int64) {
	client.EXPECT().
		GetMyID(gomock.Any()).
		Return(myUserID, nil)
	client.EXPECT().
		GetChat(gomock.Any(), targetChatID).
		Return(&models.Chat{ID: targetChatID, IsChannel: true}, nil)
	client.EXPECT().
		GetChatMember(gomock.Any(), targetChatID, myUserID).
		Return(&models.ChatMember{Status: models.MemberStatusAdministrator, CanPostMessages: true}, nil)

	latest := []*models.Message{}
	if latestID > 0 {
		latest = append(latest, &models.Message{ID: latestID, ChatID: sourceChatID, Kind: models.KindText})
	}
	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 1).
		Return(latest, nil)
}

func expectDownloads(t *testing.T, client *mock_app.MockTelegramClient, times int) {
	path := filepath.Join(t.TempDir(), "blob")
	assert.NoError(t, os.WriteFile(path, []byte("payload"), 0o600))

	client.EXPECT().
		DownloadFile(gomock.Any(), gomock.Any()).
		Return(&models.File{ID: 1, LocalPath: path, Size: 7, Completed: true}, nil).
		Times(times)
}

func groupPhoto(id int64, key string) *models.Message {
	return &models.Message{
		ID:            id,
		ChatID:        sourceChatID,
		Kind:          models.KindPhoto,
		FileID:        int32(id),
		MediaGroupKey: key,
	}
}

func waitStopped(t *testing.T, fwd *Forwarder) {
	assert.Eventually(t, func() bool {
		return !fwd.IsRunning()
	}, 2*time.Second, 5*time.Millisecond)
}

func TestForwarder_ForwardText_OneTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	expectStartup(client, 9)

	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return([]*models.Message{
			{ID: 10, ChatID: sourceChatID, Kind: models.KindText, Text: "hello"},
		}, nil)
	client.EXPECT().
		SendText(gomock.Any(), targetChatID, "hello").
		Return(&models.Message{ID: 100, ChatID: targetChatID}, nil)

	fwd, store := createTestForwarder(client, testConfig(config.ModeOneTime))

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	waitStopped(t, fwd)
	fwd.Stop()

	assert.Equal(t, 1, store.ForwardedCount())
	assert.Equal(t, 0, store.FailedCount())
	assert.Equal(t, int64(10), store.Mark())
	assert.True(t, store.IsMessageProcessed(10))
}

func TestForwarder_ForwardSingleMedia(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	expectStartup(client, 9)
	expectDownloads(t, client, 1)

	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return([]*models.Message{
			{ID: 10, ChatID: sourceChatID, Kind: models.KindPhoto, FileID: 5, Caption: "pic"},
		}, nil)
	client.EXPECT().
		SendMedia(gomock.Any(), targetChatID, gomock.Any()).
		DoAndReturn(func(_ context.Context, chatID int64, item models.OutboundMedia) (*models.Message, error) {
			assert.Equal(t, models.KindPhoto, item.Kind)
			assert.Equal(t, "pic", item.Caption)
			assert.Equal(t, []byte("payload"), item.Data)
			return &models.Message{ID: 200, ChatID: chatID}, nil
		})

	fwd, store := createTestForwarder(client, testConfig(config.ModeOneTime))

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	waitStopped(t, fwd)
	fwd.Stop()

	assert.Equal(t, 1, store.ForwardedCount())
	assert.Equal(t, int64(10), store.Mark())
}

func TestForwarder_ForwardMediaGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	expectStartup(client, 9)
	expectDownloads(t, client, 3)

	// Poll page, newest first; all three belong to the same album.
	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return([]*models.Message{
			groupPhoto(12, "G1"),
			groupPhoto(11, "G1"),
			groupPhoto(10, "G1"),
		}, nil)
	// Sibling lookback includes an unrelated older message that must be ignored.
	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 50).
		Return([]*models.Message{
			groupPhoto(12, "G1"),
			groupPhoto(11, "G1"),
			groupPhoto(10, "G1"),
			{ID: 5, ChatID: sourceChatID, Kind: models.KindText, Text: "old"},
		}, nil)
	client.EXPECT().
		SendMediaAlbum(gomock.Any(), targetChatID, gomock.Any()).
		DoAndReturn(func(_ context.Context, chatID int64, items []models.OutboundMedia) ([]*models.Message, error) {
			assert.Equal(t, 3, len(items))
			return []*models.Message{
				{ID: 101, ChatID: chatID},
				{ID: 102, ChatID: chatID},
				{ID: 103, ChatID: chatID},
			}, nil
		}).
		Times(1)

	fwd, store := createTestForwarder(client, testConfig(config.ModeOneTime))

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	waitStopped(t, fwd)
	fwd.Stop()

	assert.True(t, store.IsGroupProcessed("G1"))
	assert.Equal(t, 3, store.ForwardedCount())
	assert.Equal(t, 0, store.FailedCount())
	assert.Equal(t, int64(12), store.Mark())
	for _, id := range []int64{10, 11, 12} {
		assert.True(t, store.IsMessageProcessed(id))
	}
}

func TestForwarder_ProcessedGroupKey_SkippedWithoutResend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	expectStartup(client, 9)

	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return([]*models.Message{groupPhoto(10, "G1")}, nil)

	fwd, store := createTestForwarder(client, testConfig(config.ModeOneTime))
	store.MarkGroupProcessed("G1")

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	waitStopped(t, fwd)
	fwd.Stop()

	assert.Equal(t, 0, store.ForwardedCount())
	assert.Equal(t, int64(10), store.Mark())
	assert.True(t, store.IsMessageProcessed(10))
}

func TestForwarder_FilteredKind_SkippedButMarkAdvances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	expectStartup(client, 9)

	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return([]*models.Message{
			{ID: 10, ChatID: sourceChatID, Kind: models.KindText, Text: "skip me"},
		}, nil)

	cfg := testConfig(config.ModeOneTime)
	cfg.MessageFilters = []string{"photo"}
	fwd, store := createTestForwarder(client, cfg)

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	waitStopped(t, fwd)
	fwd.Stop()

	assert.Equal(t, 0, store.ForwardedCount())
	assert.Equal(t, 0, store.FailedCount())
	assert.Equal(t, int64(10), store.Mark())
	assert.True(t, store.IsMessageProcessed(10))
}

func TestForwarder_VoiceNote_FailsFastWithoutTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	expectStartup(client, 9)

	// No DownloadFile or SendMedia expectations: a kind that cannot be
	// re-sent must be decided on before any bytes move, and must not be
	// retried.
	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return([]*models.Message{
			{ID: 10, ChatID: sourceChatID, Kind: models.KindVoiceNote, FileID: 5},
		}, nil)

	cfg := testConfig(config.ModeOneTime)
	cfg.RetryCount = 2
	fwd, store := createTestForwarder(client, cfg)

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	waitStopped(t, fwd)
	fwd.Stop()

	assert.Equal(t, 0, store.ForwardedCount())
	assert.Equal(t, 1, store.FailedCount())
	assert.Equal(t, int64(10), store.Mark())
	assert.True(t, store.IsMessageProcessed(10))
}

func TestForwarder_RetrySucceedsOnSecondAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	expectStartup(client, 9)

	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return([]*models.Message{
			{ID: 10, ChatID: sourceChatID, Kind: models.KindText, Text: "hello"},
		}, nil)
	client.EXPECT().
		SendText(gomock.Any(), targetChatID, "hello").
		Return(nil, errors.New("flood wait")).
		Times(1)
	client.EXPECT().
		SendText(gomock.Any(), targetChatID, "hello").
		Return(&models.Message{ID: 100, ChatID: targetChatID}, nil).
		Times(1)

	cfg := testConfig(config.ModeOneTime)
	cfg.RetryCount = 2
	fwd, store := createTestForwarder(client, cfg)

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	waitStopped(t, fwd)
	fwd.Stop()

	assert.Equal(t, 1, store.ForwardedCount())
	assert.Equal(t, 0, store.FailedCount())
}

func TestForwarder_RetriesExhausted_SkipAndAdvance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	expectStartup(client, 9)

	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return([]*models.Message{
			{ID: 10, ChatID: sourceChatID, Kind: models.KindText, Text: "hello"},
		}, nil)
	client.EXPECT().
		SendText(gomock.Any(), targetChatID, "hello").
		Return(nil, errors.New("flood wait")).
		Times(2)

	cfg := testConfig(config.ModeOneTime)
	cfg.RetryCount = 1
	fwd, store := createTestForwarder(client, cfg)

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	waitStopped(t, fwd)
	fwd.Stop()

	assert.Equal(t, 0, store.ForwardedCount())
	assert.Equal(t, 1, store.FailedCount())
	assert.Equal(t, int64(10), store.Mark())
	assert.True(t, store.IsMessageProcessed(10))
}

func TestForwarder_Start_PermissionDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	client.EXPECT().
		GetMyID(gomock.Any()).
		Return(myUserID, nil)
	client.EXPECT().
		GetChat(gomock.Any(), targetChatID).
		Return(&models.Chat{ID: targetChatID, IsChannel: true}, nil)
	client.EXPECT().
		GetChatMember(gomock.Any(), targetChatID, myUserID).
		Return(&models.ChatMember{Status: models.MemberStatusMember}, nil)

	fwd, _ := createTestForwarder(client, testConfig(config.ModeOneTime))

	err := fwd.Start(context.Background(), sourceRef, targetRef)

	assert.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.False(t, fwd.IsRunning())
}

func TestForwarder_Start_MemberAllowedOutsideChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	client.EXPECT().
		GetMyID(gomock.Any()).
		Return(myUserID, nil)
	client.EXPECT().
		GetChat(gomock.Any(), targetChatID).
		Return(&models.Chat{ID: targetChatID, IsChannel: false}, nil)
	client.EXPECT().
		GetChatMember(gomock.Any(), targetChatID, myUserID).
		Return(&models.ChatMember{Status: models.MemberStatusMember}, nil)
	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 1).
		Return(nil, nil)
	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return(nil, nil).
		AnyTimes()

	fwd, _ := createTestForwarder(client, testConfig(config.ModeContinuous))

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	fwd.Stop()
}

func TestForwarder_Start_AdminWithoutPostRights_Denied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	client.EXPECT().
		GetMyID(gomock.Any()).
		Return(myUserID, nil)
	client.EXPECT().
		GetChat(gomock.Any(), targetChatID).
		Return(&models.Chat{ID: targetChatID, IsChannel: true}, nil)
	client.EXPECT().
		GetChatMember(gomock.Any(), targetChatID, myUserID).
		Return(&models.ChatMember{Status: models.MemberStatusAdministrator, CanPostMessages: false}, nil)

	fwd, _ := createTestForwarder(client, testConfig(config.ModeOneTime))

	err := fwd.Start(context.Background(), sourceRef, targetRef)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestForwarder_Start_ResolveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	client.EXPECT().
		SearchPublicChat(gomock.Any(), "missing").
		Return(nil, errors.New("USERNAME_NOT_OCCUPIED"))

	fwd, _ := createTestForwarder(client, testConfig(config.ModeOneTime))

	err := fwd.Start(context.Background(), "@missing", targetRef)

	assert.Error(t, err)
	assert.False(t, fwd.IsRunning())
}

func TestForwarder_DoubleStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	expectStartup(client, 9)
	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return(nil, nil).
		AnyTimes()

	fwd, _ := createTestForwarder(client, testConfig(config.ModeContinuous))

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	assert.ErrorIs(t, fwd.Start(context.Background(), sourceRef, targetRef), errs.ErrForwarderRunning)

	fwd.Stop()
	fwd.Stop()
	assert.False(t, fwd.IsRunning())
}

func TestForwarder_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_app.NewMockTelegramClient(ctrl)
	expectStartup(client, 9)
	client.EXPECT().
		GetChatHistory(gomock.Any(), sourceChatID, int64(0), 10).
		Return(nil, nil).
		AnyTimes()

	fwd, store := createTestForwarder(client, testConfig(config.ModeContinuous))

	stats := fwd.Stats()
	assert.False(t, stats.Running)

	assert.NoError(t, fwd.Start(context.Background(), sourceRef, targetRef))
	store.AddForwarded(2)

	stats = fwd.Stats()
	assert.True(t, stats.Running)
	assert.Equal(t, sourceChatID, stats.SourceChatID)
	assert.Equal(t, targetChatID, stats.TargetChatID)
	assert.Equal(t, int64(9), stats.LastMessageID)
	assert.Equal(t, 2, stats.ForwardedCount)

	fwd.Stop()
	assert.False(t, fwd.Stats().Running)
}
