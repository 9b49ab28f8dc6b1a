package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	mock_app "github.com/telefwd/tg-forwarder/internal/app/mocks"
	"github.com/telefwd/tg-forwarder/internal/app/models"
	"github.com/telefwd/tg-forwarder/internal/utils/errs"
	"github.com/telefwd/tg-forwarder/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func TestResolver_Resolve_CanonicalID_NoClientCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock_app.NewMockTelegramClient(ctrl)
	r := CreateResolver(mockClient)

	chatID, err := r.Resolve(context.Background(), "-1001234567890")

	assert.NoError(t, err)
	assert.Equal(t, int64(-1001234567890), chatID)
}

func TestResolver_Resolve_HandleForms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		identifier string
		handle     string
	}{
		{
			name:       "AtHandle",
			identifier: "@somechannel",
			handle:     "somechannel",
		},
		{
			name:       "BareHandle",
			identifier: "somechannel",
			handle:     "somechannel",
		},
		{
			name:       "Link",
			identifier: "https://t.me/somechannel",
			handle:     "somechannel",
		},
		{
			name:       "LinkWithTrailingPath",
			identifier: "https://t.me/somechannel/123?single",
			handle:     "somechannel",
		},
		{
			name:       "PrefixLikeButNotCanonical",
			identifier: "-100abc",
			handle:     "-100abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := mock_app.NewMockTelegramClient(ctrl)
			mockClient.EXPECT().
				SearchPublicChat(gomock.Any(), tt.handle).
				Return(&models.Chat{ID: -100987, Title: "resolved", IsChannel: true}, nil)

			r := CreateResolver(mockClient)
			chatID, err := r.Resolve(context.Background(), tt.identifier)

			assert.NoError(t, err)
			assert.Equal(t, int64(-100987), chatID)
		})
	}
}

func TestResolver_Resolve_CachesByOriginalInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock_app.NewMockTelegramClient(ctrl)
	mockClient.EXPECT().
		SearchPublicChat(gomock.Any(), "somechannel").
		Return(&models.Chat{ID: -100987}, nil).
		Times(1)

	r := CreateResolver(mockClient)

	for i := 0; i < 3; i++ {
		chatID, err := r.Resolve(context.Background(), "@somechannel")
		assert.NoError(t, err)
		assert.Equal(t, int64(-100987), chatID)
	}
}

func TestResolver_Resolve_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock_app.NewMockTelegramClient(ctrl)
	mockClient.EXPECT().
		SearchPublicChat(gomock.Any(), "missing").
		Return(nil, errors.New("USERNAME_NOT_OCCUPIED"))

	r := CreateResolver(mockClient)
	_, err := r.Resolve(context.Background(), "@missing")

	assert.Error(t, err)
	var channelErr *errs.ChannelError
	assert.ErrorAs(t, err, &channelErr)
	assert.Equal(t, "@missing", channelErr.Identifier)
}

func TestResolver_Resolve_BadLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock_app.NewMockTelegramClient(ctrl)
	r := CreateResolver(mockClient)

	_, err := r.Resolve(context.Background(), "https://t.me/")

	assert.Error(t, err)
	var channelErr *errs.ChannelError
	assert.ErrorAs(t, err, &channelErr)
}

func TestResolver_Resolve_EmptyIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := CreateResolver(mock_app.NewMockTelegramClient(ctrl))
	_, err := r.Resolve(context.Background(), "")

	assert.Error(t, err)
}

func TestResolver_ResolveAsync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := CreateResolver(mock_app.NewMockTelegramClient(ctrl))

	result := <-r.ResolveAsync(context.Background(), "-100555")

	assert.NoError(t, result.Err)
	assert.Equal(t, int64(-100555), result.ChatID)
}

func TestResolver_ClearCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock_app.NewMockTelegramClient(ctrl)
	mockClient.EXPECT().
		SearchPublicChat(gomock.Any(), "somechannel").
		Return(&models.Chat{ID: -100987}, nil).
		Times(2)

	r := CreateResolver(mockClient)

	_, err := r.Resolve(context.Background(), "somechannel")
	assert.NoError(t, err)

	r.ClearCache()

	_, err = r.Resolve(context.Background(), "somechannel")
	assert.NoError(t, err)
}
