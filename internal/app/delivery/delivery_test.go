package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
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

func newStatusRouter(provider *mock_app.MockStatusProvider, resolver *mock_app.MockChannelResolver) *mux.Router {
	statusDelivery := CreateStatusDelivery(provider, resolver)

	router := mux.NewRouter()
	router.HandleFunc("/health", statusDelivery.Health).Methods("GET")
	router.HandleFunc("/api/v1/status", statusDelivery.Status).Methods("GET")
	router.HandleFunc("/api/v1/channels/resolve", statusDelivery.ResolveChannel).Methods("GET")
	return router
}

func TestStatusDelivery_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newStatusRouter(mock_app.NewMockStatusProvider(ctrl), mock_app.NewMockChannelResolver(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "uptime_seconds")
}

func TestStatusDelivery_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock_app.NewMockStatusProvider(ctrl)
	provider.EXPECT().
		Stats().
		Return(models.ForwarderStats{
			Running:        true,
			SourceChatID:   -100111,
			TargetChatID:   -100222,
			LastMessageID:  42,
			ForwardedCount: 7,
			FailedCount:    1,
		})

	router := newStatusRouter(provider, mock_app.NewMockChannelResolver(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var stats models.ForwarderStats
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.True(t, stats.Running)
	assert.Equal(t, int64(-100111), stats.SourceChatID)
	assert.Equal(t, int64(-100222), stats.TargetChatID)
	assert.Equal(t, int64(42), stats.LastMessageID)
	assert.Equal(t, 7, stats.ForwardedCount)
	assert.Equal(t, 1, stats.FailedCount)
}

func TestStatusDelivery_ResolveChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mock_app.NewMockChannelResolver(ctrl)
	resolver.EXPECT().
		Resolve(gomock.Any(), "@somechannel").
		Return(int64(-100987), nil)

	router := newStatusRouter(mock_app.NewMockStatusProvider(ctrl), resolver)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/channels/resolve?identifier=@somechannel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "@somechannel", body["identifier"])
	assert.Equal(t, float64(-100987), body["chat_id"])
}

func TestStatusDelivery_ResolveChannel_MissingIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newStatusRouter(mock_app.NewMockStatusProvider(ctrl), mock_app.NewMockChannelResolver(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/channels/resolve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusDelivery_ResolveChannel_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mock_app.NewMockChannelResolver(ctrl)
	resolver.EXPECT().
		Resolve(gomock.Any(), "@missing").
		Return(int64(0), errs.NewChannelError("@missing", errors.New("USERNAME_NOT_OCCUPIED")))

	router := newStatusRouter(mock_app.NewMockStatusProvider(ctrl), resolver)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/channels/resolve?identifier=@missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "channel not found or inaccessible", body["text"])
}

func TestStatusDelivery_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newStatusRouter(mock_app.NewMockStatusProvider(ctrl), mock_app.NewMockChannelResolver(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
