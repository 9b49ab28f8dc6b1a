package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/telefwd/tg-forwarder/internal/app/models"
	"github.com/telefwd/tg-forwarder/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func TestNormalizeFilters(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		expected []models.FilterType
	}{
		{
			name:     "Empty_DefaultsToAll",
			tokens:   nil,
			expected: []models.FilterType{models.FilterAll},
		},
		{
			name:     "KnownTokens",
			tokens:   []string{"photo", "Video", " text "},
			expected: []models.FilterType{models.FilterPhoto, models.FilterVideo, models.FilterText},
		},
		{
			name:     "UnknownTokensDropped",
			tokens:   []string{"photo", "hologram"},
			expected: []models.FilterType{models.FilterPhoto},
		},
		{
			name:     "AllUnknown_DefaultsToAll",
			tokens:   []string{"hologram", "smoke-signal"},
			expected: []models.FilterType{models.FilterAll},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeFilters(tt.tokens))
		})
	}
}

func TestMatchesAny(t *testing.T) {
	filters := []models.FilterType{models.FilterPhoto, models.FilterVideo}

	assert.True(t, MatchesAny(filters, models.KindPhoto))
	assert.True(t, MatchesAny(filters, models.KindVideo))
	assert.False(t, MatchesAny(filters, models.KindText))
	assert.False(t, MatchesAny(filters, models.KindDocument))

	assert.True(t, MatchesAny([]models.FilterType{models.FilterAll}, models.KindVoiceNote))
	assert.False(t, MatchesAny(nil, models.KindText))
}
