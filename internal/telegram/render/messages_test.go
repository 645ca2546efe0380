package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestRenderError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{entity.NewServiceError(entity.KindServiceUnavailable, "down", nil), ErrServiceBusy},
		{entity.NewServiceError(entity.KindDatabase, "db", nil), ErrServiceBusy},
		{entity.NewServiceError(entity.KindTranslationService, "tr", nil), ErrTranslation},
		{entity.NewServiceError(entity.KindWeatherService, "wx", nil), ErrWeather},
		{entity.NewServiceError(entity.KindGenerationService, "gen", nil), ErrAnswerGeneration},
		{fmt.Errorf("%w: question is required", entity.ErrInvalidParameter), ErrInvalidQuestion},
		{errors.New("boom"), ErrGeneric},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RenderError(tt.err), tt.err.Error())
	}
}

func TestRenderAnswer(t *testing.T) {
	got := RenderAnswer(&entity.AskResponse{Answer: " Plant in June. ", Sources: []string{"source1", "source2"}})
	assert.Equal(t, "Plant in June.\n\n📚 Sources: source1, source2", got)

	assert.Equal(t, "Hello", RenderAnswer(&entity.AskResponse{Answer: "Hello", Sources: []string{}}))
}

func TestRenderLanguageSet(t *testing.T) {
	assert.Equal(t, "✅ Answers will be in Amharic.", RenderLanguageSet(entity.LangAmharic))
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, SplitMessage("short", 10))

	text := strings.Repeat("ሀ", 8) + "\n\n" + strings.Repeat("b", 8)
	parts := SplitMessage(text, 12)
	assert.Equal(t, []string{strings.Repeat("ሀ", 8), strings.Repeat("b", 8)}, parts)

	long := strings.Repeat("x", 25)
	parts = SplitMessage(long, 10)
	assert.Len(t, parts, 3)
	for _, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 10)
	}
}
