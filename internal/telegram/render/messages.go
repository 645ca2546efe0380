package render

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nilecare/advisory-backend/internal/entity"
)

// MaxMessageLength is Telegram's limit for a single text message
const MaxMessageLength = 4096

const (
	MsgWelcome = `👋 Welcome to Nile Care AI Farm Advisory!

Ask me anything about crops, soil, pests, livestock or the weather on your farm.
I answer in English, Amharic, Afaan Oromo, Somali and Tigrinya.

📍 Share your location to get advice that accounts for the local weather.`

	MsgHelp = `🤖 Commands:

/start - Show the welcome message
/help - Show this help
/lang - Choose the answer language (auto, en, am, om, so, ti)
/forget - Forget your shared location

Just type your question, for example:
"When should I plant teff?"`

	MsgChooseLanguage  = "🌐 Choose the language for answers:"
	MsgLanguageSet     = "✅ Answers will be in %s."
	MsgLocationSaved   = "📍 Location saved. Weather will be considered in your answers."
	MsgLocationCleared = "🗑 Your location has been forgotten."
	MsgNoLocation      = "You have not shared a location."
	MsgTextOnly        = "Please send your question as text."

	ErrGeneric           = "❌ Something went wrong. Please try again."
	ErrUnknownCommand    = "❌ Unknown command. Use /help"
	ErrUnknownLanguage   = "❌ Unknown language %q. Use one of: auto, en, am, om, so, ti"
	ErrInvalidQuestion   = "❌ Please send a question between 2 and 200 characters."
	ErrServiceBusy       = "⏳ The advisory service is busy right now. Please try again in a few minutes."
	ErrTranslation       = "❌ I could not translate your message. Please try again or write in English."
	ErrWeather           = "🌦 Weather information is unavailable for that location. Try /forget and ask again."
	ErrAnswerGeneration  = "❌ I could not prepare an answer right now. Please try again."
	ErrRateLimited       = "⚠️ Too many requests. Please wait a moment."
	ErrRateLimitedRepeat = "🛑 You are sending messages too quickly. Please wait a minute."
)

func RenderLanguageSet(code entity.LanguageCode) string {
	return fmt.Sprintf(MsgLanguageSet, entity.LanguageName(code))
}

func RenderUnknownLanguage(arg string) string {
	return fmt.Sprintf(ErrUnknownLanguage, arg)
}

// RenderAnswer formats an answer with its sources
func RenderAnswer(resp *entity.AskResponse) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(resp.Answer))
	if len(resp.Sources) > 0 {
		sb.WriteString("\n\n📚 Sources: ")
		sb.WriteString(strings.Join(resp.Sources, ", "))
	}
	return sb.String()
}

// RenderError picks a user-facing message for an advisory error
func RenderError(err error) string {
	if errors.Is(err, entity.ErrInvalidParameter) {
		return ErrInvalidQuestion
	}

	switch entity.KindOf(err) {
	case entity.KindValidation:
		return ErrInvalidQuestion
	case entity.KindServiceUnavailable, entity.KindDatabase, entity.KindEmbeddingService:
		return ErrServiceBusy
	case entity.KindTranslationService:
		return ErrTranslation
	case entity.KindWeatherService:
		return ErrWeather
	case entity.KindGenerationService:
		return ErrAnswerGeneration
	default:
		return ErrGeneric
	}
}

// SplitMessage cuts text into parts no longer than limit runes,
// preferring paragraph and line breaks.
func SplitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		window := string(runes[:limit])
		if i := strings.LastIndex(window, "\n\n"); i > 0 {
			cut = utf8.RuneCountInString(window[:i])
		} else if i := strings.LastIndex(window, "\n"); i > 0 {
			cut = utf8.RuneCountInString(window[:i])
		}
		parts = append(parts, strings.TrimSpace(string(runes[:cut])))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), "\n"))
	}
	if rest := strings.TrimSpace(string(runes)); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}
