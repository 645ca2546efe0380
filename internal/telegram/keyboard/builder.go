package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nilecare/advisory-backend/internal/entity"
)

var languageButtons = []struct {
	label string
	code  entity.LanguageCode
}{
	{"🌐 Auto", entity.LangAuto},
	{"🇬🇧 English", entity.LangEnglish},
	{"🇪🇹 አማርኛ", entity.LangAmharic},
	{"Afaan Oromoo", entity.LangOromo},
	{"Soomaali", entity.LangSomali},
	{"ትግርኛ", entity.LangTigrinya},
}

// Builder creates inline and reply keyboards
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// LanguageKeyboard lists the answer languages, two per row
func (b *Builder) LanguageKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(languageButtons); i += 2 {
		row := tgbotapi.NewInlineKeyboardRow()
		for _, l := range languageButtons[i:min(i+2, len(languageButtons))] {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(l.label, EncodeCallback(ActionLanguage, string(l.code))))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// LocationKeyboard asks the client to share its location
func (b *Builder) LocationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation("📍 Share my location"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// ForgetLocationKeyboard offers to drop a stored location
func (b *Builder) ForgetLocationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Forget location", EncodeCallback(ActionLocation, "forget")),
		),
	)
}

func (b *Builder) RemoveKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(false)
}
