package entity

// LanguageCode is a two-letter language code accepted by the advisory API
type LanguageCode string

const (
	LangAuto     LanguageCode = "auto"
	LangEnglish  LanguageCode = "en"
	LangAmharic  LanguageCode = "am"
	LangOromo    LanguageCode = "om"
	LangSomali   LanguageCode = "so"
	LangTigrinya LanguageCode = "ti"
)

// WorkingLanguage is the language retrieval and generation operate in
const WorkingLanguage = LangEnglish

var languageNames = map[LanguageCode]string{
	LangAuto:     "Auto",
	LangEnglish:  "English",
	LangAmharic:  "Amharic",
	LangOromo:    "Affan Oromo",
	LangSomali:   "Somali",
	LangTigrinya: "Tigrinya",
}

// LanguageName returns the human-readable name of a language code.
// Unknown codes fall back to English.
func LanguageName(code LanguageCode) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return languageNames[LangEnglish]
}

// IsValid reports whether the code is one of the request languages
func (c LanguageCode) IsValid() bool {
	_, ok := languageNames[c]
	return ok
}
