package advisory

import (
	"strings"
	"unicode"
)

type Intent string

const (
	IntentNone         Intent = ""
	IntentGreeting     Intent = "greeting"
	IntentIntroduction Intent = "introduction"
	IntentThanks       Intent = "thanks"
)

const (
	GreetingResponse = "Hello! I'm Nile Care AI Farm Advisory, your agricultural assistant. " +
		"I'm here to help answer your farming questions, provide crop advice, " +
		"discuss pest management, soil health, weather impacts, and more. " +
		"How can I assist you today?"

	IntroductionResponse = "I am Nile Care AI Farm Advisory, your trusted agricultural assistant. " +
		"I'm designed to help farmers and agricultural professionals with farming-related queries, " +
		"provide guidance on crop management, pest control, soil health, weather conditions, " +
		"and offer tailored advice based on agricultural best practices. " +
		"What would you like to know about farming?"

	ThanksResponse = "You're welcome! Feel free to ask me anything about farming and agriculture."
)

// IntentRule short-circuits the pipeline with a canned response.
// MaxTokens of zero means the rule applies to questions of any length.
type IntentRule struct {
	Intent    Intent
	Patterns  []string
	MaxTokens int
	Response  string
}

// DefaultIntentRules are evaluated in order; the first match wins.
var DefaultIntentRules = []IntentRule{
	{
		Intent: IntentGreeting,
		Patterns: []string{
			"hi", "hello", "hey", "greetings", "good morning", "good afternoon",
			"good evening", "howdy", "hola", "salut", "namaste",
			"how are you", "how r u", "how do you do", "what's up", "whats up",
			"sup", "wassup", "how's it going", "hows it going",
		},
		MaxTokens: 5,
		Response:  GreetingResponse,
	},
	{
		Intent: IntentIntroduction,
		Patterns: []string{
			"who are you", "what are you", "who am i talking to", "what is your name",
			"introduce yourself", "tell me about yourself",
		},
		Response: IntroductionResponse,
	},
	{
		Intent:    IntentThanks,
		Patterns:  []string{"thank", "thanks", "thank you", "thx", "appreciate"},
		MaxTokens: 5,
		Response:  ThanksResponse,
	},
}

// IntentClassifier matches whole words and phrases, so "which" never matches "hi".
type IntentClassifier struct {
	rules []IntentRule
}

func NewIntentClassifier(rules []IntentRule) *IntentClassifier {
	return &IntentClassifier{rules: rules}
}

// Classify returns the first matching rule for an English question
func (c *IntentClassifier) Classify(question string) (IntentRule, bool) {
	lowered := strings.ToLower(strings.TrimSpace(question))
	tokens := len(strings.Fields(lowered))
	padded := " " + normalizePhrase(lowered) + " "

	for _, rule := range c.rules {
		if rule.MaxTokens > 0 && tokens > rule.MaxTokens {
			continue
		}
		for _, pattern := range rule.Patterns {
			if strings.Contains(padded, " "+pattern+" ") {
				return rule, true
			}
		}
	}

	return IntentRule{Intent: IntentNone}, false
}

// normalizePhrase keeps letters, digits and apostrophes and collapses everything else to single spaces
func normalizePhrase(s string) string {
	s = strings.NewReplacer("’", "'", "‘", "'").Replace(s)
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}
