package advisory

import (
	"fmt"
	"strconv"
	"strings"
)

const noWeatherData = "No weather data provided."

const systemPrompt = "You are Nile Care AI Farm Advisory, a specialized agricultural assistant. Your role is to provide concise, clear, " +
	"and informative answers based solely on the context provided. Always answer in the language requested, without " +
	"introducing any other languages. If the question cannot be answered from the provided context, acknowledge this by " +
	"saying, 'I don't know.'\n\n" +
	"- Weather inquiries: If asked for the weather, offer a concise, accurate report based only on the available data. " +
	"Do not add extra commentary or suggestions.\n\n" +
	"- Tone & Clarity: Your responses should be professional, easy to understand, and accurate. If the context includes " +
	"technical terms or complex concepts, simplify them for the user's understanding while maintaining accuracy.\n\n" +
	"- Consistency & Transparency: If you're unsure about something, communicate that clearly and refrain from guessing. " +
	"Always prioritize honesty in your responses.\n\n" +
	"If the user greets you (e.g., 'Hi', 'Hello', 'Good morning'), respond in a friendly, human-like manner, such as:\n" +
	"'Hello! How can I assist you with your farming needs today?' or 'Hi there! How can I help with your agricultural questions?'\n\n" +
	"If asked 'Who am I talking to?' or something similar, you should respond with: 'You are talking to Nile Care AI Farm Advisory, " +
	"your trusted agricultural assistant designed to help with farming-related queries and provide tailored guidance based on provided data.'\n\n" +
	"Don't include any list just return the answer in a paragraph format."

// SystemPrompt returns the fixed generation instructions
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt renders the per-request message sent after the system prompt
func BuildUserPrompt(question, languageName, context, weather string) string {
	if strings.TrimSpace(weather) == "" {
		weather = noWeatherData
	}

	return fmt.Sprintf("Use the following context to answer the\n\n"+
		"question: %s\n"+
		"user language: %s just to be clear use english for the answer whatever the user language is.\n\n"+
		"Context:\n%s\n"+
		"Weather Data:\n%s\n",
		question, languageName, context, weather)
}

// locationWeatherSection and coordinatesWeatherSection label weather reports appended to the context
func locationWeatherSection(location, report string) string {
	return fmt.Sprintf("\n\nWeather information for %s:\n%s", location, report)
}

func coordinatesWeatherSection(lat, lon float64, report string) string {
	return fmt.Sprintf("\n\nWeather information for coordinates (%s, %s):\n%s", formatCoord(lat), formatCoord(lon), report)
}

// formatCoord always keeps a decimal point, so 0 renders as "0.0"
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

var artifactCleaner = strings.NewReplacer("**", "", ">>>>", "")

// CleanAnswer strips formatting artifacts produced by the generation service
func CleanAnswer(answer string) string {
	return artifactCleaner.Replace(answer)
}
