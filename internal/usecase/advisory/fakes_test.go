package advisory

import (
	"context"
	"sync"

	"github.com/nilecare/advisory-backend/internal/entity"
)

type translateCall struct {
	text, src, dest string
}

type fakeTranslator struct {
	mu          sync.Mutex
	detected    string
	detectErr   error
	translateFn func(text, src, dest string) (string, error)
	detectCalls int
	calls       []translateCall
}

func (f *fakeTranslator) DetectLanguage(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detectCalls++
	if f.detectErr != nil {
		return "", f.detectErr
	}
	if f.detected == "" {
		return "en", nil
	}
	return f.detected, nil
}

func (f *fakeTranslator) Translate(ctx context.Context, text, src, dest string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, translateCall{text: text, src: src, dest: dest})
	f.mu.Unlock()
	if f.translateFn != nil {
		return f.translateFn(text, src, dest)
	}
	return "[" + dest + "] " + text, nil
}

type chatCall struct {
	systemPrompt string
	messages     []entity.ChatMessage
	maxTokens    int
}

type fakeLLM struct {
	embedErr   error
	answer     string
	chatErr    error
	chatFn     func(ctx context.Context) (string, error)
	embedCalls []string
	chatCalls  []chatCall
}

func (f *fakeLLM) Embed(ctx context.Context, text string) ([]float32, error) {
	f.embedCalls = append(f.embedCalls, text)
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeLLM) ChatCompletion(ctx context.Context, systemPrompt string, messages []entity.ChatMessage, maxTokens int) (string, error) {
	f.chatCalls = append(f.chatCalls, chatCall{systemPrompt: systemPrompt, messages: messages, maxTokens: maxTokens})
	if f.chatFn != nil {
		return f.chatFn(ctx)
	}
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.answer, nil
}

func (f *fakeLLM) lastUserPrompt() string {
	if len(f.chatCalls) == 0 {
		return ""
	}
	msgs := f.chatCalls[len(f.chatCalls)-1].messages
	return msgs[len(msgs)-1].Content
}

type weatherCall struct {
	location string
	lat, lon *float64
}

type fakeWeather struct {
	err   error
	calls []weatherCall
}

func (f *fakeWeather) GetWeather(ctx context.Context, location string, lat, lon *float64) (string, error) {
	f.calls = append(f.calls, weatherCall{location: location, lat: lat, lon: lon})
	if f.err != nil {
		return "", f.err
	}
	if location != "" {
		return "Sunny, 24°C in " + location, nil
	}
	return "Cloudy, 19°C", nil
}

type fakeStore struct {
	chunks []entity.DocumentChunk
	err    error
	k      int
	calls  int
}

func (f *fakeStore) NearestChunks(ctx context.Context, embedding []float32, k int) ([]entity.DocumentChunk, error) {
	f.calls++
	f.k = k
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks, nil
}
