package advisory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/pkg/formatter"
	"github.com/nilecare/advisory-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

var placeholderSources = []string{"source1", "source2"}

// AdvisoryUsecase answers farming questions from the document store
type AdvisoryUsecase struct {
	cfg        config.AdvisoryConfig
	translator Translator
	llm        LLMConnector
	weather    WeatherConnector
	store      ChunkStore
	formatters FormatterFactory
	classifier *IntentClassifier
	now        func() time.Time
	logger     *zap.Logger
}

func NewUsecase(
	cfg config.AdvisoryConfig,
	translator Translator,
	llm LLMConnector,
	weather WeatherConnector,
	store ChunkStore,
	formatters FormatterFactory,
	logger *zap.Logger,
) *AdvisoryUsecase {
	return &AdvisoryUsecase{
		cfg:        cfg,
		translator: translator,
		llm:        llm,
		weather:    weather,
		store:      store,
		formatters: formatters,
		classifier: NewIntentClassifier(DefaultIntentRules),
		now:        time.Now,
		logger:     logger,
	}
}

// languages holds the language decisions made for one request
type languages struct {
	requested entity.LanguageCode
	detected  string
	target    string
}

// answerNeedsTranslation is true when the requester or the question is not English
func (l languages) answerNeedsTranslation() bool {
	return l.requested != entity.LangEnglish || l.detected != string(entity.LangEnglish)
}

// cannedNeedsTranslation is true only when both the requester and the question are not English
func (l languages) cannedNeedsTranslation() bool {
	return l.requested != entity.LangEnglish && l.detected != string(entity.LangEnglish)
}

// Ask runs the question through detection, intent matching, retrieval, generation and translation.
// The request must already be validated.
func (uc *AdvisoryUsecase) Ask(ctx context.Context, req *entity.AskRequest) (*entity.AskResponse, error) {
	req.Normalize()

	ctx = logger.AddFields(ctx,
		zap.String("lang", string(req.Lang)),
		zap.String("question", logger.Truncate(req.Question, 80)),
	)
	ctxzap.Info(ctx, "handling question")

	question, langs, err := uc.normalizeQuestion(ctx, req)
	if err != nil {
		return nil, err
	}

	if rule, ok := uc.classifier.Classify(question); ok {
		ctxzap.Info(ctx, "question short-circuited", zap.String("intent", string(rule.Intent)))

		answer := rule.Response
		if langs.cannedNeedsTranslation() {
			answer, err = uc.translate(ctx, answer, string(entity.WorkingLanguage), langs.target)
			if err != nil {
				return nil, err
			}
		}
		return &entity.AskResponse{Answer: answer, Sources: []string{}}, nil
	}

	chunks, err := uc.retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	docContext := joinChunks(chunks)
	if strings.TrimSpace(docContext) == "" {
		ctxzap.Info(ctx, "no relevant context found")
		return &entity.AskResponse{Answer: InsufficientContextAnswer, Sources: []string{}}, nil
	}

	docContext, weather, err := uc.augmentWithWeather(ctx, req, docContext)
	if err != nil {
		return nil, err
	}

	userPrompt := BuildUserPrompt(question, entity.LanguageName(entity.LanguageCode(langs.target)), docContext, weather)

	answer, err := uc.generate(ctx, userPrompt)
	if err != nil {
		return nil, err
	}

	if langs.answerNeedsTranslation() {
		answer, err = uc.translate(ctx, answer, string(entity.WorkingLanguage), langs.target)
		if err != nil {
			return nil, err
		}
	}

	ctxzap.Info(ctx, "question answered", zap.Int("chunks", len(chunks)), zap.Int("answer_length", len(answer)))

	return &entity.AskResponse{
		Answer:  answer,
		Sources: uc.sources(chunks),
	}, nil
}

// Export answers the question and renders the result in the requested file format
func (uc *AdvisoryUsecase) Export(ctx context.Context, req *entity.AskRequest, format entity.ResultFormat) (*entity.ExportedAnswer, error) {
	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, entity.NewServiceError(entity.KindValidation, err.Error(), err)
	}

	resp, err := uc.Ask(ctx, req)
	if err != nil {
		return nil, err
	}

	createdAt := uc.now()
	content, err := f.Format(formatter.Answer{
		Question:  req.Question,
		Answer:    resp.Answer,
		Sources:   resp.Sources,
		CreatedAt: createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("format answer as %s: %w", format, err)
	}

	return &entity.ExportedAnswer{
		Filename:    "advisory-answer-" + createdAt.UTC().Format("20060102-150405") + f.FileExtension(),
		ContentType: f.ContentType(),
		Content:     content,
	}, nil
}

// normalizeQuestion detects the question language and translates it to English at most once
func (uc *AdvisoryUsecase) normalizeQuestion(ctx context.Context, req *entity.AskRequest) (string, languages, error) {
	langs := languages{requested: req.Lang}

	callCtx, cancel := uc.callContext(ctx)
	detected, err := uc.translator.DetectLanguage(callCtx, req.Question)
	cancel()
	if err != nil {
		return "", langs, serviceError(entity.KindTranslationService, "language detection failed", err)
	}
	langs.detected = detected

	// An explicit non-English request wins; otherwise answer in the detected language
	langs.target = detected
	if req.Lang != entity.LangAuto && req.Lang != entity.LangEnglish {
		langs.target = string(req.Lang)
	}

	ctxzap.Debug(ctx, "language resolved", zap.String("detected", langs.detected), zap.String("target", langs.target))

	if detected == string(entity.WorkingLanguage) {
		return req.Question, langs, nil
	}

	src := detected
	if req.Lang != entity.LangAuto && req.Lang != entity.LangEnglish {
		src = string(req.Lang)
	}

	question, err := uc.translate(ctx, req.Question, src, string(entity.WorkingLanguage))
	if err != nil {
		return "", langs, err
	}

	return question, langs, nil
}

func (uc *AdvisoryUsecase) translate(ctx context.Context, text, src, dest string) (string, error) {
	if src == dest {
		return text, nil
	}

	callCtx, cancel := uc.callContext(ctx)
	defer cancel()

	out, err := uc.translator.Translate(callCtx, text, src, dest)
	if err != nil {
		return "", serviceError(entity.KindTranslationService, "translation failed", err)
	}
	return out, nil
}

func (uc *AdvisoryUsecase) retrieve(ctx context.Context, question string) ([]entity.DocumentChunk, error) {
	callCtx, cancel := uc.callContext(ctx)
	embedding, err := uc.llm.Embed(callCtx, question)
	cancel()
	if err != nil {
		return nil, serviceError(entity.KindEmbeddingService, "embedding failed", err)
	}

	callCtx, cancel = uc.callContext(ctx)
	defer cancel()

	chunks, err := uc.store.NearestChunks(callCtx, embedding, uc.cfg.KRetrieval)
	if err != nil {
		ctxzap.Error(ctx, "document retrieval failed", zap.Error(err))
		return nil, classifyStoreError(err)
	}

	ctxzap.Debug(ctx, "chunks retrieved", zap.Int("count", len(chunks)))

	return chunks, nil
}

// augmentWithWeather appends a section per weather source. Location and
// coordinates are independent, so both sections may be present.
func (uc *AdvisoryUsecase) augmentWithWeather(ctx context.Context, req *entity.AskRequest, docContext string) (string, string, error) {
	var reports []string

	if req.Location != "" {
		report, err := uc.fetchWeather(ctx, req.Location, nil, nil)
		if err != nil {
			return "", "", err
		}
		docContext += locationWeatherSection(req.Location, report)
		reports = append(reports, report)
	}

	if req.HasCoordinates() {
		report, err := uc.fetchWeather(ctx, "", req.Latitude, req.Longitude)
		if err != nil {
			return "", "", err
		}
		docContext += coordinatesWeatherSection(*req.Latitude, *req.Longitude, report)
		reports = append(reports, report)
	}

	return docContext, strings.Join(reports, "\n\n"), nil
}

func (uc *AdvisoryUsecase) fetchWeather(ctx context.Context, location string, lat, lon *float64) (string, error) {
	callCtx, cancel := uc.callContext(ctx)
	defer cancel()

	report, err := uc.weather.GetWeather(callCtx, location, lat, lon)
	if err != nil {
		return "", serviceError(entity.KindWeatherService, "weather lookup failed", err)
	}
	return report, nil
}

func (uc *AdvisoryUsecase) generate(ctx context.Context, userPrompt string) (string, error) {
	callCtx, cancel := uc.callContext(ctx)
	defer cancel()

	answer, err := uc.llm.ChatCompletion(callCtx, SystemPrompt(),
		[]entity.ChatMessage{{Role: entity.RoleUser, Content: userPrompt}}, uc.cfg.MaxTokens)
	if err != nil {
		return "", serviceError(entity.KindGenerationService, "answer generation failed", err)
	}

	return CleanAnswer(answer), nil
}

func (uc *AdvisoryUsecase) sources(chunks []entity.DocumentChunk) []string {
	if uc.cfg.SourcesMode != config.SourcesModeChunks {
		return append([]string(nil), placeholderSources...)
	}

	refs := make([]string, 0, len(chunks))
	for _, c := range chunks {
		refs = append(refs, c.SourceRef())
	}
	return refs
}

func (uc *AdvisoryUsecase) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.cfg.CallTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.cfg.CallTimeout)
}

func joinChunks(chunks []entity.DocumentChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Content)
	}
	return strings.Join(parts, "\n\n")
}
