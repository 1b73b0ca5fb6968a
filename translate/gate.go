package translate

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/transitwise/travel-agent/language"
	"github.com/transitwise/travel-agent/llm"
	"github.com/transitwise/travel-agent/prompts"
	"go.uber.org/zap"
)

// Required reports whether queries in lang need an English translation
// before entity extraction. The extraction dictionaries are Latin-script
// centric, so only the non-Latin languages pass the gate.
func Required(lang language.Language) bool {
	return !lang.LatinScript()
}

// Translator converts user text to English ahead of entity extraction.
type Translator interface {
	TranslateToEnglish(ctx context.Context, text string, lang language.Language) (string, error)
}

// Apply runs the gate: Latin-script input passes through untouched, and any
// failure (no translator configured, backend error) degrades to the original
// text with a warning rather than blocking the pipeline.
func Apply(ctx context.Context, tr Translator, text string, lang language.Language) string {
	if !Required(lang) {
		return text
	}
	if tr == nil {
		logger.Get().Warn("no translator configured, extracting from untranslated text",
			zap.String("language", string(lang)))
		return text
	}

	translated, err := tr.TranslateToEnglish(ctx, text, lang)
	if err != nil {
		logger.Get().Warn("translation failed, falling back to original text",
			zap.String("language", string(lang)), zap.Error(err))
		return text
	}
	if strings.TrimSpace(translated) == "" {
		return text
	}
	return translated
}

// LLMTranslator translates with a small chat-completion model.
type LLMTranslator struct {
	client llm.Client
}

func NewLLMTranslator(client llm.Client) *LLMTranslator {
	return &LLMTranslator{client: client}
}

func (t *LLMTranslator) TranslateToEnglish(ctx context.Context, text string, lang language.Language) (string, error) {
	system, user, err := prompts.RenderTranslationPrompt(lang.Name(), text)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	err = t.client.GenerateInference(ctx,
		[]llm.Message{{Role: "user", Content: user}},
		func(chunk string) error {
			out.WriteString(chunk)
			return nil
		},
		llm.WithSystemPrompt(system),
		llm.WithTemperature(0.0),
		llm.WithMaxTokens(1024),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}
