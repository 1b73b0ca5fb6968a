package prompts

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

// SystemPromptData feeds the planner system prompt template.
type SystemPromptData struct {
	Language       string // English name of the response language
	ContextSummary string // optional session-context summary
	Entities       string // optional extracted-entity markdown
}

// RenderSystemPrompt renders the assistant's system prompt. The same prompt
// serves the single-shot path and the tool-calling loop; the tool section is
// simply inert when no tools are attached to the call.
func RenderSystemPrompt(data SystemPromptData) (string, error) {
	return render("templates/planner_system.md", data)
}

// RenderTranslationPrompt renders the system and user prompts for the
// translation gate.
func RenderTranslationPrompt(languageName, text string) (systemPrompt, userPrompt string, err error) {
	systemPrompt, err = render("templates/translate_system.md", struct{ Language string }{languageName})
	if err != nil {
		return "", "", err
	}
	userPrompt, err = render("templates/translate_user.md", struct{ Text string }{text})
	if err != nil {
		return "", "", err
	}
	return systemPrompt, userPrompt, nil
}

func render(name string, data any) (string, error) {
	content, err := templatesFS.ReadFile(name)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
