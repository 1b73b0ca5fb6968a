package language

// Language is an ISO-639-1 code from the assistant's supported set.
type Language string

const (
	English Language = "en"
	German  Language = "de"
	French  Language = "fr"
	Italian Language = "it"
	Chinese Language = "zh"
	Hindi   Language = "hi"
)

var names = map[Language]string{
	English: "English",
	German:  "German",
	French:  "French",
	Italian: "Italian",
	Chinese: "Chinese",
	Hindi:   "Hindi",
}

// All returns the supported languages in a stable order.
func All() []Language {
	return []Language{English, German, French, Italian, Chinese, Hindi}
}

// Supported reports whether code is one of the six supported languages.
func Supported(code string) bool {
	_, ok := names[Language(code)]
	return ok
}

// LatinScript reports whether the language is written in Latin script.
// Entity-extraction dictionaries are Latin-script centric; non-Latin
// languages go through the translation gate first.
func (l Language) LatinScript() bool {
	return l != Chinese && l != Hindi
}

// Name returns the English name of the language, used in prompts to
// instruct the model which language to answer in.
func (l Language) Name() string {
	if n, ok := names[l]; ok {
		return n
	}
	return "English"
}
