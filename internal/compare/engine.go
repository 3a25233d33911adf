package compare

import (
	"slices"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/pemistahl/lingua-go"

	"github.com/MeKo-Tech/langtab/internal/detect"
)

// Guess is a single engine's answer for one text. A zero Guess means the
// engine could not identify the language.
type Guess struct {
	Language   string
	Confidence float64
}

// Engine identifies the language of a text and reports an ISO 639-1 code.
type Engine interface {
	Name() string
	Identify(text string) Guess
}

// DefaultEngines returns the standard comparison set: the frequency-table
// detector plus the lingua-go and whatlanggo reference engines, all
// restricted to the same candidate codes.
func DefaultEngines(detector *detect.Detector, codes []string) []Engine {
	return []Engine{
		NewTableEngine(detector, codes),
		NewLinguaEngine(codes),
		NewWhatlangEngine(codes),
	}
}

type tableEngine struct {
	detector   *detect.Detector
	candidates []string
}

// NewTableEngine wraps the frequency-table detector in the Engine interface.
// candidates restricts detection to the given codes; nil means automatic
// candidate selection.
func NewTableEngine(detector *detect.Detector, candidates []string) Engine {
	return &tableEngine{detector: detector, candidates: candidates}
}

func (e *tableEngine) Name() string { return "langtab" }

func (e *tableEngine) Identify(text string) Guess {
	results, err := e.detector.Detect(text, detect.Options{Candidates: e.candidates, TopK: 1})
	if err != nil || len(results) == 0 {
		return Guess{}
	}
	return Guess{Language: results[0].Language, Confidence: results[0].Score}
}

type linguaEngine struct {
	detector lingua.LanguageDetector
}

// NewLinguaEngine builds the lingua-go reference engine. codes restricts the
// model to the given ISO 639-1 languages; codes that lingua does not support
// are skipped, and fewer than two usable codes fall back to all languages.
func NewLinguaEngine(codes []string) Engine {
	builder := lingua.NewLanguageDetectorBuilder()
	if langs := linguaLanguages(codes); len(langs) >= 2 {
		builder = builder.FromLanguages(langs...)
	} else {
		builder = builder.FromAllLanguages()
	}
	return &linguaEngine{detector: builder.Build()}
}

func linguaLanguages(codes []string) []lingua.Language {
	if len(codes) == 0 {
		return nil
	}

	byCode := make(map[string]lingua.Language)
	for _, lang := range lingua.AllLanguages() {
		byCode[strings.ToLower(lang.IsoCode639_1().String())] = lang
	}

	langs := make([]lingua.Language, 0, len(codes))
	for _, code := range codes {
		if lang, ok := byCode[strings.ToLower(code)]; ok {
			langs = append(langs, lang)
		}
	}
	return langs
}

func (e *linguaEngine) Name() string { return "lingua" }

func (e *linguaEngine) Identify(text string) Guess {
	language, ok := e.detector.DetectLanguageOf(text)
	if !ok {
		return Guess{}
	}

	guess := Guess{Language: strings.ToLower(language.IsoCode639_1().String())}
	for _, cv := range e.detector.ComputeLanguageConfidenceValues(text) {
		if cv.Language() == language {
			guess.Confidence = cv.Value()
			break
		}
	}
	return guess
}

type whatlangEngine struct {
	options  whatlanggo.Options
	restrict bool
}

// NewWhatlangEngine builds the whatlanggo reference engine, optionally
// whitelisted to the given ISO 639-1 codes.
func NewWhatlangEngine(codes []string) Engine {
	engine := &whatlangEngine{}
	if len(codes) == 0 {
		return engine
	}

	lowered := make([]string, len(codes))
	for i, code := range codes {
		lowered[i] = strings.ToLower(code)
	}

	whitelist := make(map[whatlanggo.Lang]bool)
	for lang := range whatlanggo.Langs {
		if slices.Contains(lowered, lang.Iso6391()) {
			whitelist[lang] = true
		}
	}
	if len(whitelist) > 0 {
		engine.options = whatlanggo.Options{Whitelist: whitelist}
		engine.restrict = true
	}
	return engine
}

func (e *whatlangEngine) Name() string { return "whatlang" }

func (e *whatlangEngine) Identify(text string) Guess {
	var info whatlanggo.Info
	if e.restrict {
		info = whatlanggo.DetectWithOptions(text, e.options)
	} else {
		info = whatlanggo.Detect(text)
	}

	code := info.Lang.Iso6391()
	if code == "" {
		return Guess{}
	}
	return Guess{Language: code, Confidence: info.Confidence}
}
