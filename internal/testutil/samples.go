package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleTexts holds short natural-language snippets keyed by ISO 639-1 code.
// The Latin-script entries lean on high-frequency words so identification
// stays unambiguous even for short inputs.
var sampleTexts = map[string]string{
	"en": "Hello, how are you? I think it is a good day and we have time to do what you want.",
	"de": "Hallo, wie geht es dir? Ich habe nicht viel Zeit, aber das ist nicht so schlimm.",
	"fr": "Bonjour, comment allez-vous ? Je ne peux pas venir, mais ce n'est pas grave.",
	"es": "Hola, ¿cómo estás? No puedo ir hoy, pero gracias por todo lo que has hecho.",
	"it": "Ciao, come stai? Non posso venire oggi, ma grazie di tutto quello che hai fatto.",
	"pl": "Cześć, jak się masz? Nie mogę dziś przyjść, ale dziękuję za wszystko.",
	"tr": "Merhaba, nasılsın? Bugün gelemiyorum ama her şey için teşekkür ederim.",
	"ru": "Привет, как дела? Я не знаю, что это, но я не могу прийти сегодня.",
	"el": "Γεια σου, τι κάνεις; Δεν μπορώ να έρθω σήμερα, αλλά ευχαριστώ για όλα.",
	"ar": "مرحبا، كيف حالك؟ لا أستطيع أن آتي اليوم ولكن شكرا على كل شيء.",
	"ja": "こんにちは、お元気ですか。今日は行けませんが、いろいろありがとうございます。",
	"ko": "안녕하세요, 잘 지내세요? 오늘은 갈 수 없지만 모든 것에 감사합니다.",
	"zh": "你好，你好吗？我今天不能来，但是谢谢你所做的一切。",
	"zu": "Sawubona, unjani?",
}

// SampleText returns a short snippet in the given language. It fails the test
// for languages without a registered sample.
func SampleText(t *testing.T, lang string) string {
	t.Helper()

	text, ok := sampleTexts[lang]
	require.True(t, ok, "no sample text registered for language %q", lang)
	return text
}

// SampleLanguages lists the languages that have registered sample texts.
func SampleLanguages() []string {
	langs := make([]string, 0, len(sampleTexts))
	for lang := range sampleTexts {
		langs = append(langs, lang)
	}
	return langs
}

// WriteTextFile writes content to dir/name and returns the full path.
func WriteTextFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// WriteSampleFiles writes one <lang>.txt file per requested language into dir
// and returns the paths in the same order.
func WriteSampleFiles(t *testing.T, dir string, langs ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(langs))
	for _, lang := range langs {
		paths = append(paths, WriteTextFile(t, dir, lang+".txt", SampleText(t, lang)))
	}
	return paths
}
