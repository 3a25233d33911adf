package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Index(t *testing.T) {
	store := NewStore(Config{})
	entries, err := store.Index()
	require.NoError(t, err)
	require.Len(t, entries, 30)

	assert.Equal(t, "ab", entries[0].Language, "index is ordered by language code")
	assert.Equal(t, "zu", entries[len(entries)-1].Language)

	en, err := store.Entry("en")
	require.NoError(t, err)
	assert.Equal(t, "English", en.Name)
	assert.Equal(t, "Latin", en.Script)
	assert.Equal(t, "ltr", en.Direction)
	assert.True(t, en.HasFrequency)

	ar, err := store.Entry("ar")
	require.NoError(t, err)
	assert.Equal(t, "rtl", ar.Direction)

	zh, err := store.Entry("zh")
	require.NoError(t, err)
	assert.Equal(t, "Mandarin", zh.Name)
}

func TestStore_Entry_Unknown(t *testing.T) {
	store := NewStore(Config{})
	_, err := store.Entry("xx")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestStore_IndexPosition(t *testing.T) {
	store := NewStore(Config{})

	mk, ok := store.IndexPosition("mk")
	require.True(t, ok)
	sr, ok := store.IndexPosition("sr")
	require.True(t, ok)
	assert.Less(t, mk, sr)

	ss, ok := store.IndexPosition("ss")
	require.True(t, ok)
	zu, ok := store.IndexPosition("zu")
	require.True(t, ok)
	assert.Less(t, ss, zu)

	_, ok = store.IndexPosition("xx")
	assert.False(t, ok)
}

func TestStore_AvailableLanguages(t *testing.T) {
	store := NewStore(Config{})
	codes, err := store.AvailableLanguages()
	require.NoError(t, err)
	require.Len(t, codes, 30)
	assert.Equal(t, "ab", codes[0])
	assert.Contains(t, codes, "en")
	assert.Contains(t, codes, "ja")
	assert.Contains(t, codes, "th")
}

func TestStore_CharIndex(t *testing.T) {
	store := NewStore(Config{})
	index, err := store.CharIndex()
	require.NoError(t, err)

	assert.Equal(t, []string{"pl"}, index["ż"])
	assert.Equal(t, []string{"ko"}, index["ㅏ"], "Hangul Jamo are indexed for syllable decomposition")
	assert.Equal(t, []string{"de"}, index["ß"])
	assert.NotContains(t, index, "7")
}

func TestStore_Scripts(t *testing.T) {
	store := NewStore(Config{})

	scripts, err := store.Scripts("en")
	require.NoError(t, err)
	assert.Equal(t, []string{"Latn"}, scripts)

	scripts, err = store.Scripts("sr")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cyrl"}, scripts)

	script, err := store.DefaultScript("ja")
	require.NoError(t, err)
	assert.Equal(t, "Jpan", script)

	_, err = store.Scripts("xx")
	assert.True(t, IsNotFound(err))
}

func TestStore_Alphabet(t *testing.T) {
	store := NewStore(Config{})

	record, err := store.Alphabet("en", "")
	require.NoError(t, err)
	assert.Equal(t, "en", record.Language)
	assert.Equal(t, "Latn", record.Script)
	assert.Len(t, record.Lowercase, 26)
	assert.Equal(t, "Hello, how are you?", record.HelloPhrase)

	explicit, err := store.Alphabet("en", "Latn")
	require.NoError(t, err)
	assert.Equal(t, record.Lowercase, explicit.Lowercase)
}

func TestStore_Alphabet_NotFound(t *testing.T) {
	store := NewStore(Config{})

	_, err := store.Alphabet("en", "Cyrl")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = store.Alphabet("xx", "")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	// Absence is cached; the second lookup must answer the same way.
	_, err = store.Alphabet("en", "Cyrl")
	assert.True(t, IsNotFound(err))
}

func TestStore_FrequencyList(t *testing.T) {
	store := NewStore(Config{})

	en, err := store.FrequencyList("en")
	require.NoError(t, err)
	assert.Equal(t, ModeWord, en.Mode)

	rank, ok := en.Rank("you")
	require.True(t, ok)
	assert.Equal(t, 1, rank)
	rank, ok = en.Rank("the")
	require.True(t, ok)
	assert.Equal(t, 3, rank)

	ja, err := store.FrequencyList("ja")
	require.NoError(t, err)
	assert.Equal(t, ModeBigram, ja.Mode)
	rank, ok = ja.Rank("です")
	require.True(t, ok)
	assert.Equal(t, 1, rank)
}

func TestStore_FrequencyList_Missing(t *testing.T) {
	store := NewStore(Config{})

	for _, lang := range []string{"zu", "ss", "ab"} {
		_, err := store.FrequencyList(lang)
		require.Error(t, err, lang)
		assert.True(t, IsNotFound(err), lang)
	}

	// Cached-absent path.
	_, err := store.FrequencyList("zu")
	assert.True(t, IsNotFound(err))
}

func TestStore_FrequencyTokens(t *testing.T) {
	store := NewStore(Config{})

	tokens, err := store.FrequencyTokens("en", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"you", "i", "the"}, tokens)

	all, err := store.FrequencyTokens("en", -1)
	require.NoError(t, err)
	assert.Greater(t, len(all), 100)

	same, err := store.FrequencyTokens("en", len(all)+10)
	require.NoError(t, err)
	assert.Len(t, same, len(all))
}

func TestStore_HelloPhrase(t *testing.T) {
	store := NewStore(Config{})
	assert.Equal(t, "Hello, how are you?", store.HelloPhrase("en"))
	assert.Equal(t, "Sawubona, unjani?", store.HelloPhrase("zu"))
	assert.Empty(t, store.HelloPhrase("xx"))
}

func TestStore_LanguageName(t *testing.T) {
	store := NewStore(Config{})

	name, ok := store.LanguageName("zh")
	require.True(t, ok)
	assert.Equal(t, "Mandarin", name)

	_, ok = store.LanguageName("xx")
	assert.False(t, ok)
}

func TestStore_HasFrequency(t *testing.T) {
	store := NewStore(Config{})

	assert.True(t, store.HasFrequency("en"))
	for _, lang := range []string{"ab", "hy", "ka", "ss", "zu"} {
		assert.False(t, store.HasFrequency(lang), lang)
	}
	assert.False(t, store.HasFrequency("xx"))
}

func TestStore_TopLetters(t *testing.T) {
	store := NewStore(Config{})

	letters, err := store.TopLetters("en", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "o", "t"}, letters)

	letters, err = store.TopLetters("ru", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"о", "е", "н"}, letters)

	_, err = store.TopLetters("xx", 3)
	assert.True(t, IsNotFound(err))
}

func TestStore_Warm(t *testing.T) {
	store := NewStore(Config{})
	require.NoError(t, store.Warm())

	// Everything Warm touched must now be cached and consistent.
	entries, err := store.Index()
	require.NoError(t, err)
	for _, entry := range entries {
		if entry.HasFrequency {
			_, err := store.FrequencyList(entry.Language)
			assert.NoError(t, err, entry.Language)
		}
	}
}

func TestStore_ExternalDirOverridesPerFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "alphabets"), 0o755))
	override := []byte(`{
		"language": "en", "script": "Latn",
		"lowercase": ["a", "b", "c"],
		"hello_how_are_you": "External override"
	}`)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "alphabets", "en_Latn.json"), override, 0o644))

	store := NewStore(Config{Dir: dir})

	record, err := store.Alphabet("en", "")
	require.NoError(t, err)
	assert.Equal(t, "External override", record.HelloPhrase)
	assert.Len(t, record.Lowercase, 3)

	// Files absent from the external directory fall back to the snapshot.
	entries, err := store.Index()
	require.NoError(t, err)
	assert.Len(t, entries, 30)

	de, err := store.Alphabet("de", "")
	require.NoError(t, err)
	assert.Contains(t, de.LowercaseSet(), "ß")
}

func TestStore_FreqDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "en.txt"), []byte("zzz\nyyy\n"), 0o644))

	store := NewStore(Config{FreqDir: dir})

	en, err := store.FrequencyList("en")
	require.NoError(t, err)
	rank, ok := en.Rank("zzz")
	require.True(t, ok)
	assert.Equal(t, 1, rank)
	_, ok = en.Rank("you")
	assert.False(t, ok)

	// Languages without an override file keep the embedded list.
	fr, err := store.FrequencyList("fr")
	require.NoError(t, err)
	rank, ok = fr.Rank("je")
	require.True(t, ok)
	assert.Equal(t, 1, rank)
}

func TestNewStore_MissingDirFallsBackToEmbedded(t *testing.T) {
	store := NewStore(Config{Dir: filepath.Join(t.TempDir(), "does-not-exist")})
	entries, err := store.Index()
	require.NoError(t, err)
	assert.Len(t, entries, 30)
}
