package tokenize

// Precomposed Hangul syllables occupy U+AC00..U+D7A3 and decompose
// arithmetically into a leading consonant, a vowel, and an optional trailing
// consonant. The character index is keyed by compatibility Jamo, so syllable
// characters must be decomposed before lookup.
const (
	hangulSyllableBase = 0xAC00
	hangulSyllableLast = 0xD7A3

	jamoVowelCount    = 21
	jamoTrailingCount = 28
)

// Compatibility Jamo (U+3131..U+3163) for each decomposition index.
var (
	jamoLeading = []rune{
		'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
		'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
	}
	jamoVowel = []rune{
		'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ',
		'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ',
		'ㅣ',
	}
	// Index 0 means "no trailing consonant" and is skipped.
	jamoTrailing = []rune{
		0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ',
		'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ',
		'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
	}
)

// IsHangulSyllable reports whether r is a precomposed Hangul syllable.
func IsHangulSyllable(r rune) bool {
	return r >= hangulSyllableBase && r <= hangulSyllableLast
}

// DecomposeHangul returns the compatibility Jamo making up a precomposed
// Hangul syllable: leading consonant, vowel, and trailing consonant when
// present. Non-syllable input returns nil.
func DecomposeHangul(r rune) []rune {
	if !IsHangulSyllable(r) {
		return nil
	}
	index := r - hangulSyllableBase
	leading := index / (jamoVowelCount * jamoTrailingCount)
	vowel := (index % (jamoVowelCount * jamoTrailingCount)) / jamoTrailingCount
	trailing := index % jamoTrailingCount

	jamo := []rune{jamoLeading[leading], jamoVowel[vowel]}
	if trailing != 0 {
		jamo = append(jamo, jamoTrailing[trailing])
	}
	return jamo
}
