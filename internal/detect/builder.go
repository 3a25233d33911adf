package detect

import (
	"github.com/MeKo-Tech/langtab/internal/data"
)

// Builder assembles a Detector with a fluent API. Zero configuration yields a
// detector over the embedded dataset with canonical weights.
type Builder struct {
	cfg     Config
	dataDir string
	freqDir string
	source  Source
}

func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithDataDir points the detector at an external dataset directory. Files
// missing there fall back to the embedded snapshot.
func (b *Builder) WithDataDir(dir string) *Builder {
	if dir != "" {
		b.dataDir = dir
	}
	return b
}

// WithFreqDir overrides only the frequency-list directory.
func (b *Builder) WithFreqDir(dir string) *Builder {
	if dir != "" {
		b.freqDir = dir
	}
	return b
}

// WithSource supplies a data source directly, bypassing dataset directories.
func (b *Builder) WithSource(source Source) *Builder {
	b.source = source
	return b
}

// WithWeights overrides the scoring weights. Negative values keep the current
// setting so partial overrides compose.
func (b *Builder) WithWeights(prior, freq, char float64) *Builder {
	if prior >= 0 {
		b.cfg.PriorWeight = prior
	}
	if freq >= 0 {
		b.cfg.FreqWeight = freq
	}
	if char >= 0 {
		b.cfg.CharWeight = char
	}
	return b
}

// WithTopK sets the default number of results.
func (b *Builder) WithTopK(k int) *Builder {
	if k > 0 {
		b.cfg.TopK = k
	}
	return b
}

// WithMaxCandidates bounds automatic candidate selection.
func (b *Builder) WithMaxCandidates(n int) *Builder {
	if n > 0 {
		b.cfg.MaxCandidates = n
	}
	return b
}

// Build validates the configuration and constructs the Detector.
func (b *Builder) Build() (*Detector, error) {
	source := b.source
	if source == nil {
		source = data.NewStore(data.ResolveConfig(b.dataDir, b.freqDir))
	}
	return New(source, b.cfg)
}
