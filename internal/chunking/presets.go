package chunking

type Preset struct {
	MinWordsPerShot     int  `json:"minWordsPerShot"`
	MaxWordsPerShot     int  `json:"maxWordsPerShot"`
	PreferNaturalBreaks bool `json:"preferNaturalBreaks"`
}

// ContentPresets holds the recommended word limits per content type.
var ContentPresets = map[ContentType]Preset{
	ContentChildrenBook: {MinWordsPerShot: 10, MaxWordsPerShot: 50, PreferNaturalBreaks: true},
	ContentLyrics:       {MinWordsPerShot: 5, MaxWordsPerShot: 30, PreferNaturalBreaks: true},
	ContentStory:        {MinWordsPerShot: 20, MaxWordsPerShot: 100, PreferNaturalBreaks: true},
	ContentCommercial:   {MinWordsPerShot: 10, MaxWordsPerShot: 40, PreferNaturalBreaks: true},
}

// WithPreset fills unset word limits from the preset for opts.ContentType.
// Explicit values always win.
func (opts ChunkingOptions) WithPreset() ChunkingOptions {
	p, ok := ContentPresets[opts.ContentType]
	if !ok {
		return opts
	}
	if opts.MinWordsPerShot == 0 {
		opts.MinWordsPerShot = p.MinWordsPerShot
	}
	if opts.MaxWordsPerShot == 0 {
		opts.MaxWordsPerShot = p.MaxWordsPerShot
	}
	if !opts.PreferNaturalBreaks {
		opts.PreferNaturalBreaks = p.PreferNaturalBreaks
	}
	return opts
}
