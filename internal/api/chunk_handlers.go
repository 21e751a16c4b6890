package api

import (
	"net/http"

	"github.com/directorspalette/palette-agent/internal/chunking"
	"github.com/directorspalette/palette-agent/internal/source"
)

func (in TextInput) chunker(defaultMode chunking.ParsingMode) *chunking.TextChunker {
	text := in.Text
	if in.InputFormat == string(source.FormatMarkdown) {
		text = source.Markdown(text)
	}
	mode := defaultMode
	if in.ParsingMode != "" {
		mode = chunking.ParseMode(in.ParsingMode)
	}
	return chunking.New(text, mode)
}

func chunksHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChunkRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		opts := chunking.ChunkingOptions{
			TargetShotCount:     req.TargetShotCount,
			MinWordsPerShot:     req.MinWordsPerShot,
			MaxWordsPerShot:     req.MaxWordsPerShot,
			PreferNaturalBreaks: req.PreferNaturalBreaks,
			ContentType:         chunking.ContentType(req.ContentType),
		}
		chunks := req.chunker(cfg.Defaults.ParsingMode).GenerateChunks(opts)

		WriteJSON(w, http.StatusOK, ChunkResponse{
			Chunks: chunks,
			Report: chunking.Analyze(chunks, opts),
		})
	}
}

func boundariesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TextInput
		if !decodeRequest(w, r, &req) {
			return
		}

		c := req.chunker(cfg.Defaults.ParsingMode)
		boundaries := c.Boundaries()
		if boundaries == nil {
			boundaries = []chunking.TextBoundary{}
		}
		WriteJSON(w, http.StatusOK, BoundariesResponse{
			ParsingMode: c.Mode(),
			Boundaries:  boundaries,
		})
	}
}

func suggestionsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TextInput
		if !decodeRequest(w, r, &req) {
			return
		}

		suggestions := req.chunker(cfg.Defaults.ParsingMode).SuggestShotCounts()
		if suggestions == nil {
			suggestions = []chunking.ShotCountSuggestion{}
		}
		WriteJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
	}
}
