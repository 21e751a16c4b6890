package chunking

import (
	"fmt"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"
)

const greedyText = "Alpha one, beta two. Gamma three! Delta four, epsilon five."

func TestGenerateChunks_SingleChunkFloor(t *testing.T) {
	c := New("  Hello world. Goodbye world.  ", ModeHybrid)

	for _, target := range []int{1, 0, -3} {
		chunks := c.GenerateChunks(ChunkingOptions{TargetShotCount: target})
		if len(chunks) != 1 {
			t.Fatalf("target %d: got %d chunks, want 1", target, len(chunks))
		}
		ch := chunks[0]
		if ch.Text != "Hello world. Goodbye world." {
			t.Errorf("target %d: Text = %q", target, ch.Text)
		}
		if ch.ID != "shot_1" || ch.BoundaryScore != 10 {
			t.Errorf("target %d: chunk = %+v", target, ch)
		}
		if ch.StartPos != 0 || ch.EndPos != len(c.Text()) {
			t.Errorf("target %d: span = [%d,%d)", target, ch.StartPos, ch.EndPos)
		}
	}
}

func TestGenerateChunks_EmptyText(t *testing.T) {
	c := New(" \n\t ", ModeHybrid)
	if got := c.GenerateChunks(ChunkingOptions{TargetShotCount: 1}); len(got) != 0 {
		t.Fatalf("got %d chunks for blank input, want 0", len(got))
	}
	if got := c.GenerateChunks(ChunkingOptions{TargetShotCount: 5}); len(got) != 0 {
		t.Fatalf("got %d chunks for blank input, want 0", len(got))
	}
	if got := c.Boundaries(); len(got) != 0 {
		t.Fatalf("got %d boundaries for blank input, want 0", len(got))
	}
}

func TestGenerateChunks_GreedyTopK(t *testing.T) {
	c := New(greedyText, ModePunctuation)

	chunks := c.GenerateChunks(ChunkingOptions{TargetShotCount: 3})
	want := []ShotChunk{
		{ID: "shot_1", Text: "Alpha one, beta two.", StartPos: 0, EndPos: 20, BoundaryScore: 5},
		{ID: "shot_2", Text: "Gamma three!", StartPos: 21, EndPos: 33, BoundaryScore: 4},
		{ID: "shot_3", Text: "Delta four, epsilon five.", StartPos: 34, EndPos: len(greedyText), BoundaryScore: 5},
	}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d: %+v", len(chunks), len(want), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, chunks[i], want[i])
		}
	}
}

func TestGenerateChunks_TiesKeepEarlierBoundary(t *testing.T) {
	c := New(greedyText, ModePunctuation)

	chunks := c.GenerateChunks(ChunkingOptions{TargetShotCount: 4})
	want := []string{"Alpha one,", "beta two.", "Gamma three!", "Delta four, epsilon five."}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i, w := range want {
		if chunks[i].Text != w {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i].Text, w)
		}
	}
}

func TestGenerateChunks_MoreShotsThanBoundaries(t *testing.T) {
	c := New(greedyText, ModePunctuation)
	chunks := c.GenerateChunks(ChunkingOptions{TargetShotCount: 10})
	if len(chunks) != 5 {
		t.Fatalf("got %d chunks, want 5", len(chunks))
	}
}

func TestGenerateChunks_ParsingModeOverride(t *testing.T) {
	c := New("Alpha one, beta two. Gamma three!", ModeLines)

	if got := c.GenerateChunks(ChunkingOptions{TargetShotCount: 2}); len(got) != 1 {
		t.Fatalf("lines mode: got %d chunks, want 1", len(got))
	}
	got := c.GenerateChunks(ChunkingOptions{TargetShotCount: 2, ParsingMode: ModePunctuation})
	if len(got) != 2 {
		t.Fatalf("punctuation override: got %d chunks, want 2", len(got))
	}
	if got[0].Text != "Alpha one, beta two." {
		t.Errorf("first chunk = %q", got[0].Text)
	}
	if c.Mode() != ModeLines {
		t.Errorf("override changed chunker mode to %s", c.Mode())
	}
}

func TestGenerateChunks_Properties(t *testing.T) {
	texts := []string{
		greedyText,
		"Once upon a time, in a quiet village, there lived a girl named Mira. She loved the sea!\n\nEvery morning she walked to the shore; the waves whispered secrets. \"Come closer,\" they said.\n\nYears later, the village was gone. Only the lighthouse remained.",
		"[VERSE 1]\nI walk alone tonight\nUnder the city light\nMy heart is full of love\nStars shining above\n\n[CHORUS]\nHold on, hold on\nUntil the dawn\n\n[Bridge] fear and hope\nWe learn to cope",
		"Café au lait, s'il vous plaît. Zoë smiled… Then the storm came; everything changed.",
		"no punctuation at all just a long run of words without any breaks whatsoever",
	}

	for ti, text := range texts {
		for _, mode := range []ParsingMode{ModeHybrid, ModeLines, ModePunctuation} {
			c := New(text, mode)
			for target := 1; target <= 12; target++ {
				name := fmt.Sprintf("text%d/%s/%d", ti, mode, target)
				t.Run(name, func(t *testing.T) {
					checkChunkInvariants(t, c.Text(), c.GenerateChunks(ChunkingOptions{TargetShotCount: target}), target)
				})
			}
		}
	}
}

func checkChunkInvariants(t *testing.T, text string, chunks []ShotChunk, target int) {
	t.Helper()

	if len(chunks) == 0 {
		t.Fatal("no chunks for non-empty text")
	}
	if len(chunks) > max(target, 1) {
		t.Fatalf("got %d chunks, more than target %d", len(chunks), target)
	}

	var joined []string
	prevEnd := 0
	for i, ch := range chunks {
		if ch.ID != fmt.Sprintf("shot_%d", i+1) {
			t.Errorf("chunk %d ID = %q", i, ch.ID)
		}
		if ch.Text == "" {
			t.Fatalf("chunk %d is empty", i)
		}
		if ch.StartPos < prevEnd || ch.EndPos <= ch.StartPos || ch.EndPos > len(text) {
			t.Fatalf("chunk %d span [%d,%d) invalid after %d", i, ch.StartPos, ch.EndPos, prevEnd)
		}
		if strings.TrimSpace(text[prevEnd:ch.StartPos]) != "" {
			t.Fatalf("content skipped before chunk %d: %q", i, text[prevEnd:ch.StartPos])
		}
		if got := strings.TrimSpace(text[ch.StartPos:ch.EndPos]); got != ch.Text {
			t.Fatalf("chunk %d text %q does not match span %q", i, ch.Text, got)
		}
		if ch.StartPos > 0 {
			r, _ := utf8.DecodeLastRuneInString(text[:ch.StartPos])
			if !unicode.IsSpace(r) {
				t.Fatalf("chunk %d starts inside a word at %d", i, ch.StartPos)
			}
		}
		if ch.EndPos < len(text) {
			r, _ := utf8.DecodeRuneInString(text[ch.EndPos:])
			if !unicode.IsSpace(r) {
				t.Fatalf("chunk %d ends inside a word at %d", i, ch.EndPos)
			}
		}
		joined = append(joined, strings.Fields(ch.Text)...)
		prevEnd = ch.EndPos
	}

	if strings.TrimSpace(text[prevEnd:]) != "" {
		t.Fatalf("content dropped after last chunk: %q", text[prevEnd:])
	}
	if got, want := strings.Join(joined, " "), strings.Join(strings.Fields(text), " "); got != want {
		t.Fatalf("chunks do not reconstruct the text:\n got %q\nwant %q", got, want)
	}
}

func TestSentences(t *testing.T) {
	c := New("It rained. Then it stopped! Was it over? yes.", ModeHybrid)
	want := []string{"It rained.", "Then it stopped!", "Was it over? yes."}

	got := c.Sentences()
	if len(got) != len(want) {
		t.Fatalf("got %d sentences %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSuggestShotCounts(t *testing.T) {
	c := New("The city sleeps.\n\nA stranger arrives.\n\nEverything changes.", ModeHybrid)

	got := c.SuggestShotCounts()
	want := []struct{ count, confidence int }{{3, 8}, {3, 7}, {1, 6}}
	if len(got) != len(want) {
		t.Fatalf("got %d suggestions, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Count != w.count || got[i].Confidence != w.confidence {
			t.Errorf("suggestion %d = %+v, want count %d confidence %d", i, got[i], w.count, w.confidence)
		}
		if got[i].Reason == "" {
			t.Errorf("suggestion %d has no reason", i)
		}
	}
}

func TestSuggestShotCounts_WordDensityCap(t *testing.T) {
	c := New(strings.Repeat("word ", 600), ModeHybrid)

	got := c.SuggestShotCounts()
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1: %+v", len(got), got)
	}
	if got[0].Count != maxSuggestedShots {
		t.Fatalf("Count = %d, want %d", got[0].Count, maxSuggestedShots)
	}
}

func TestSuggestShotCounts_Empty(t *testing.T) {
	if got := New("", ModeHybrid).SuggestShotCounts(); len(got) != 0 {
		t.Fatalf("got %d suggestions for empty text", len(got))
	}
}
