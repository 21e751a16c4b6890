package source

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown flattens a markdown document to plain text. Blocks are separated
// by blank lines, soft line breaks inside a paragraph are kept so lyric lines
// survive, and headings become bracketed section markers ("## Verse 1"
// becomes "[Verse 1]").
func Markdown(content string) string {
	content = normalizeNewlines(content)
	src := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if t := strings.TrimSpace(inlineText(node, src)); t != "" {
				blocks = append(blocks, "["+t+"]")
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			if t := strings.TrimSpace(inlineText(node, src)); t != "" {
				blocks = append(blocks, t)
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(blocks, "\n\n")
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	writeInline(&b, n, src)
	return b.String()
}

func writeInline(b *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.Label(src))
		default:
			writeInline(b, c, src)
		}
	}
}
