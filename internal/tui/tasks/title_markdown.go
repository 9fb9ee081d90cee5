package tasks

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"listo/internal/tui/theme"
)

var titleParser parser.Parser = goldmark.New().Parser()

// renderTitle styles the inline markdown in a task title: emphasis, strong,
// code spans and links. Text that does not parse as a single paragraph
// (list markers, headings) is shown as written.
func renderTitle(src string, base lipgloss.Style) string {
	source := []byte(src)
	doc := titleParser.Parse(text.NewReader(source))
	para, ok := doc.FirstChild().(*ast.Paragraph)
	if !ok || para.NextSibling() != nil {
		return base.Render(src)
	}
	var b strings.Builder
	renderInline(&b, para, source, base)
	return b.String()
}

func renderInline(b *strings.Builder, n ast.Node, source []byte, style lipgloss.Style) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			b.WriteString(style.Render(string(node.Segment.Value(source))))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteString(style.Render(" "))
			}
		case *ast.String:
			b.WriteString(style.Render(string(node.Value)))
		case *ast.Emphasis:
			s := style.Italic(true)
			if node.Level >= 2 {
				s = style.Bold(true)
			}
			renderInline(b, node, source, s)
		case *ast.CodeSpan:
			renderInline(b, node, source, style.Inherit(theme.Code))
		case *ast.Link:
			renderInline(b, node, source, style.Inherit(theme.Link))
		case *ast.AutoLink:
			b.WriteString(style.Inherit(theme.Link).Render(string(node.Label(source))))
		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				b.WriteString(style.Render(string(seg.Value(source))))
			}
		default:
			renderInline(b, c, source, style)
		}
	}
}
