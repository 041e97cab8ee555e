package blockdoc

import (
	"strings"
)

// Builder converts AI-produced Markdown into a document node tree so
// generated content can be inserted into the editor surface.
type Builder struct{}

// NewBuilder creates a new builder instance
func NewBuilder() *Builder {
	return &Builder{}
}

// FromMarkdown parses markdown text into a document tree.
// It recognizes headings, bullet/numbered/check lists, tables,
// horizontal rules, fenced code blocks (kept as diagram nodes) and
// paragraphs with inline marks.
func (b *Builder) FromMarkdown(markdown string) DocumentRoot {
	lines := strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n")

	root := Node{Type: TypeRoot, Version: 1}

	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			i++

		case strings.HasPrefix(trimmed, "```"):
			node, next := b.parseFence(lines, i)
			root.Children = append(root.Children, node)
			i = next

		case trimmed == "---" || trimmed == "***":
			root.Children = append(root.Children, Node{Type: TypeHorizontalRule, Version: 1})
			i++

		case strings.HasPrefix(trimmed, "#"):
			root.Children = append(root.Children, b.parseHeading(trimmed))
			i++

		case strings.HasPrefix(trimmed, "|"):
			node, next := b.parseTable(lines, i)
			root.Children = append(root.Children, node)
			i = next

		case isListLine(trimmed):
			node, next := b.parseList(lines, i, indentOf(line))
			root.Children = append(root.Children, node)
			i = next

		default:
			root.Children = append(root.Children, Node{
				Type:     TypeParagraph,
				Version:  1,
				Children: parseInline(trimmed),
			})
			i++
		}
	}

	if len(root.Children) == 0 {
		return EmptyDocument()
	}
	return DocumentRoot{Root: root}
}

func (b *Builder) parseHeading(line string) Node {
	level := 0
	for level < len(line) && line[level] == '#' && level < 6 {
		level++
	}
	text := strings.TrimSpace(line[level:])
	return Node{
		Type:     TypeHeading,
		Version:  1,
		Tag:      "h" + string(rune('0'+level)),
		Children: parseInline(text),
	}
}

func (b *Builder) parseFence(lines []string, start int) (Node, int) {
	lang := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[start]), "```"))

	var body []string
	i := start + 1
	for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
		body = append(body, lines[i])
		i++
	}
	if i < len(lines) {
		i++ // consume closing fence
	}

	code := strings.Join(body, "\n")
	if lang == "" {
		lang = "diagram"
	}
	return Node{
		Type:        TypeDiagram,
		Version:     1,
		DiagramType: lang,
		Code:        code,
	}, i
}

func (b *Builder) parseTable(lines []string, start int) (Node, int) {
	table := Node{Type: TypeTable, Version: 1}

	i := start
	rowIdx := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "|") {
			break
		}
		// Skip the separator row (|---|---|)
		if isTableSeparator(trimmed) {
			i++
			continue
		}

		row := Node{Type: TypeTableRow, Version: 1}
		cells := splitTableRow(trimmed)
		for _, cell := range cells {
			cellNode := Node{Type: TypeTableCell, Version: 1, Children: parseInline(cell)}
			if rowIdx == 0 {
				cellNode.HeaderState = 1
			}
			row.Children = append(row.Children, cellNode)
		}
		table.Children = append(table.Children, row)
		rowIdx++
		i++
	}

	return table, i
}

func (b *Builder) parseList(lines []string, start, baseIndent int) (Node, int) {
	first := strings.TrimSpace(lines[start])
	list := Node{Type: TypeList, Version: 1, ListType: listTypeOf(first)}
	if list.ListType == "number" {
		list.Start = 1
	}

	i := start
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !isListLine(trimmed) {
			break
		}

		indent := indentOf(line)
		if indent < baseIndent {
			break
		}
		if indent > baseIndent {
			// Nested list becomes a child of the previous listitem
			nested, next := b.parseList(lines, i, indent)
			if n := len(list.Children); n > 0 {
				list.Children[n-1].Children = append(list.Children[n-1].Children, nested)
			} else {
				list.Children = append(list.Children, Node{Type: TypeListItem, Version: 1, Children: []Node{nested}})
			}
			i = next
			continue
		}

		item := Node{Type: TypeListItem, Version: 1}
		content := trimmed
		switch {
		case strings.HasPrefix(trimmed, "- [x] "), strings.HasPrefix(trimmed, "- [X] "):
			item.Checked = true
			content = trimmed[6:]
		case strings.HasPrefix(trimmed, "- [ ] "):
			content = trimmed[6:]
		case strings.HasPrefix(trimmed, "- "):
			content = trimmed[2:]
		case strings.HasPrefix(trimmed, "* "):
			content = trimmed[2:]
		default:
			// numbered: strip "N. "
			if dot := strings.Index(trimmed, ". "); dot > 0 {
				content = trimmed[dot+2:]
			}
		}
		item.Children = parseInline(content)
		list.Children = append(list.Children, item)
		i++
	}

	return list, i
}

// parseInline tokenizes inline marks: **bold**, _italic_ or *italic*,
// `code`, ~~strike~~ and [text](url) links. Unclosed marks fall back
// to literal text.
func parseInline(text string) []Node {
	var nodes []Node
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			nodes = append(nodes, Node{Type: TypeText, Version: 1, Text: plain.String()})
			plain.Reset()
		}
	}

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		rest := string(runes[i:])

		if mark, marker, ok := matchMark(rest); ok {
			flush()
			nodes = append(nodes, Node{Type: TypeText, Version: 1, Text: mark.inner, Format: mark.format})
			i += len([]rune(marker)) // marker contains the full matched span
			continue
		}

		if strings.HasPrefix(rest, "[") {
			if node, span, ok := matchLink(rest); ok {
				flush()
				nodes = append(nodes, node)
				i += span
				continue
			}
		}

		plain.WriteRune(runes[i])
		i++
	}
	flush()

	if nodes == nil {
		nodes = []Node{{Type: TypeText, Version: 1, Text: ""}}
	}
	return nodes
}

type inlineMark struct {
	inner  string
	format int
}

// matchMark tries each delimiter at the start of s; returns the mark,
// the full matched span, and whether it matched.
func matchMark(s string) (inlineMark, string, bool) {
	delims := []struct {
		token  string
		format int
	}{
		{"**", FormatBold},
		{"~~", FormatStrikethrough},
		{"`", FormatCode},
		{"_", FormatItalic},
		{"*", FormatItalic},
	}

	for _, d := range delims {
		if !strings.HasPrefix(s, d.token) {
			continue
		}
		rest := s[len(d.token):]
		end := strings.Index(rest, d.token)
		if end <= 0 {
			continue
		}
		inner := rest[:end]
		span := d.token + inner + d.token
		return inlineMark{inner: inner, format: d.format}, span, true
	}
	return inlineMark{}, "", false
}

// matchLink parses [text](url); returns the node and rune span.
func matchLink(s string) (Node, int, bool) {
	closeBracket := strings.Index(s, "](")
	if closeBracket <= 0 {
		return Node{}, 0, false
	}
	closeParen := strings.Index(s[closeBracket:], ")")
	if closeParen < 0 {
		return Node{}, 0, false
	}
	text := s[1:closeBracket]
	url := s[closeBracket+2 : closeBracket+closeParen]
	span := closeBracket + closeParen + 1

	return Node{
		Type:     TypeLink,
		Version:  1,
		URL:      url,
		Children: []Node{{Type: TypeText, Version: 1, Text: text}},
	}, len([]rune(s[:span])), true
}

func isListLine(trimmed string) bool {
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return true
	}
	// numbered: "1. ", "12. "
	dot := strings.Index(trimmed, ". ")
	if dot <= 0 || dot > 3 {
		return false
	}
	for _, r := range trimmed[:dot] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func listTypeOf(trimmed string) string {
	switch {
	case strings.HasPrefix(trimmed, "- ["):
		return "check"
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		return "bullet"
	default:
		return "number"
	}
}

func indentOf(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' {
			count++
		} else if r == '\t' {
			count += 2
		} else {
			break
		}
	}
	return count / 2
}

func isTableSeparator(trimmed string) bool {
	inner := strings.Trim(trimmed, "|")
	for _, cell := range strings.Split(inner, "|") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		for _, r := range cell {
			if r != '-' && r != ':' {
				return false
			}
		}
	}
	return true
}

func splitTableRow(trimmed string) []string {
	inner := strings.Trim(trimmed, "|")
	parts := strings.Split(inner, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
