package blockdoc

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parser handles document JSON to Markdown / plain text conversion
type Parser struct{}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Decode parses a serialized document JSON string into a node tree.
func Decode(jsonContent string) (DocumentRoot, error) {
	var root DocumentRoot
	if err := json.Unmarshal([]byte(jsonContent), &root); err != nil {
		return DocumentRoot{}, fmt.Errorf("failed to parse document json: %w", err)
	}
	if root.Root.Type != TypeRoot {
		return DocumentRoot{}, fmt.Errorf("document json has no root node")
	}
	return root, nil
}

// Encode serializes a node tree back to its JSON form.
func Encode(root DocumentRoot) (string, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

// DecodeOrEmpty parses stored content; malformed JSON degrades to an
// empty document instead of propagating the error.
func DecodeOrEmpty(jsonContent string) DocumentRoot {
	root, err := Decode(strings.TrimSpace(jsonContent))
	if err != nil {
		return EmptyDocument()
	}
	return root
}

// ToMarkdown converts a serialized document JSON string to Markdown
func (p *Parser) ToMarkdown(jsonContent string) (string, error) {
	root, err := Decode(jsonContent)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	p.walkNode(root.Root, &sb, 0)
	return sb.String(), nil
}

// PlainText is a convenience function extracting plain text for AI context building.
// It attempts to parse as document JSON; if it fails, it returns the original string.
func PlainText(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, `{"root":`) {
		return content
	}

	p := NewParser()
	md, err := p.ToMarkdown(trimmed)
	if err != nil {
		// Fallback to original content if parsing fails
		return content
	}
	return md
}

// walkNode traverses the tree and writes markdown
func (p *Parser) walkNode(node Node, sb *strings.Builder, depth int) {
	switch node.Type {
	case TypeRoot:
		for _, child := range node.Children {
			p.walkNode(child, sb, depth)
			sb.WriteString("\n")
		}

	case TypeParagraph:
		p.handleParagraph(node, sb, depth)

	case TypeHeading:
		p.handleHeading(node, sb)

	case TypeText:
		p.handleText(node, sb)

	case TypeList:
		p.handleList(node, sb, depth)

	// ListItems are handled by handleList to ensure correct marking (bullet/number/check)
	case TypeListItem:
		// Fallback if encountered loose
		for _, child := range node.Children {
			p.walkNode(child, sb, depth)
		}

	case TypeTable:
		p.handleTable(node, sb)

	case TypeLink:
		p.handleLink(node, sb)

	case TypeHorizontalRule:
		sb.WriteString("---\n")

	case TypeCanvas:
		name := node.CanvasName
		if name == "" {
			name = "Untitled Canvas"
		}
		sb.WriteString(fmt.Sprintf("[Canvas: %s]\n", name))

	case TypeDiagram:
		kind := node.DiagramType
		if kind == "" {
			kind = "diagram"
		}
		sb.WriteString(fmt.Sprintf("```%s\n%s\n```\n", kind, node.Code))

	default:
		// Generic recursion
		for _, child := range node.Children {
			p.walkNode(child, sb, depth)
		}
	}
}

func (p *Parser) handleParagraph(node Node, sb *strings.Builder, depth int) {
	align := ""
	if fmtStr, ok := node.Format.(string); ok && fmtStr != "" && fmtStr != "left" {
		align = fmtStr
	}

	if align != "" {
		sb.WriteString(fmt.Sprintf("<div align=\"%s\">", align))
	}

	for _, child := range node.Children {
		p.walkNode(child, sb, depth)
	}

	if align != "" {
		sb.WriteString("</div>")
	}
	sb.WriteString("\n")
}

func (p *Parser) handleHeading(node Node, sb *strings.Builder) {
	level := 1
	if len(node.Tag) == 2 && node.Tag[0] == 'h' {
		level = int(node.Tag[1] - '0')
		if level < 1 || level > 6 {
			level = 1
		}
	}
	sb.WriteString(strings.Repeat("#", level))
	sb.WriteString(" ")
	for _, child := range node.Children {
		p.walkNode(child, sb, 0)
	}
	sb.WriteString("\n")
}

func (p *Parser) handleText(node Node, sb *strings.Builder) {
	text := node.Text

	fmtInt := 0
	if f, ok := node.Format.(float64); ok {
		fmtInt = int(f)
	} else if f, ok := node.Format.(int); ok {
		fmtInt = f
	}

	isBold := (fmtInt & FormatBold) != 0
	isItalic := (fmtInt & FormatItalic) != 0
	isUnderline := (fmtInt & FormatUnderline) != 0
	isCode := (fmtInt & FormatCode) != 0
	isStrike := (fmtInt & FormatStrikethrough) != 0

	// Apply wrappers (Code > Bold > Italic > Underline > Strike)
	// Markdown doesn't support underline natively everywhere, using HTML <u>
	if isCode {
		sb.WriteString("`")
	}
	if isBold {
		sb.WriteString("**")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isUnderline {
		sb.WriteString("<u>")
	}
	if isStrike {
		sb.WriteString("~~")
	}

	sb.WriteString(text)

	if isStrike {
		sb.WriteString("~~")
	}
	if isUnderline {
		sb.WriteString("</u>")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isBold {
		sb.WriteString("**")
	}
	if isCode {
		sb.WriteString("`")
	}
}

func (p *Parser) handleLink(node Node, sb *strings.Builder) {
	// Standard MD link: [text](url)
	sb.WriteString("[")
	for _, child := range node.Children {
		p.walkNode(child, sb, 0) // depth 0 for inline
	}
	sb.WriteString(fmt.Sprintf("](%s)", node.URL))
}

func (p *Parser) handleList(node Node, sb *strings.Builder, depth int) {
	listType := node.ListType
	index := 1
	if node.Start > 0 {
		index = node.Start
	}

	for _, child := range node.Children {
		// Only process listitems
		if child.Type != TypeListItem {
			continue
		}

		// Indentation for nested lists (2 spaces per depth level)
		sb.WriteString(strings.Repeat("  ", depth))

		// List Marker
		switch listType {
		case "number":
			sb.WriteString(fmt.Sprintf("%d. ", index))
			index++
		case "check":
			// The 'checked' bool lives on the listitem node
			if child.Checked {
				sb.WriteString("- [x] ")
			} else {
				sb.WriteString("- [ ] ")
			}
		default:
			sb.WriteString("- ")
		}

		// Recursively walk children of the list item.
		// A nested list appears as a child of the listitem.
		for _, grandChild := range child.Children {
			if grandChild.Type == TypeList {
				sb.WriteString("\n")
				p.handleList(grandChild, sb, depth+1)
			} else {
				p.walkNode(grandChild, sb, depth)
			}
		}
		sb.WriteString("\n")
	}
	// Extra newline after list
	if depth == 0 {
		sb.WriteString("\n")
	}
}

func (p *Parser) handleTable(node Node, sb *strings.Builder) {
	// 1. Extract grid data
	var rows [][]string
	maxCols := 0

	for _, row := range node.Children {
		if row.Type != TypeTableRow {
			continue
		}

		var rowData []string
		for _, cell := range row.Children {
			var cellSb strings.Builder
			for _, content := range cell.Children {
				p.walkNode(content, &cellSb, 0)
			}
			// Newlines in cells break MD tables
			cleanContent := strings.ReplaceAll(cellSb.String(), "\n", " ")
			rowData = append(rowData, cleanContent)
		}
		rows = append(rows, rowData)
		if len(rowData) > maxCols {
			maxCols = len(rowData)
		}
	}

	if len(rows) == 0 {
		return
	}

	// 2. Render Markdown Table
	// Header
	sb.WriteString("|")
	for i := 0; i < maxCols; i++ {
		if i < len(rows[0]) {
			sb.WriteString(" " + rows[0][i] + " |")
		} else {
			sb.WriteString("  |")
		}
	}
	sb.WriteString("\n")

	// Separator
	sb.WriteString("|")
	for i := 0; i < maxCols; i++ {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	// Body (skip row 0 as it's used as header)
	for i := 1; i < len(rows); i++ {
		sb.WriteString("|")
		for j := 0; j < maxCols; j++ {
			if j < len(rows[i]) {
				sb.WriteString(" " + rows[i][j] + " |")
			} else {
				sb.WriteString("  |")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}
