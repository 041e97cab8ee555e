package blockdoc

// DocumentRoot represents the top-level structure of a serialized document
type DocumentRoot struct {
	Root Node `json:"root"`
}

// Node represents any node in the document tree.
// A single struct with omitempty fields keeps the JSON codec reflexive:
// fields absent on the wire stay zero-valued and are not re-emitted.
type Node struct {
	Type     string `json:"type"`
	Version  int    `json:"version"`
	Children []Node `json:"children,omitempty"`

	// Text specific
	Text   string      `json:"text,omitempty"`
	Format interface{} `json:"format,omitempty"` // int (mark bitmask) or string (alignment)
	Style  string      `json:"style,omitempty"`

	// Block specific
	Direction string `json:"direction,omitempty"`
	Indent    int    `json:"indent,omitempty"`
	Tag       string `json:"tag,omitempty"` // heading level: h1..h6

	// Link specific
	URL    string `json:"url,omitempty"`
	Target string `json:"target,omitempty"`
	Title  string `json:"title,omitempty"`

	// List specific
	ListType string `json:"listType,omitempty"` // check, bullet, number
	Start    int    `json:"start,omitempty"`

	// ListItem specific
	Checked bool `json:"checked,omitempty"`
	Value   int  `json:"value,omitempty"`

	// Table specific
	ColSpan     int `json:"colSpan,omitempty"`
	RowSpan     int `json:"rowSpan,omitempty"`
	HeaderState int `json:"headerState,omitempty"` // 1 = header, 0 = normal

	// Canvas block (atomic)
	CanvasId   string `json:"canvasId,omitempty"`
	CanvasName string `json:"canvasName,omitempty"`

	// Diagram block (atomic)
	DiagramType string `json:"diagramType,omitempty"` // flowchart, sequence, ...
	Code        string `json:"code,omitempty"`
}

// Node type names
const (
	TypeRoot           = "root"
	TypeParagraph      = "paragraph"
	TypeHeading        = "heading"
	TypeText           = "text"
	TypeList           = "list"
	TypeListItem       = "listitem"
	TypeTable          = "table"
	TypeTableRow       = "tablerow"
	TypeTableCell      = "tablecell"
	TypeLink           = "link"
	TypeHorizontalRule = "horizontalrule"
	TypeCanvas         = "canvas"
	TypeDiagram        = "diagram"
)

// Constants for Text Format Bitmask
const (
	FormatBold          = 1
	FormatItalic        = 2
	FormatStrikethrough = 4
	FormatUnderline     = 8
	FormatCode          = 16
)

// EmptyDocument returns a document with a single empty paragraph,
// the state malformed stored content degrades to.
func EmptyDocument() DocumentRoot {
	return DocumentRoot{
		Root: Node{
			Type:    TypeRoot,
			Version: 1,
			Children: []Node{
				{Type: TypeParagraph, Version: 1},
			},
		},
	}
}
