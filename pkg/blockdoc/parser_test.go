package blockdoc

import (
	"reflect"
	"strings"
	"testing"
)

func sampleDocument() DocumentRoot {
	return DocumentRoot{
		Root: Node{
			Type:    TypeRoot,
			Version: 1,
			Children: []Node{
				{Type: TypeHeading, Version: 1, Tag: "h1", Children: []Node{
					{Type: TypeText, Version: 1, Text: "Payments PRD"},
				}},
				{Type: TypeParagraph, Version: 1, Children: []Node{
					{Type: TypeText, Version: 1, Text: "The goal is "},
					// Format carried as float64: that is what the JSON codec yields
				{Type: TypeText, Version: 1, Text: "simple", Format: float64(FormatBold)},
					{Type: TypeText, Version: 1, Text: " onboarding."},
				}},
				{Type: TypeList, Version: 1, ListType: "check", Children: []Node{
					{Type: TypeListItem, Version: 1, Checked: true, Children: []Node{
						{Type: TypeText, Version: 1, Text: "Define scope"},
					}},
					{Type: TypeListItem, Version: 1, Children: []Node{
						{Type: TypeText, Version: 1, Text: "Review metrics"},
					}},
				}},
				{Type: TypeCanvas, Version: 1, CanvasId: "cv-1", CanvasName: "User Flow"},
				{Type: TypeDiagram, Version: 1, DiagramType: "flowchart", Code: "A --> B"},
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	doc := sampleDocument()

	encoded, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !reflect.DeepEqual(doc, decoded) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", decoded, doc)
	}

	// Second pass must be byte-stable as well
	encodedAgain, err := Encode(decoded)
	if err != nil {
		t.Fatalf("second Encode failed: %v", err)
	}
	if encoded != encodedAgain {
		t.Errorf("second encode differs from first")
	}
}

func TestDecodeOrEmpty(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantEmpty bool
	}{
		{"malformed json", `{"root": [broken`, true},
		{"plain text", "just some text", true},
		{"empty string", "", true},
		{"missing root", `{"something": 1}`, true},
		{"valid document", `{"root":{"type":"root","version":1,"children":[{"type":"paragraph","version":1}]}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeOrEmpty(tt.content)
			if got.Root.Type != TypeRoot {
				t.Fatalf("DecodeOrEmpty returned tree without root")
			}
			if tt.wantEmpty && !reflect.DeepEqual(got, EmptyDocument()) {
				t.Errorf("expected empty document fallback, got %+v", got)
			}
		})
	}
}

func TestToMarkdown(t *testing.T) {
	doc := sampleDocument()
	encoded, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	md, err := NewParser().ToMarkdown(encoded)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	wantFragments := []string{
		"# Payments PRD",
		"**simple**",
		"- [x] Define scope",
		"- [ ] Review metrics",
		"[Canvas: User Flow]",
		"```flowchart\nA --> B\n```",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(md, frag) {
			t.Errorf("markdown missing fragment %q in:\n%s", frag, md)
		}
	}
}

func TestPlainTextFallback(t *testing.T) {
	raw := "not a document, just notes"
	if got := PlainText(raw); got != raw {
		t.Errorf("PlainText(%q) = %q, want original", raw, got)
	}
}

func TestToMarkdownTable(t *testing.T) {
	doc := DocumentRoot{
		Root: Node{Type: TypeRoot, Version: 1, Children: []Node{
			{Type: TypeTable, Version: 1, Children: []Node{
				{Type: TypeTableRow, Version: 1, Children: []Node{
					{Type: TypeTableCell, Version: 1, HeaderState: 1, Children: []Node{{Type: TypeText, Version: 1, Text: "Feature"}}},
					{Type: TypeTableCell, Version: 1, HeaderState: 1, Children: []Node{{Type: TypeText, Version: 1, Text: "Priority"}}},
				}},
				{Type: TypeTableRow, Version: 1, Children: []Node{
					{Type: TypeTableCell, Version: 1, Children: []Node{{Type: TypeText, Version: 1, Text: "Login"}}},
					{Type: TypeTableCell, Version: 1, Children: []Node{{Type: TypeText, Version: 1, Text: "high"}}},
				}},
			}},
		}},
	}

	encoded, _ := Encode(doc)
	md, err := NewParser().ToMarkdown(encoded)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	if !strings.Contains(md, "| Feature | Priority |") {
		t.Errorf("table header missing in:\n%s", md)
	}
	if !strings.Contains(md, "|---|---|") {
		t.Errorf("table separator missing in:\n%s", md)
	}
	if !strings.Contains(md, "| Login | high |") {
		t.Errorf("table body missing in:\n%s", md)
	}
}
