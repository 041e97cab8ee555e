package slashmenu

import (
	"testing"
)

func testCommands() []Command {
	return []Command{
		{ID: "heading1", Name: "Heading 1", Description: "Large section heading", Category: "Basic Blocks"},
		{ID: "table", Name: "Table", Description: "Insert a table", Category: "Basic Blocks"},
		{ID: "canvas", Name: "Drawing Canvas", Description: "Freehand drawing surface", Category: "Embeds"},
		{ID: "diagram", Name: "Diagram", Description: "Mermaid diagram block", Category: "Embeds"},
		{ID: "ai_features", Name: "Generate Features", Description: "AI: derive features from this document", Category: "AI"},
	}
}

func TestExtractQuery(t *testing.T) {
	tests := []struct {
		name      string
		before    string
		wantQuery string
		wantOpen  bool
	}{
		{"bare slash", "/", "", true},
		{"slash word", "/tab", "tab", true},
		{"slash mid sentence", "insert a /dia", "dia", true},
		{"no slash", "plain text", "", false},
		{"slash inside word", "a/b", "", false},
		{"query with space closed", "/two words", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, open := ExtractQuery(tt.before)
			if open != tt.wantOpen || query != tt.wantQuery {
				t.Errorf("ExtractQuery(%q) = (%q, %v), want (%q, %v)",
					tt.before, query, open, tt.wantQuery, tt.wantOpen)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		query   string
		wantIDs []string
	}{
		{"", []string{"heading1", "table", "canvas", "diagram", "ai_features"}},
		{"table", []string{"table"}},
		{"drawing", []string{"canvas"}},
		{"mermaid", []string{"diagram"}}, // description match
		{"tbl", []string{"table"}},       // subsequence fallback
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run("query_"+tt.query, func(t *testing.T) {
			m := NewMenu(testCommands())
			m.Open(tt.query)

			got := m.Filtered()
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Filter(%q) returned %d commands, want %d: %+v", tt.query, len(got), len(tt.wantIDs), got)
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("Filter(%q)[%d] = %s, want %s", tt.query, i, got[i].ID, id)
				}
			}
		})
	}
}

func TestGrouping(t *testing.T) {
	m := NewMenu(testCommands())
	m.Open("")

	groups := m.Groups()
	wantOrder := []string{"Basic Blocks", "Embeds", "AI"}
	if len(groups) != len(wantOrder) {
		t.Fatalf("got %d groups, want %d", len(groups), len(wantOrder))
	}
	for i, want := range wantOrder {
		if groups[i].Category != want {
			t.Errorf("group %d = %s, want %s", i, groups[i].Category, want)
		}
	}
	if len(groups[0].Commands) != 2 {
		t.Errorf("Basic Blocks has %d commands, want 2", len(groups[0].Commands))
	}
}

func TestKeyboardNavigation(t *testing.T) {
	m := NewMenu(testCommands())
	m.Open("")

	// Down moves highlight, up wraps around
	m.HandleKey(KeyDown)
	if m.Selected().ID != "table" {
		t.Errorf("after down, selected = %s", m.Selected().ID)
	}
	m.HandleKey(KeyUp)
	m.HandleKey(KeyUp)
	if m.Selected().ID != "ai_features" {
		t.Errorf("up should wrap to last, selected = %s", m.Selected().ID)
	}

	// Enter picks and closes
	picked := m.HandleKey(KeyEnter)
	if picked == nil || picked.ID != "ai_features" {
		t.Fatalf("enter picked %+v", picked)
	}
	if m.IsOpen() {
		t.Error("menu should close after selection")
	}
}

func TestEscapeCloses(t *testing.T) {
	m := NewMenu(testCommands())
	m.Open("tab")
	m.HandleKey(KeyEscape)

	if m.IsOpen() {
		t.Error("escape should close the menu")
	}
	if m.Selected() != nil {
		t.Error("closed menu should have no selection")
	}
}

func TestQueryResetsSelection(t *testing.T) {
	m := NewMenu(testCommands())
	m.Open("")
	m.HandleKey(KeyDown)
	m.HandleKey(KeyDown)

	m.UpdateQuery("dia")
	if m.Selected() == nil || m.Selected().ID != "diagram" {
		t.Errorf("after refilter, selected = %+v, want diagram at top", m.Selected())
	}
}

func TestEnterOnEmptyList(t *testing.T) {
	m := NewMenu(testCommands())
	m.Open("zzz")

	if picked := m.HandleKey(KeyEnter); picked != nil {
		t.Errorf("enter on empty list picked %+v", picked)
	}
	if !m.IsOpen() {
		t.Error("enter on empty list should not close the menu")
	}
}
