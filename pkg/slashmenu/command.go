package slashmenu

import (
	"strings"
	"unicode"
)

// Command is a single entry of the slash palette: it inserts a block
// or triggers an AI action at the cursor.
type Command struct {
	ID          string
	Name        string
	Description string
	Category    string
}

// Group holds commands of one category, in registration order
type Group struct {
	Category string
	Commands []Command
}

// Matches reports whether the command matches the query.
// Empty query matches everything. Matching is a case-insensitive
// substring check over name and description, with a subsequence
// fallback so "tbl" still finds "Table".
func (c Command) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Description), q) {
		return true
	}
	return isSubsequence(q, strings.ToLower(c.Name))
}

func isSubsequence(needle, haystack string) bool {
	i := 0
	for _, r := range haystack {
		if i < len(needle) && rune(needle[i]) == r {
			i++
		}
	}
	return i == len(needle)
}

// ExtractQuery inspects the text left of the cursor for an active
// `/word` pattern. It returns the query after the slash and whether
// the palette should be open. A slash is only active when it starts
// the line or follows whitespace, and the query contains no spaces.
func ExtractQuery(textBeforeCursor string) (string, bool) {
	slash := strings.LastIndex(textBeforeCursor, "/")
	if slash < 0 {
		return "", false
	}
	if slash > 0 {
		prev := rune(textBeforeCursor[slash-1])
		if !unicode.IsSpace(prev) {
			return "", false
		}
	}
	query := textBeforeCursor[slash+1:]
	if strings.ContainsAny(query, " \t\n") {
		return "", false
	}
	return query, true
}

// GroupByCategory buckets commands by category, keeping the order in
// which categories first appear.
func GroupByCategory(commands []Command) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, cmd := range commands {
		i, ok := index[cmd.Category]
		if !ok {
			i = len(groups)
			index[cmd.Category] = i
			groups = append(groups, Group{Category: cmd.Category})
		}
		groups[i].Commands = append(groups[i].Commands, cmd)
	}
	return groups
}
