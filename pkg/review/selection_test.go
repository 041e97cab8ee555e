package review

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("a")
	sel.Toggle("b")
	assert.True(t, sel.Has("a"))
	assert.Equal(t, []string{"a", "b"}, sel.IDs())

	sel.Toggle("a")
	assert.False(t, sel.Has("a"))
	assert.Equal(t, []string{"b"}, sel.IDs())
}

func TestToggleNeverDuplicates(t *testing.T) {
	sel := NewSelection()
	for i := 0; i < 5; i++ {
		sel.Toggle("x")
	}
	// Odd number of toggles leaves it selected exactly once.
	assert.Equal(t, []string{"x"}, sel.IDs())
	assert.Equal(t, 1, sel.Count())
}

func TestSelectAllDeduplicates(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("old")

	sel.SelectAll([]string{"a", "b", "a", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, sel.IDs())
	assert.False(t, sel.Has("old"))
}

func TestClear(t *testing.T) {
	sel := NewSelection()
	sel.SelectAll([]string{"a", "b"})
	sel.Clear()
	assert.Equal(t, 0, sel.Count())
	assert.Empty(t, sel.IDs())
}

func TestRemoveMissingIsNoOp(t *testing.T) {
	sel := NewSelection()
	sel.SelectAll([]string{"a", "b"})
	sel.Remove("ghost")
	assert.Equal(t, []string{"a", "b"}, sel.IDs())
}

func TestRemoveKeepsOrder(t *testing.T) {
	sel := NewSelection()
	sel.SelectAll([]string{"a", "b", "c", "d"})
	sel.Remove("b")
	assert.Equal(t, []string{"a", "c", "d"}, sel.IDs())
	sel.Toggle("b")
	assert.Equal(t, []string{"a", "c", "d", "b"}, sel.IDs())
}

func TestBulkApplyAggregates(t *testing.T) {
	outcome := Apply([]string{"1", "2", "3", "4", "5"}, func(id string) error {
		if id == "3" {
			return errors.New("row locked")
		}
		return nil
	})

	assert.Equal(t, 4, outcome.Succeeded)
	assert.Equal(t, 1, outcome.Failed)
	assert.Equal(t, []string{"3"}, outcome.FailedIDs)
	assert.False(t, outcome.AllSucceeded())
	assert.Equal(t, "4 succeeded, 1 failed", outcome.Summary())
}

func TestBulkApplyAllSucceed(t *testing.T) {
	outcome := Apply([]string{"1", "2"}, func(string) error { return nil })
	assert.True(t, outcome.AllSucceeded())
	assert.Equal(t, "2 succeeded", outcome.Summary())
	assert.Empty(t, outcome.FailedIDs)
}

func TestBulkApplyContinuesPastFailures(t *testing.T) {
	var visited []string
	Apply([]string{"a", "b", "c"}, func(id string) error {
		visited = append(visited, id)
		return errors.New("always fails")
	})
	assert.Equal(t, []string{"a", "b", "c"}, visited)
}
