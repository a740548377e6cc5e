package models

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompareNotes_Order(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	notes := []*Note{
		{ID: "c", CreatedAt: base, UpdatedAt: base},
		{ID: "a", CreatedAt: base, UpdatedAt: base.Add(time.Hour)},
		{ID: "b", CreatedAt: base, UpdatedAt: base},
		{ID: "d", CreatedAt: base.Add(time.Minute), UpdatedAt: base},
	}

	slices.SortFunc(notes, CompareNotes)

	var ids []string
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"a", "d", "b", "c"}, ids)
}
