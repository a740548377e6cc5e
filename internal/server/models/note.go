package models

import (
	"cmp"
	"time"
)

// Note is a text note owned by exactly one user. OwnerID and CreatedAt never
// change after creation.
type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompareNotes orders notes newest-updated first, then newest-created first,
// then by ascending ID. It is suitable for slices.SortFunc.
func CompareNotes(a, b *Note) int {
	if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
