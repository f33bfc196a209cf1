// Package repository persists career saves. A save is one JSON document per
// slot; Encode and Decode convert between documents and model.SaveData.
package repository

import (
	"context"
	"time"
)

// Slot describes a stored save without loading it.
type Slot struct {
	Name      string    `json:"slot"`
	Player    string    `json:"player"`
	Team      string    `json:"team"`
	Week      int       `json:"week"`
	LastSaved time.Time `json:"lastSaved"`
}

// Store provides read/write access to save documents.
type Store interface {
	// Put writes doc to slot, replacing any previous save.
	Put(ctx context.Context, slot Slot, doc []byte) error

	// Get returns the document in slot or ErrNotFound.
	Get(ctx context.Context, slot string) ([]byte, error)

	// Delete removes slot. Deleting a missing slot returns ErrNotFound.
	Delete(ctx context.Context, slot string) error

	// List returns every slot, most recently saved first.
	List(ctx context.Context) ([]Slot, error)

	Close() error
}
