package api

import (
	"time"

	"github.com/google/uuid"
)

type TokenizerInfo struct {
	Kind  string
	Path  string `json:"Path,omitempty"`
	Model string `json:"Model,omitempty"`
}

// Manifest describes one generated corpus and the files written for it.
type Manifest struct {
	Id           uuid.UUID
	CreationTime time.Time

	Tokenizer TokenizerInfo

	// Seed is zero when the run was time-seeded.
	Seed           int64
	PerIntent      int
	NoneMultiplier int

	Counts map[string]int
	Files  []string
}

// PlainDataset summarizes one plain-sentence file.
type PlainDataset struct {
	Intent    string
	File      string
	Requested int
	Produced  int
}
