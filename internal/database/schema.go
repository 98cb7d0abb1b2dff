package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Corpus struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tokenizer      string    `gorm:"size:32;not null"`
	TokenizerPath  string
	TokenizerModel string
	Seed           int64
	PerIntent      int
	NoneMultiplier int
	Counts         datatypes.JSON
	CreationTime   time.Time

	// PublishedPrefix is the object store prefix the output was uploaded to.
	PublishedPrefix string

	Examples []CorpusExample `gorm:"foreignKey:CorpusId;constraint:OnDelete:CASCADE"`
}

// CorpusExample keeps one labelled sentence. Position preserves the corpus
// order after shuffling.
type CorpusExample struct {
	CorpusId   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	Sentence   string    `gorm:"not null"`
	Intent     string    `gorm:"size:32;not null;index"`
	IntentCode int
	Tokens     datatypes.JSON
	Labels     datatypes.JSON
}
