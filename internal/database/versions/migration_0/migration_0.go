package migration_0

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Corpus struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tokenizer      string    `gorm:"size:32;not null"`
	TokenizerPath  string
	Seed           int64
	PerIntent      int
	NoneMultiplier int
	Counts         datatypes.JSON
	CreationTime   time.Time

	Examples []CorpusExample `gorm:"foreignKey:CorpusId;constraint:OnDelete:CASCADE"`
}

type CorpusExample struct {
	CorpusId   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	Sentence   string    `gorm:"not null"`
	Intent     string    `gorm:"size:32;not null;index"`
	IntentCode int
	Tokens     datatypes.JSON
	Labels     datatypes.JSON
}

func Migration(db *gorm.DB) error {
	if err := db.AutoMigrate(&Corpus{}, &CorpusExample{}); err != nil {
		return fmt.Errorf("initial migration failed: %w", err)
	}
	return nil
}
