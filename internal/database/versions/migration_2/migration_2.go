package migration_2

import (
	"fmt"

	"gorm.io/gorm"
)

type Corpus struct {
	TokenizerModel string
}

func Migration(db *gorm.DB) error {
	if err := db.Migrator().AddColumn(&Corpus{}, "TokenizerModel"); err != nil {
		return fmt.Errorf("error adding TokenizerModel column: %w", err)
	}

	return nil
}

func Rollback(db *gorm.DB) error {
	if err := db.Migrator().DropColumn(&Corpus{}, "TokenizerModel"); err != nil {
		return fmt.Errorf("error dropping TokenizerModel column: %w", err)
	}

	return nil
}
