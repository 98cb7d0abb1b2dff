package migration_1

import (
	"fmt"

	"gorm.io/gorm"
)

type Corpus struct {
	PublishedPrefix string
}

func Migration(db *gorm.DB) error {
	if err := db.Migrator().AddColumn(&Corpus{}, "PublishedPrefix"); err != nil {
		return fmt.Errorf("error adding PublishedPrefix column: %w", err)
	}

	return nil
}

func Rollback(db *gorm.DB) error {
	if err := db.Migrator().DropColumn(&Corpus{}, "PublishedPrefix"); err != nil {
		return fmt.Errorf("error dropping PublishedPrefix column: %w", err)
	}

	return nil
}
