package models

import (
	"time"

	"shelfwatch/internal/shared/constants"
)

// SubjectModel mirrors the identity provider's user table. Rows are written
// by the provider at signup and only read here.
type SubjectModel struct {
	ID           string `gorm:"primarykey;size:64"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	BusinessName string `gorm:"size:200"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SubjectModel) TableName() string {
	return constants.TableSubjects
}
