package model

import "time"

// Challenge is a single catalog entry. The catalog is fixed for the
// lifetime of the process; rows are only ever written when seeding an
// empty table at startup.
type Challenge struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (Challenge) TableName() string { return "challenges" }
