package models

import "time"

// TaskStatus is a workflow state for tasks. The slug is the stable external
// identifier; the numeric id stays internal.
type TaskStatus struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:StatusID" json:"-"`
}
