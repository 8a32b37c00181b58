package models

import "time"

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Index       *int64    `gorm:"column:task_index" json:"index"` // optional ordering hint; "index" is a SQL keyword
	StatusID    uint64    `gorm:"not null" json:"status_id"`
	AssigneeID  *uint64   `json:"assignee_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Status   TaskStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Assignee *User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Labels   []Label    `gorm:"many2many:task_labels" json:"labels,omitempty"`
}
