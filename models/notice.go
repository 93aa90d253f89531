// file: models/notice.go
package models

import "time"

type Notice struct {
	ID         uint32    `gorm:"primarykey" json:"id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	AuthorID   uint32    `gorm:"not null" json:"author_id"`
	DatePosted time.Time `gorm:"index" json:"date_posted"`
}

func (Notice) TableName() string {
	return "myr_notice"
}
