package models

import "time"

// AdminFlag marks elevated privilege to mutate the catalog.
type AdminFlag string

const (
	AdminYes AdminFlag = "Y"
	AdminNo  AdminFlag = "N"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Uname        string    `json:"uname" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	ProfilePic   string    `json:"profilepic"`
	Phone        string    `json:"phone"`
	AdminFlag    AdminFlag `json:"adminFlag" gorm:"not null;default:'N'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
