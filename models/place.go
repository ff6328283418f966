package models

import "time"

// Place is a service area delegates deliver within. Deletion is soft:
// the record stays with IsActive=false so historic names remain visible
// to admins while public listings skip them.
type Place struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	City      string    `json:"city"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Delegate is a courier bound to exactly one Place by name. The place
// reference is a denormalized string, kept consistent by the rename
// cascade in the catalog service.
type Delegate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     string    `json:"phone" gorm:"not null"`
	Fee       float64   `json:"fee" gorm:"not null"`
	Rating    float64   `json:"rating" gorm:"default:4.5"`
	Avatar    string    `json:"avatar"`
	Place     string    `json:"place" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
