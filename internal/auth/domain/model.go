package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account that can sign in and own quotations.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:'user'" json:"role"`
	IsApproved   bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
