package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User represents a registered account. Passwords are stored only as
// bcrypt hashes; the hash never leaves the model.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"type:text;not null"`
	Email        string     `json:"email" gorm:"type:text;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"type:text;not null"`
	Role         Role       `json:"role" gorm:"type:text;not null;default:member"`
	CreatedAt    time.Time  `json:"createdAt"`
	Posts        []BlogPost `json:"posts,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
}

func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
