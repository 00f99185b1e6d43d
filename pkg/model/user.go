package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleStudent   UserRole = "student"
	UserRoleRecruiter UserRole = "recruiter"
)

type Profile struct {
	Bio    string   `json:"bio"`
	Skills []string `json:"skills"`
}

type User struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`
	Fullname     string    `json:"fullname" db:"fullname"`
	Email        string    `json:"email" db:"email"`
	PhoneNumber  string    `json:"phoneNumber" db:"phone_number"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	Profile      Profile   `json:"profile" db:"profile"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

func (u *User) Response() UserRes {
	return UserRes{
		UserID:      u.UserID,
		Fullname:    u.Fullname,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Profile:     u.Profile,
	}
}

type RegisterReq struct {
	Fullname    string   `json:"fullname" form:"fullname" binding:"required"`
	Email       string   `json:"email" form:"email" binding:"required,email"`
	PhoneNumber string   `json:"phoneNumber" form:"phoneNumber" binding:"required"`
	Password    string   `json:"password" form:"password" binding:"required,min=6,max=72"`
	Role        UserRole `json:"role" form:"role" binding:"required,oneof=student recruiter"`
}

type LoginReq struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required"`
	Role     UserRole `json:"role" binding:"required,oneof=student recruiter"`
}

type UpdateProfileReq struct {
	Fullname    *string     `json:"fullname"`
	Email       *string     `json:"email" binding:"omitempty,email"`
	PhoneNumber *string     `json:"phoneNumber"`
	Bio         *string     `json:"bio"`
	Skills      *StringList `json:"skills"`
}

type UserRes struct {
	UserID      uuid.UUID `json:"id"`
	Fullname    string    `json:"fullname"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        UserRole  `json:"role"`
	Profile     Profile   `json:"profile"`
}
