package model

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type User struct {
	ID        string    `json:"_id" bson:"_id" validate:"required"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Photo     string    `json:"photo" bson:"photo"`
	Role      Role      `json:"role" bson:"role"`
	Gender    Gender    `json:"gender" bson:"gender"`
	DOB       time.Time `json:"dob" bson:"dob"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Age is the number of full years between the date of birth and now.
func (u User) Age(now time.Time) int {
	dob := u.DOB.In(now.Location())
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*User, error)
	Find(ctx context.Context, query Query) ([]User, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}
