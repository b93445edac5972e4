package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string     `gorm:"size:64;not null" json:"name"`
	PasswordHash string     `gorm:"size:191;not null" json:"-"`
	Role         Role       `gorm:"size:16;not null;default:customer" json:"role"`
	Phone        string     `gorm:"size:32" json:"phone,omitempty"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	// CreatedBy 创建该 seller 账号的 admin（仅 seller 有值）
	CreatedBy string `gorm:"size:36;index" json:"createdBy,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, q string, offset, limit int) ([]User, int64, error)
	SoftDelete(ctx context.Context, id string) error
}
