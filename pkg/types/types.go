package types

import (
	"time"

	"github.com/google/uuid"
)

// UserType represents user role levels
type UserType string

const (
	UserTypeStudent    UserType = "student"
	UserTypeAdmin      UserType = "admin"
	UserTypeSuperAdmin UserType = "superadmin"
	UserTypeAll        UserType = "all"
)

// IsAdmin reports whether the role carries content-management rights.
func (t UserType) IsAdmin() bool {
	return t == UserTypeAdmin || t == UserTypeSuperAdmin
}

// ResourceKind distinguishes uploaded files from external links.
type ResourceKind string

const (
	ResourceKindFile ResourceKind = "file"
	ResourceKindURL  ResourceKind = "url"
)

// Valid reports whether the kind is one of the recognized variants.
func (k ResourceKind) Valid() bool {
	return k == ResourceKindFile || k == ResourceKindURL
}

// ReorderDirection is the direction of a single-step lesson move.
type ReorderDirection string

const (
	ReorderUp   ReorderDirection = "up"
	ReorderDown ReorderDirection = "down"
)

// Valid reports whether the direction is recognized.
func (d ReorderDirection) Valid() bool {
	return d == ReorderUp || d == ReorderDown
}

// BaseModel contains common fields for all models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}
