package models

import (
	"github.com/dressshop/backend/internal/domain/identity"
)

// UserModel is the persistence model for a storefront user.
type UserModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Address string `gorm:"type:text;not null"`
	Role    string `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Address:    m.Address,
		Role:       identity.Role(m.Role),
	}
}

// UserModelFromDomain creates a persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Name:    u.Name,
		Email:   u.Email,
		Address: u.Address,
		Role:    string(u.Role),
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}
