// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"homestay/internal/domain/entity"
)

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByUserName retrieves a single user by their login name.
	FindByUserName(ctx context.Context, userName string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// CountDependents counts the rows whose foreign keys block deleting the user.
	CountDependents(ctx context.Context, id string) (int64, error)

	// Delete removes the user. Restricted references make it fail while dependents exist.
	Delete(ctx context.Context, id string) error
}
