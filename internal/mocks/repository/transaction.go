// Package repository provides testify mocks of the persistence interfaces.
package repository

import (
	"context"

	"homestay/internal/domain/repository"
)

// TransactionManager runs the callback directly against Factory, so the
// mocked repositories see the calls made inside the transaction.
type TransactionManager struct {
	Factory *RepositoryFactory
}

// NewTransactionManager returns a passthrough manager over factory
func NewTransactionManager(factory *RepositoryFactory) *TransactionManager {
	return &TransactionManager{Factory: factory}
}

// Execute calls fn once with the mock factory
func (m *TransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// RepositoryFactory hands out the same mock instances on every call.
type RepositoryFactory struct {
	Users         *MockUserRepository
	Homestays     *MockHomestayRepository
	Availability  *MockAvailabilityRepository
	Bookings      *MockBookingRepository
	Payments      *MockPaymentRepository
	Promotions    *MockPromotionRepository
	Conversations *MockConversationRepository
	Messages      *MockMessageRepository
	Notifications *MockNotificationRepository
}

// mockT is the subset of testing.T the constructors need.
type mockT interface {
	Helper()
	Cleanup(func())
	Errorf(format string, args ...any)
	FailNow()
	Logf(format string, args ...any)
}

// NewRepositoryFactory creates every mock and registers expectation checks on t
func NewRepositoryFactory(t mockT) *RepositoryFactory {
	t.Helper()

	return &RepositoryFactory{
		Users:         NewMockUserRepository(t),
		Homestays:     NewMockHomestayRepository(t),
		Availability:  NewMockAvailabilityRepository(t),
		Bookings:      NewMockBookingRepository(t),
		Payments:      NewMockPaymentRepository(t),
		Promotions:    NewMockPromotionRepository(t),
		Conversations: NewMockConversationRepository(t),
		Messages:      NewMockMessageRepository(t),
		Notifications: NewMockNotificationRepository(t),
	}
}

func (f *RepositoryFactory) NewUserRepository() repository.UserRepository { return f.Users }

func (f *RepositoryFactory) NewHomestayRepository() repository.HomestayRepository { return f.Homestays }

func (f *RepositoryFactory) NewAvailabilityRepository() repository.AvailabilityRepository {
	return f.Availability
}

func (f *RepositoryFactory) NewBookingRepository() repository.BookingRepository { return f.Bookings }

func (f *RepositoryFactory) NewPaymentRepository() repository.PaymentRepository { return f.Payments }

func (f *RepositoryFactory) NewPromotionRepository() repository.PromotionRepository {
	return f.Promotions
}

func (f *RepositoryFactory) NewConversationRepository() repository.ConversationRepository {
	return f.Conversations
}

func (f *RepositoryFactory) NewMessageRepository() repository.MessageRepository { return f.Messages }

func (f *RepositoryFactory) NewNotificationRepository() repository.NotificationRepository {
	return f.Notifications
}
