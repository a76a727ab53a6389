package repository

import (
	"context"
	"time"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBookingRepository is a mock of repository.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

// NewMockBookingRepository creates the mock and asserts its expectations on cleanup
func NewMockBookingRepository(t mockT) *MockBookingRepository {
	m := &MockBookingRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*entity.Booking); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBookingRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Booking, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]*entity.Booking); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, homestayID uuid.UUID, checkIn, checkOut time.Time) ([]*entity.Booking, error) {
	args := m.Called(ctx, homestayID, checkIn, checkOut)
	if v, ok := args.Get(0).([]*entity.Booking); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// MockPaymentRepository is a mock of repository.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

// NewMockPaymentRepository creates the mock and asserts its expectations on cleanup
func NewMockPaymentRepository(t mockT) *MockPaymentRepository {
	m := &MockPaymentRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if v, ok := args.Get(0).([]*entity.Payment); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockPromotionRepository is a mock of repository.PromotionRepository
type MockPromotionRepository struct {
	mock.Mock
}

// NewMockPromotionRepository creates the mock and asserts its expectations on cleanup
func NewMockPromotionRepository(t mockT) *MockPromotionRepository {
	m := &MockPromotionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPromotionRepository) Create(ctx context.Context, promotion *entity.Promotion) error {
	return m.Called(ctx, promotion).Error(0)
}

func (m *MockPromotionRepository) FindByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	args := m.Called(ctx, code)
	if v, ok := args.Get(0).(*entity.Promotion); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPromotionRepository) DeleteByCode(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}
