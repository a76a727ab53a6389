package repository

import (
	"context"
	"time"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockHomestayRepository is a mock of repository.HomestayRepository
type MockHomestayRepository struct {
	mock.Mock
}

// NewMockHomestayRepository creates the mock and asserts its expectations on cleanup
func NewMockHomestayRepository(t mockT) *MockHomestayRepository {
	m := &MockHomestayRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockHomestayRepository) Create(ctx context.Context, homestay *entity.Homestay) error {
	return m.Called(ctx, homestay).Error(0)
}

func (m *MockHomestayRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Homestay, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*entity.Homestay); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockHomestayRepository) Search(ctx context.Context, filter entity.HomestaySearch) ([]*entity.Homestay, error) {
	args := m.Called(ctx, filter)
	if v, ok := args.Get(0).([]*entity.Homestay); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockHomestayRepository) FindByHost(ctx context.Context, hostID string) ([]*entity.Homestay, error) {
	args := m.Called(ctx, hostID)
	if v, ok := args.Get(0).([]*entity.Homestay); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockHomestayRepository) Update(ctx context.Context, homestay *entity.Homestay) error {
	return m.Called(ctx, homestay).Error(0)
}

func (m *MockHomestayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockHomestayRepository) ReplaceAmenities(ctx context.Context, homestayID uuid.UUID, amenityIDs []uuid.UUID) error {
	return m.Called(ctx, homestayID, amenityIDs).Error(0)
}

func (m *MockHomestayRepository) AddImage(ctx context.Context, image *entity.HomestayImage) error {
	return m.Called(ctx, image).Error(0)
}

// MockAmenityRepository is a mock of repository.AmenityRepository
type MockAmenityRepository struct {
	mock.Mock
}

// NewMockAmenityRepository creates the mock and asserts its expectations on cleanup
func NewMockAmenityRepository(t mockT) *MockAmenityRepository {
	m := &MockAmenityRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAmenityRepository) List(ctx context.Context) ([]*entity.Amenity, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*entity.Amenity); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAmenityRepository) Create(ctx context.Context, amenity *entity.Amenity) error {
	return m.Called(ctx, amenity).Error(0)
}

func (m *MockAmenityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Amenity, error) {
	args := m.Called(ctx, ids)
	if v, ok := args.Get(0).([]*entity.Amenity); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockAvailabilityRepository is a mock of repository.AvailabilityRepository
type MockAvailabilityRepository struct {
	mock.Mock
}

// NewMockAvailabilityRepository creates the mock and asserts its expectations on cleanup
func NewMockAvailabilityRepository(t mockT) *MockAvailabilityRepository {
	m := &MockAvailabilityRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAvailabilityRepository) CreatePricing(ctx context.Context, pricing *entity.HomestayPricing) error {
	return m.Called(ctx, pricing).Error(0)
}

func (m *MockAvailabilityRepository) FindPricing(ctx context.Context, homestayID uuid.UUID, from, to time.Time) ([]*entity.HomestayPricing, error) {
	args := m.Called(ctx, homestayID, from, to)
	if v, ok := args.Get(0).([]*entity.HomestayPricing); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAvailabilityRepository) CreateBlockedDate(ctx context.Context, blocked *entity.BlockedDate) error {
	return m.Called(ctx, blocked).Error(0)
}

func (m *MockAvailabilityRepository) DeleteBlockedDate(ctx context.Context, homestayID uuid.UUID, date time.Time) error {
	return m.Called(ctx, homestayID, date).Error(0)
}

func (m *MockAvailabilityRepository) FindBlockedDates(ctx context.Context, homestayID uuid.UUID, from, to time.Time) ([]*entity.BlockedDate, error) {
	args := m.Called(ctx, homestayID, from, to)
	if v, ok := args.Get(0).([]*entity.BlockedDate); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}
