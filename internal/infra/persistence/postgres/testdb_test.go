package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with foreign keys enforced
// and the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))

	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedUser(t *testing.T, db *gorm.DB, name string) *entity.User {
	t.Helper()

	user := &entity.User{
		ID:           uuid.NewString(),
		UserName:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		IsActive:     true,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return user
}

func seedHomestay(t *testing.T, db *gorm.DB, host *entity.User) *entity.Homestay {
	t.Helper()

	homestay := &entity.Homestay{
		HostID:     host.ID,
		Title:      "Riverside cabin",
		City:       "Hoi An",
		Country:    "VN",
		Latitude:   15.8801,
		Longitude:  108.3380,
		BasePrice:  40,
		MaxGuests:  4,
		IsActive:   true,
		IsApproved: true,
	}
	require.NoError(t, NewHomestayRepository(db).Create(context.Background(), homestay))

	return homestay
}

func seedBooking(t *testing.T, db *gorm.DB, guest *entity.User, homestay *entity.Homestay, checkIn, checkOut time.Time) *entity.Booking {
	t.Helper()

	booking := &entity.Booking{
		UserID:     guest.ID,
		HomestayID: homestay.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     2,
		TotalPrice: 80,
		Status:     entity.BookingStatusPending,
	}
	require.NoError(t, NewBookingRepository(db).Create(context.Background(), booking))

	return booking
}
