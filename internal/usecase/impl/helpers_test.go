package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	mockRepo "homestay/internal/mocks/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newTx returns a passthrough transaction manager and the mocks it hands out.
func newTx(t *testing.T) (*mockRepo.TransactionManager, *mockRepo.RepositoryFactory) {
	factory := mockRepo.NewRepositoryFactory(t)

	return mockRepo.NewTransactionManager(factory), factory
}
