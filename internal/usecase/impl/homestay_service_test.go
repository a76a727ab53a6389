package impl

import (
	"context"
	"strings"
	"testing"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/errors"
	mockRepo "homestay/internal/mocks/repository"
	mockSvc "homestay/internal/mocks/service"
	"homestay/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type homestayFixtures struct {
	service usecase.HomestayUsecase
	factory *mockRepo.RepositoryFactory
	storage *mockSvc.MockImageStorage
}

func newHomestayFixtures(t *testing.T) homestayFixtures {
	tx, factory := newTx(t)
	storage := mockSvc.NewMockImageStorage(t)

	return homestayFixtures{
		service: NewHomestayService(HomestayServiceParams{
			TxManager:    tx,
			UserRepo:     factory.Users,
			HomestayRepo: factory.Homestays,
			Storage:      storage,
			Logger:       newDiscardLogger(),
		}),
		factory: factory,
		storage: storage,
	}
}

func TestHomestayService_Create(t *testing.T) {
	ctx := context.Background()
	input := &usecase.CreateHomestayInput{Title: "River house", City: "Hoi An", BasePrice: 45, MaxGuests: 3, AmenityIDs: []uuid.UUID{uuid.New()}}

	t.Run("host creates unapproved listing", func(t *testing.T) {
		f := newHomestayFixtures(t)
		id := uuid.New()
		f.factory.Users.On("FindByID", ctx, "host").Return(&entity.User{ID: "host", IsHost: true}, nil)
		f.factory.Homestays.On("Create", ctx, mock.MatchedBy(func(h *entity.Homestay) bool {
			return h.HostID == "host" && h.IsActive && !h.IsApproved
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Homestay).ID = id
		}).Return(nil)
		f.factory.Homestays.On("ReplaceAmenities", ctx, id, input.AmenityIDs).Return(nil)
		f.factory.Homestays.On("FindByID", ctx, id).Return(&entity.Homestay{ID: id}, nil)

		got, err := f.service.Create(ctx, "host", input)

		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("guest cannot list", func(t *testing.T) {
		f := newHomestayFixtures(t)
		f.factory.Users.On("FindByID", ctx, "guest").Return(&entity.User{ID: "guest"}, nil)

		_, err := f.service.Create(ctx, "guest", input)

		assert.True(t, errors.Is(err, domainerrors.ErrNotHost))
	})

	t.Run("invalid", func(t *testing.T) {
		f := newHomestayFixtures(t)

		_, err := f.service.Create(ctx, "host", &usecase.CreateHomestayInput{Title: "x", City: "y"})

		assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
	})
}

func TestHomestayService_UploadImage(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	body := strings.NewReader("png")

	t.Run("first image is primary", func(t *testing.T) {
		f := newHomestayFixtures(t)
		f.factory.Homestays.On("FindByID", ctx, id).Return(&entity.Homestay{ID: id, HostID: "host"}, nil)
		f.storage.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "homestays/"+id.String()+"/") && strings.HasSuffix(key, ".png")
		}), "image/png", body).Return("/media/x.png", nil)
		f.factory.Homestays.On("AddImage", ctx, mock.MatchedBy(func(img *entity.HomestayImage) bool {
			return img.IsPrimary && img.URL == "/media/x.png"
		})).Return(nil)

		image, err := f.service.UploadImage(ctx, "host", id, &usecase.UploadImageInput{ContentType: "image/png", Size: 3, Body: body})

		require.NoError(t, err)
		assert.Equal(t, 0, image.SortOrder)
	})

	t.Run("storage cleaned up when save fails", func(t *testing.T) {
		f := newHomestayFixtures(t)
		f.factory.Homestays.On("FindByID", ctx, id).Return(&entity.Homestay{ID: id, HostID: "host", Images: []*entity.HomestayImage{{}}}, nil)
		f.storage.On("Upload", ctx, mock.Anything, "image/jpeg", body).Return("/media/y.jpg", nil)
		f.factory.Homestays.On("AddImage", ctx, mock.Anything).Return(domainerrors.ErrHomestayNotFound)
		f.storage.On("Delete", ctx, mock.Anything).Return(nil)

		_, err := f.service.UploadImage(ctx, "host", id, &usecase.UploadImageInput{ContentType: "image/jpeg", Size: 3, Body: body})

		assert.True(t, errors.Is(err, domainerrors.ErrHomestayNotFound))
	})

	t.Run("rejects non-image", func(t *testing.T) {
		f := newHomestayFixtures(t)

		_, err := f.service.UploadImage(ctx, "host", id, &usecase.UploadImageInput{ContentType: "text/html", Size: 3, Body: body})

		assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
	})

	t.Run("rejects oversized image", func(t *testing.T) {
		f := newHomestayFixtures(t)

		_, err := f.service.UploadImage(ctx, "host", id, &usecase.UploadImageInput{ContentType: "image/png", Size: maxImageSize + 1, Body: body})

		require.Error(t, err)
		assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
		assert.Equal(t, "image must be between 1 byte and 5 MB", err.Error())
	})

	t.Run("not owner", func(t *testing.T) {
		f := newHomestayFixtures(t)
		f.factory.Homestays.On("FindByID", ctx, id).Return(&entity.Homestay{ID: id, HostID: "host"}, nil)

		_, err := f.service.UploadImage(ctx, "intruder", id, &usecase.UploadImageInput{ContentType: "image/png", Size: 3, Body: body})

		assert.True(t, errors.Is(err, domainerrors.ErrNotHomestayOwner))
	})
}

func TestHomestayService_DeleteRemovesStoredImages(t *testing.T) {
	f := newHomestayFixtures(t)
	ctx := context.Background()
	id := uuid.New()
	f.factory.Homestays.On("FindByID", ctx, id).Return(&entity.Homestay{ID: id, HostID: "host", Images: []*entity.HomestayImage{
		{StorageKey: "homestays/a.png"}, {URL: "https://external/b.png"},
	}}, nil)
	f.factory.Homestays.On("Delete", ctx, id).Return(nil)
	f.storage.On("Delete", ctx, "homestays/a.png").Return(nil)

	assert.NoError(t, f.service.Delete(ctx, "host", id))
}

func TestHomestayService_SearchValidation(t *testing.T) {
	f := newHomestayFixtures(t)
	lat := 16.0

	_, err := f.service.Search(context.Background(), entity.HomestaySearch{Latitude: &lat})

	assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
}
