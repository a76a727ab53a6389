package impl

import (
	"context"
	"log/slog"
	"path"
	"strings"

	deliverycontext "homestay/internal/delivery/context"
	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/domain/service"
	"homestay/internal/errors"
	"homestay/internal/usecase"
	"homestay/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// maxImageSize caps a single uploaded picture.
const maxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type homestayService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	homestayRepo repository.HomestayRepository
	storage      service.ImageStorage
	logger       *slog.Logger
}

// HomestayServiceParams holds dependencies for HomestayService, injected by Fx.
type HomestayServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	HomestayRepo repository.HomestayRepository
	Storage      service.ImageStorage
	Logger       *slog.Logger
}

// NewHomestayService creates the listing use case
func NewHomestayService(params HomestayServiceParams) usecase.HomestayUsecase {
	return &homestayService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		homestayRepo: params.HomestayRepo,
		storage:      params.Storage,
		logger:       params.Logger,
	}
}

func (srv *homestayService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create stores a new listing. It starts active and waits for admin approval.
func (srv *homestayService) Create(ctx context.Context, hostID string, input *usecase.CreateHomestayInput) (*entity.Homestay, error) {
	if err := validateHomestayInput(input); err != nil {
		return nil, err
	}

	host, err := srv.userRepo.FindByID(ctx, hostID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find host")
	}
	if !host.IsHost {
		return nil, domainerrors.ErrNotHost
	}

	homestay := &entity.Homestay{
		HostID:      hostID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Address:     input.Address,
		City:        strings.TrimSpace(input.City),
		Country:     input.Country,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		BasePrice:   input.BasePrice,
		MaxGuests:   input.MaxGuests,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		IsActive:    true,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		homestayRepo := repoFactory.NewHomestayRepository()
		if err := homestayRepo.Create(ctx, homestay); err != nil {
			return err
		}
		if len(input.AmenityIDs) > 0 {
			return homestayRepo.ReplaceAmenities(ctx, homestay.ID, input.AmenityIDs)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create homestay")
	}

	srv.log(ctx).Info("Homestay created", slog.String("homestay_id", homestay.ID.String()), slog.String("host_id", hostID))

	return srv.homestayRepo.FindByID(ctx, homestay.ID)
}

func (srv *homestayService) Get(ctx context.Context, id uuid.UUID) (*entity.Homestay, error) {
	homestay, err := srv.homestayRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find homestay")
	}

	return homestay, nil
}

// Search requires both coordinates when either is given.
func (srv *homestayService) Search(ctx context.Context, filter entity.HomestaySearch) ([]*entity.Homestay, error) {
	if (filter.Latitude == nil) != (filter.Longitude == nil) {
		return nil, domainerrors.NewValidationError("lat and lon must be given together")
	}
	if filter.Latitude != nil && (*filter.Latitude < -90 || *filter.Latitude > 90 || *filter.Longitude < -180 || *filter.Longitude > 180) {
		return nil, domainerrors.NewValidationError("coordinates out of range")
	}
	if filter.RadiusKm < 0 {
		return nil, domainerrors.NewValidationError("radiusKm must not be negative")
	}

	homestays, err := srv.homestayRepo.Search(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search homestays")
	}

	return homestays, nil
}

func (srv *homestayService) ListByHost(ctx context.Context, hostID string) ([]*entity.Homestay, error) {
	homestays, err := srv.homestayRepo.FindByHost(ctx, hostID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list host homestays")
	}

	return homestays, nil
}

// Delete removes the listing; stored images are removed afterwards on a best-effort basis.
func (srv *homestayService) Delete(ctx context.Context, callerID string, id uuid.UUID) error {
	homestay, err := srv.owned(ctx, callerID, id)
	if err != nil {
		return err
	}

	if err := srv.homestayRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete homestay")
	}

	for _, image := range homestay.Images {
		if image.StorageKey == "" {
			continue
		}
		if err := srv.storage.Delete(ctx, image.StorageKey); err != nil {
			srv.log(ctx).Warn("Failed to delete stored image", slog.String("key", image.StorageKey), slog.Any("error", err))
		}
	}

	return nil
}

func (srv *homestayService) SetActive(ctx context.Context, callerID string, id uuid.UUID, active bool) (*entity.Homestay, error) {
	homestay, err := srv.owned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	homestay.IsActive = active
	if err := srv.homestayRepo.Update(ctx, homestay); err != nil {
		return nil, errors.Wrap(err, "failed to update homestay")
	}

	return homestay, nil
}

func (srv *homestayService) Approve(ctx context.Context, id uuid.UUID) (*entity.Homestay, error) {
	homestay, err := srv.homestayRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find homestay")
	}

	homestay.IsApproved = true
	if err := srv.homestayRepo.Update(ctx, homestay); err != nil {
		return nil, errors.Wrap(err, "failed to approve homestay")
	}

	return homestay, nil
}

func (srv *homestayService) ReplaceAmenities(ctx context.Context, callerID string, id uuid.UUID, amenityIDs []uuid.UUID) (*entity.Homestay, error) {
	if _, err := srv.owned(ctx, callerID, id); err != nil {
		return nil, err
	}

	if err := srv.homestayRepo.ReplaceAmenities(ctx, id, amenityIDs); err != nil {
		return nil, errors.Wrap(err, "failed to replace amenities")
	}

	return srv.homestayRepo.FindByID(ctx, id)
}

// UploadImage stores the picture and links it to the listing. The first image becomes primary.
func (srv *homestayService) UploadImage(ctx context.Context, callerID string, id uuid.UUID, input *usecase.UploadImageInput) (*entity.HomestayImage, error) {
	ext, ok := allowedImageTypes[input.ContentType]
	if !ok {
		return nil, domainerrors.NewValidationError("only JPEG, PNG and WebP images are accepted")
	}
	if input.Size <= 0 || input.Size > maxImageSize {
		return nil, domainerrors.NewValidationError("image must be between 1 byte and " + util.FormatBytes(maxImageSize))
	}

	homestay, err := srv.owned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	key := path.Join("homestays", id.String(), uuid.NewString()+ext)
	url, err := srv.storage.Upload(ctx, key, input.ContentType, input.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store image")
	}

	image := &entity.HomestayImage{
		HomestayID: id,
		URL:        url,
		StorageKey: key,
		IsPrimary:  len(homestay.Images) == 0,
		SortOrder:  len(homestay.Images),
	}
	if err := srv.homestayRepo.AddImage(ctx, image); err != nil {
		if delErr := srv.storage.Delete(ctx, key); delErr != nil {
			srv.log(ctx).Warn("Failed to remove orphaned image", slog.String("key", key), slog.Any("error", delErr))
		}

		return nil, errors.Wrap(err, "failed to save image")
	}

	return image, nil
}

// owned loads the listing and checks the caller hosts it.
func (srv *homestayService) owned(ctx context.Context, callerID string, id uuid.UUID) (*entity.Homestay, error) {
	homestay, err := srv.homestayRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find homestay")
	}
	if homestay.HostID != callerID {
		return nil, domainerrors.ErrNotHomestayOwner
	}

	return homestay, nil
}

func validateHomestayInput(input *usecase.CreateHomestayInput) error {
	switch {
	case strings.TrimSpace(input.Title) == "":
		return domainerrors.NewValidationError("title is required")
	case strings.TrimSpace(input.City) == "":
		return domainerrors.NewValidationError("city is required")
	case input.BasePrice <= 0:
		return domainerrors.NewValidationError("basePrice must be positive")
	case input.MaxGuests <= 0:
		return domainerrors.NewValidationError("maxGuests must be positive")
	case input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180:
		return domainerrors.NewValidationError("coordinates out of range")
	}

	return nil
}

type amenityService struct {
	amenityRepo repository.AmenityRepository
}

// NewAmenityService creates the amenity catalogue use case
func NewAmenityService(amenityRepo repository.AmenityRepository) usecase.AmenityUsecase {
	return &amenityService{amenityRepo: amenityRepo}
}

func (srv *amenityService) List(ctx context.Context) ([]*entity.Amenity, error) {
	amenities, err := srv.amenityRepo.List(ctx)

	return amenities, errors.Wrap(err, "failed to list amenities")
}

func (srv *amenityService) Create(ctx context.Context, name, icon string) (*entity.Amenity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.NewValidationError("name is required")
	}

	amenity := &entity.Amenity{Name: name, Icon: icon}
	if err := srv.amenityRepo.Create(ctx, amenity); err != nil {
		return nil, errors.Wrap(err, "failed to create amenity")
	}

	return amenity, nil
}
