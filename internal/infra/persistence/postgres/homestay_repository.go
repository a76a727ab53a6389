package postgres

import (
	"context"
	"sort"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// homestayRepository implements the repository.HomestayRepository interface.
type homestayRepository struct {
	db *gorm.DB
}

// NewHomestayRepository is the constructor for homestayRepository.
func NewHomestayRepository(db *gorm.DB) repository.HomestayRepository {
	return &homestayRepository{db: db}
}

// Create persists a new listing.
func (repo *homestayRepository) Create(ctx context.Context, homestay *entity.Homestay) error {
	homestayM := fromHomestayDomain(homestay)

	if err := repo.db.WithContext(ctx).Create(homestayM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid host reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create homestay")
	}

	homestay.ID = homestayM.ID
	homestay.CreatedAt = homestayM.CreatedAt
	homestay.UpdatedAt = homestayM.UpdatedAt

	return nil
}

// FindByID loads the listing with amenities and images.
func (repo *homestayRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Homestay, error) {
	var homestayM model.HomestayModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&homestayM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrHomestayNotFound
		}

		return nil, errors.Wrap(err, "failed to find homestay by id")
	}

	homestays := []*entity.Homestay{toHomestayDomain(&homestayM)}
	if err := repo.attachChildren(ctx, homestays); err != nil {
		return nil, err
	}

	return homestays[0], nil
}

// Search returns bookable listings. When a center point is given, results
// are restricted to the radius and ordered nearest first.
func (repo *homestayRepository) Search(ctx context.Context, filter entity.HomestaySearch) ([]*entity.Homestay, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.HomestayModel{}).
		Where("is_active = ? AND is_approved = ?", true, true)

	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", filter.City)
	}

	nearby := filter.Latitude != nil && filter.Longitude != nil && filter.RadiusKm > 0
	var center orb.Point
	if nearby {
		center = orb.Point{*filter.Longitude, *filter.Latitude}
		bound := geo.NewBoundAroundPoint(center, filter.RadiusKm*1000)
		query = query.
			Where("latitude BETWEEN ? AND ?", bound.Min.Lat(), bound.Max.Lat()).
			Where("longitude BETWEEN ? AND ?", bound.Min.Lon(), bound.Max.Lon())
	}

	var homestayModels []*model.HomestayModel
	if err := query.Order("created_at DESC").Find(&homestayModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search homestays")
	}

	homestays := make([]*entity.Homestay, 0, len(homestayModels))
	distances := make(map[uuid.UUID]float64, len(homestayModels))
	for _, homestayM := range homestayModels {
		if nearby {
			d := geo.Distance(center, orb.Point{homestayM.Longitude, homestayM.Latitude})
			if d > filter.RadiusKm*1000 {
				continue
			}
			distances[homestayM.ID] = d
		}
		homestays = append(homestays, toHomestayDomain(homestayM))
	}

	if nearby {
		sort.SliceStable(homestays, func(i, j int) bool {
			return distances[homestays[i].ID] < distances[homestays[j].ID]
		})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)
	if len(homestays) > limit {
		homestays = homestays[:limit]
	}

	if err := repo.attachChildren(ctx, homestays); err != nil {
		return nil, err
	}

	return homestays, nil
}

// FindByHost lists every listing of a host, including inactive ones.
func (repo *homestayRepository) FindByHost(ctx context.Context, hostID string) ([]*entity.Homestay, error) {
	var homestayModels []*model.HomestayModel
	if err := repo.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&homestayModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find homestays by host")
	}

	homestays := make([]*entity.Homestay, 0, len(homestayModels))
	for _, homestayM := range homestayModels {
		homestays = append(homestays, toHomestayDomain(homestayM))
	}

	if err := repo.attachChildren(ctx, homestays); err != nil {
		return nil, err
	}

	return homestays, nil
}

// Update saves the listing's own columns. Amenities and images are managed separately.
func (repo *homestayRepository) Update(ctx context.Context, homestay *entity.Homestay) error {
	result := repo.db.WithContext(ctx).
		Model(&model.HomestayModel{}).
		Where("id = ?", homestay.ID).
		Updates(map[string]any{
			"title":       homestay.Title,
			"description": homestay.Description,
			"address":     homestay.Address,
			"city":        homestay.City,
			"country":     homestay.Country,
			"latitude":    homestay.Latitude,
			"longitude":   homestay.Longitude,
			"base_price":  homestay.BasePrice,
			"max_guests":  homestay.MaxGuests,
			"bedrooms":    homestay.Bedrooms,
			"bathrooms":   homestay.Bathrooms,
			"is_active":   homestay.IsActive,
			"is_approved": homestay.IsApproved,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update homestay")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrHomestayNotFound
	}

	return nil
}

// Delete removes the listing with its images, amenity links, pricing and blocked dates.
// Listings that still have bookings cannot be deleted.
func (repo *homestayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.HomestayModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrHomestayHasBookings
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete homestay")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrHomestayNotFound
	}

	return nil
}

// ReplaceAmenities swaps the listing's amenity links for the given set.
func (repo *homestayRepository) ReplaceAmenities(ctx context.Context, homestayID uuid.UUID, amenityIDs []uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("homestay_id = ?", homestayID).Delete(&model.HomestayAmenityModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear homestay amenities")
	}

	if len(amenityIDs) == 0 {
		return nil
	}

	links := make([]*model.HomestayAmenityModel, 0, len(amenityIDs))
	seen := make(map[uuid.UUID]struct{}, len(amenityIDs))
	for _, amenityID := range amenityIDs {
		if _, dup := seen[amenityID]; dup {
			continue
		}
		seen[amenityID] = struct{}{}
		links = append(links, &model.HomestayAmenityModel{HomestayID: homestayID, AmenityID: amenityID})
	}

	if err := db.Create(&links).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAmenityNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to link homestay amenities")
	}

	return nil
}

// AddImage persists an image record for a listing.
func (repo *homestayRepository) AddImage(ctx context.Context, image *entity.HomestayImage) error {
	imageM := &model.HomestayImageModel{
		ID:         image.ID,
		HomestayID: image.HomestayID,
		URL:        image.URL,
		StorageKey: image.StorageKey,
		IsPrimary:  image.IsPrimary,
		SortOrder:  image.SortOrder,
	}

	if err := repo.db.WithContext(ctx).Create(imageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrHomestayNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add homestay image")
	}

	image.ID = imageM.ID
	image.CreatedAt = imageM.CreatedAt

	return nil
}

// attachChildren loads amenities and images for the given listings in two queries.
func (repo *homestayRepository) attachChildren(ctx context.Context, homestays []*entity.Homestay) error {
	if len(homestays) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*entity.Homestay, len(homestays))
	ids := make([]uuid.UUID, 0, len(homestays))
	for _, h := range homestays {
		h.Amenities = []*entity.Amenity{}
		h.Images = []*entity.HomestayImage{}
		byID[h.ID] = h
		ids = append(ids, h.ID)
	}

	db := repo.db.WithContext(ctx)

	var rows []struct {
		HomestayID uuid.UUID
		model.AmenityModel
	}
	if err := db.Table("homestay_amenities").
		Select("homestay_amenities.homestay_id, amenities.id, amenities.name, amenities.icon").
		Joins("JOIN amenities ON amenities.id = homestay_amenities.amenity_id").
		Where("homestay_amenities.homestay_id IN ?", ids).
		Order("amenities.name").
		Scan(&rows).Error; err != nil {
		return errors.Wrap(err, "failed to load homestay amenities")
	}
	for i := range rows {
		if h, ok := byID[rows[i].HomestayID]; ok {
			h.Amenities = append(h.Amenities, toAmenityDomain(&rows[i].AmenityModel))
		}
	}

	var imageModels []*model.HomestayImageModel
	if err := db.Where("homestay_id IN ?", ids).
		Order("sort_order, created_at").
		Find(&imageModels).Error; err != nil {
		return errors.Wrap(err, "failed to load homestay images")
	}
	for _, imageM := range imageModels {
		if h, ok := byID[imageM.HomestayID]; ok {
			h.Images = append(h.Images, toHomestayImageDomain(imageM))
		}
	}

	return nil
}

// amenityRepository implements the repository.AmenityRepository interface.
type amenityRepository struct {
	db *gorm.DB
}

// NewAmenityRepository is the constructor for amenityRepository.
func NewAmenityRepository(db *gorm.DB) repository.AmenityRepository {
	return &amenityRepository{db: db}
}

func (repo *amenityRepository) List(ctx context.Context) ([]*entity.Amenity, error) {
	var amenityModels []*model.AmenityModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&amenityModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list amenities")
	}

	amenities := make([]*entity.Amenity, 0, len(amenityModels))
	for _, amenityM := range amenityModels {
		amenities = append(amenities, toAmenityDomain(amenityM))
	}

	return amenities, nil
}

func (repo *amenityRepository) Create(ctx context.Context, amenity *entity.Amenity) error {
	amenityM := &model.AmenityModel{ID: amenity.ID, Name: amenity.Name, Icon: amenity.Icon}

	if err := repo.db.WithContext(ctx).Create(amenityM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAmenityAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create amenity")
	}

	amenity.ID = amenityM.ID

	return nil
}

func (repo *amenityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Amenity, error) {
	if len(ids) == 0 {
		return []*entity.Amenity{}, nil
	}

	var amenityModels []*model.AmenityModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&amenityModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find amenities")
	}

	amenities := make([]*entity.Amenity, 0, len(amenityModels))
	for _, amenityM := range amenityModels {
		amenities = append(amenities, toAmenityDomain(amenityM))
	}

	return amenities, nil
}

// toHomestayDomain converts a GORM HomestayModel to a domain Homestay entity.
func toHomestayDomain(data *model.HomestayModel) *entity.Homestay {
	if data == nil {
		return nil
	}

	return &entity.Homestay{
		ID:          data.ID,
		HostID:      data.HostID,
		Title:       data.Title,
		Description: data.Description,
		Address:     data.Address,
		City:        data.City,
		Country:     data.Country,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		BasePrice:   data.BasePrice,
		MaxGuests:   data.MaxGuests,
		Bedrooms:    data.Bedrooms,
		Bathrooms:   data.Bathrooms,
		IsActive:    data.IsActive,
		IsApproved:  data.IsApproved,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromHomestayDomain converts a domain Homestay entity to a GORM HomestayModel.
func fromHomestayDomain(data *entity.Homestay) *model.HomestayModel {
	if data == nil {
		return nil
	}

	return &model.HomestayModel{
		ID:          data.ID,
		HostID:      data.HostID,
		Title:       data.Title,
		Description: data.Description,
		Address:     data.Address,
		City:        data.City,
		Country:     data.Country,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		BasePrice:   data.BasePrice,
		MaxGuests:   data.MaxGuests,
		Bedrooms:    data.Bedrooms,
		Bathrooms:   data.Bathrooms,
		IsActive:    data.IsActive,
		IsApproved:  data.IsApproved,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toAmenityDomain(data *model.AmenityModel) *entity.Amenity {
	return &entity.Amenity{ID: data.ID, Name: data.Name, Icon: data.Icon}
}

func toHomestayImageDomain(data *model.HomestayImageModel) *entity.HomestayImage {
	return &entity.HomestayImage{
		ID:         data.ID,
		HomestayID: data.HomestayID,
		URL:        data.URL,
		StorageKey: data.StorageKey,
		IsPrimary:  data.IsPrimary,
		SortOrder:  data.SortOrder,
		CreatedAt:  data.CreatedAt,
	}
}
