package handler

import (
	"net/http"

	"homestay/internal/delivery/http/response"
	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/errors"
	"homestay/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// imageField is the multipart field carrying an uploaded picture.
const imageField = "image"

// HomestayHandlerParams holds dependencies for HomestayHandler, injected by Fx.
type HomestayHandlerParams struct {
	fx.In

	HomestayUC     usecase.HomestayUsecase
	AvailabilityUC usecase.AvailabilityUsecase
}

// HomestayHandler serves listings, their availability and their images.
type HomestayHandler struct {
	homestayUC     usecase.HomestayUsecase
	availabilityUC usecase.AvailabilityUsecase
}

// NewHomestayHandler is the constructor for HomestayHandler
func NewHomestayHandler(params HomestayHandlerParams) *HomestayHandler {
	return &HomestayHandler{
		homestayUC:     params.HomestayUC,
		availabilityUC: params.AvailabilityUC,
	}
}

type CreateHomestayRequest struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description" validate:"max=4000"`
	Address     string      `json:"address" validate:"max=300"`
	City        string      `json:"city" validate:"required,max=100"`
	Country     string      `json:"country" validate:"max=100"`
	Latitude    float64     `json:"latitude" validate:"latitude"`
	Longitude   float64     `json:"longitude" validate:"longitude"`
	BasePrice   float64     `json:"basePrice" validate:"gt=0"`
	MaxGuests   int         `json:"maxGuests" validate:"gt=0"`
	Bedrooms    int         `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int         `json:"bathrooms" validate:"gte=0"`
	AmenityIDs  []uuid.UUID `json:"amenityIds"`
}

type SetStatusRequest struct {
	IsActive bool `json:"isActive"`
}

type PricingRequest struct {
	Date  string  `json:"date" validate:"required"`
	Price float64 `json:"price" validate:"gt=0"`
	Note  string  `json:"note" validate:"max=200"`
}

type BlockDateRequest struct {
	Date   string `json:"date" validate:"required"`
	Reason string `json:"reason" validate:"max=200"`
}

type AmenitiesRequest struct {
	AmenityIDs []uuid.UUID `json:"amenityIds"`
}

// Create handles a new listing from a host.
func (h *HomestayHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreateHomestayRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	homestay, err := h.homestayUC.Create(c.Request().Context(), userID, &usecase.CreateHomestayInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		BasePrice:   req.BasePrice,
		MaxGuests:   req.MaxGuests,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AmenityIDs:  req.AmenityIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, newHomestayResponse(homestay), "Homestay created, awaiting approval")
}

func (h *HomestayHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	homestay, err := h.homestayUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newHomestayResponse(homestay), "")
}

// Search lists bookable homestays, optionally filtered by city and distance.
func (h *HomestayHandler) Search(c echo.Context) error {
	var (
		filter   entity.HomestaySearch
		lat, lon float64
	)
	err := echo.QueryParamsBinder(c).
		String("city", &filter.City).
		Float64("lat", &lat).
		Float64("lon", &lon).
		Float64("radiusKm", &filter.RadiusKm).
		Int("limit", &filter.Limit).
		BindError()
	if err != nil {
		return domainerrors.NewValidationError("Invalid search parameters")
	}
	if c.QueryParam("lat") != "" {
		filter.Latitude = &lat
	}
	if c.QueryParam("lon") != "" {
		filter.Longitude = &lon
	}

	homestays, err := h.homestayUC.Search(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newHomestayResponses(homestays), "")
}

func (h *HomestayHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.homestayUC.Delete(c.Request().Context(), userID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// SetStatus lets the owner open or close the listing for bookings.
func (h *HomestayHandler) SetStatus(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req SetStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	homestay, err := h.homestayUC.SetActive(c.Request().Context(), userID, id, req.IsActive)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newHomestayResponse(homestay), "")
}

// Approve publishes a listing. Admin only.
func (h *HomestayHandler) Approve(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	homestay, err := h.homestayUC.Approve(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newHomestayResponse(homestay), "Homestay approved")
}

func (h *HomestayHandler) SetPricing(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req PricingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}

	pricing, err := h.availabilityUC.SetPricing(c.Request().Context(), userID, id, date, req.Price, req.Note)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, PricingResponse{
		ID:    pricing.ID,
		Date:  pricing.Date.Format(dateLayout),
		Price: pricing.Price,
		Note:  pricing.Note,
	}, "")
}

func (h *HomestayHandler) BlockDate(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req BlockDateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}

	blocked, err := h.availabilityUC.BlockDate(c.Request().Context(), userID, id, date, req.Reason)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, BlockedDateResponse{
		ID:     blocked.ID,
		Date:   blocked.Date.Format(dateLayout),
		Reason: blocked.Reason,
	}, "Date blocked")
}

func (h *HomestayHandler) UnblockDate(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	date, err := parseDate("date", c.Param("date"))
	if err != nil {
		return err
	}

	if err := h.availabilityUC.UnblockDate(c.Request().Context(), userID, id, date); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

func (h *HomestayHandler) ReplaceAmenities(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req AmenitiesRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	homestay, err := h.homestayUC.ReplaceAmenities(c.Request().Context(), userID, id, req.AmenityIDs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newHomestayResponse(homestay), "")
}

// UploadImage accepts a multipart picture in the "image" field.
func (h *HomestayHandler) UploadImage(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile(imageField)
	if err != nil {
		return domainerrors.NewValidationError("An image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	image, err := h.homestayUC.UploadImage(c.Request().Context(), userID, id, &usecase.UploadImageInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, newImageResponse(image), "Image uploaded")
}

// AmenityHandlerParams holds dependencies for AmenityHandler, injected by Fx.
type AmenityHandlerParams struct {
	fx.In

	AmenityUC usecase.AmenityUsecase
}

// AmenityHandler serves the amenity catalogue.
type AmenityHandler struct {
	amenityUC usecase.AmenityUsecase
}

// NewAmenityHandler is the constructor for AmenityHandler
func NewAmenityHandler(params AmenityHandlerParams) *AmenityHandler {
	return &AmenityHandler{amenityUC: params.AmenityUC}
}

type CreateAmenityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"max=100"`
}

func (h *AmenityHandler) List(c echo.Context) error {
	amenities, err := h.amenityUC.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAmenityResponses(amenities), "")
}

func (h *AmenityHandler) Create(c echo.Context) error {
	var req CreateAmenityRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	amenity, err := h.amenityUC.Create(c.Request().Context(), req.Name, req.Icon)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, AmenityResponse{ID: amenity.ID, Name: amenity.Name, Icon: amenity.Icon}, "Amenity created")
}
