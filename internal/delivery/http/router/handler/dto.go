package handler

import (
	"time"

	"homestay/internal/domain/entity"
	"homestay/internal/usecase"

	"github.com/google/uuid"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	IsHost    bool      `json:"isHost"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		IsHost:    u.IsHost,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse carries issued tokens.
type AuthResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    int64         `json:"expiresIn"`
	User         *UserResponse `json:"user,omitempty"`
}

func newAuthResponse(out *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    out.ExpiresIn,
		User:         newUserResponse(out.User),
	}
}

type AmenityResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Icon string    `json:"icon,omitempty"`
}

func newAmenityResponses(amenities []*entity.Amenity) []AmenityResponse {
	out := make([]AmenityResponse, 0, len(amenities))
	for _, a := range amenities {
		out = append(out, AmenityResponse{ID: a.ID, Name: a.Name, Icon: a.Icon})
	}

	return out
}

type ImageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	IsPrimary bool      `json:"isPrimary"`
	SortOrder int       `json:"sortOrder"`
}

func newImageResponse(img *entity.HomestayImage) ImageResponse {
	return ImageResponse{ID: img.ID, URL: img.URL, IsPrimary: img.IsPrimary, SortOrder: img.SortOrder}
}

// HomestayResponse is a listing with its amenities and images.
type HomestayResponse struct {
	ID          uuid.UUID         `json:"id"`
	HostID      string            `json:"hostId"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Address     string            `json:"address,omitempty"`
	City        string            `json:"city"`
	Country     string            `json:"country,omitempty"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	BasePrice   float64           `json:"basePrice"`
	MaxGuests   int               `json:"maxGuests"`
	Bedrooms    int               `json:"bedrooms"`
	Bathrooms   int               `json:"bathrooms"`
	IsActive    bool              `json:"isActive"`
	IsApproved  bool              `json:"isApproved"`
	Amenities   []AmenityResponse `json:"amenities"`
	Images      []ImageResponse   `json:"images"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func newHomestayResponse(h *entity.Homestay) *HomestayResponse {
	images := make([]ImageResponse, 0, len(h.Images))
	for _, img := range h.Images {
		images = append(images, newImageResponse(img))
	}

	return &HomestayResponse{
		ID:          h.ID,
		HostID:      h.HostID,
		Title:       h.Title,
		Description: h.Description,
		Address:     h.Address,
		City:        h.City,
		Country:     h.Country,
		Latitude:    h.Latitude,
		Longitude:   h.Longitude,
		BasePrice:   h.BasePrice,
		MaxGuests:   h.MaxGuests,
		Bedrooms:    h.Bedrooms,
		Bathrooms:   h.Bathrooms,
		IsActive:    h.IsActive,
		IsApproved:  h.IsApproved,
		Amenities:   newAmenityResponses(h.Amenities),
		Images:      images,
		CreatedAt:   h.CreatedAt,
	}
}

func newHomestayResponses(homestays []*entity.Homestay) []*HomestayResponse {
	out := make([]*HomestayResponse, 0, len(homestays))
	for _, h := range homestays {
		out = append(out, newHomestayResponse(h))
	}

	return out
}

type PricingResponse struct {
	ID    uuid.UUID `json:"id"`
	Date  string    `json:"date"`
	Price float64   `json:"price"`
	Note  string    `json:"note,omitempty"`
}

type BlockedDateResponse struct {
	ID     uuid.UUID `json:"id"`
	Date   string    `json:"date"`
	Reason string    `json:"reason,omitempty"`
}

// BookingResponse is a reservation as seen by its guest or host.
type BookingResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         string     `json:"userId"`
	HomestayID     uuid.UUID  `json:"homestayId"`
	PromotionID    *uuid.UUID `json:"promotionId,omitempty"`
	CheckIn        string     `json:"checkIn"`
	CheckOut       string     `json:"checkOut"`
	Guests         int        `json:"guests"`
	TotalPrice     float64    `json:"totalPrice"`
	DiscountAmount float64    `json:"discountAmount"`
	Status         string     `json:"status"`
	Note           string     `json:"note,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func newBookingResponse(b *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		HomestayID:     b.HomestayID,
		PromotionID:    b.PromotionID,
		CheckIn:        b.CheckIn.Format(dateLayout),
		CheckOut:       b.CheckOut.Format(dateLayout),
		Guests:         b.Guests,
		TotalPrice:     b.TotalPrice,
		DiscountAmount: b.DiscountAmount,
		Status:         string(b.Status),
		Note:           b.Note,
		CreatedAt:      b.CreatedAt,
	}
}

type PaymentResponse struct {
	ID             uuid.UUID  `json:"id"`
	BookingID      uuid.UUID  `json:"bookingId"`
	Amount         float64    `json:"amount"`
	Method         string     `json:"method"`
	Status         string     `json:"status"`
	TransactionRef string     `json:"transactionRef"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
}

type PromotionResponse struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Description     string    `json:"description,omitempty"`
	DiscountPercent float64   `json:"discountPercent"`
	ValidFrom       string    `json:"validFrom"`
	ValidTo         string    `json:"validTo"`
	IsActive        bool      `json:"isActive"`
}

type ConversationResponse struct {
	ID                  uuid.UUID  `json:"id"`
	User1ID             string     `json:"user1Id"`
	User2ID             string     `json:"user2Id"`
	HomestayID          *uuid.UUID `json:"homestayId,omitempty"`
	BookingID           *uuid.UUID `json:"bookingId,omitempty"`
	LastMessage         string     `json:"lastMessage,omitempty"`
	LastMessageAt       *time.Time `json:"lastMessageAt,omitempty"`
	LastMessageSenderID *string    `json:"lastMessageSenderId,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

func newConversationResponse(c *entity.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:                  c.ID,
		User1ID:             c.User1ID,
		User2ID:             c.User2ID,
		HomestayID:          c.HomestayID,
		BookingID:           c.BookingID,
		LastMessage:         c.LastMessage,
		LastMessageAt:       c.LastMessageAt,
		LastMessageSenderID: c.LastMessageSenderID,
		CreatedAt:           c.CreatedAt,
	}
}

type MessageResponse struct {
	ID             uuid.UUID  `json:"id"`
	ConversationID uuid.UUID  `json:"conversationId"`
	SenderID       string     `json:"senderId"`
	ReceiverID     string     `json:"receiverId"`
	Content        string     `json:"content"`
	IsRead         bool       `json:"isRead"`
	SentAt         time.Time  `json:"sentAt"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
}

func newMessageResponse(m *entity.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		ReceiverID:     m.ReceiverID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		SentAt:         m.SentAt,
		ReadAt:         m.ReadAt,
	}
}

type NotificationResponse struct {
	ID              uuid.UUID         `json:"id"`
	Type            string            `json:"type"`
	Title           string            `json:"title"`
	Content         string            `json:"content"`
	Status          string            `json:"status"`
	IsRead          bool              `json:"isRead"`
	RequesterID     *string           `json:"requesterId,omitempty"`
	RequesterName   string            `json:"requesterName,omitempty"`
	RequesterAvatar string            `json:"requesterAvatar,omitempty"`
	ConversationID  *uuid.UUID        `json:"conversationId,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	RespondedAt     *time.Time        `json:"respondedAt,omitempty"`
}

func newNotificationResponse(n *entity.UserNotification) NotificationResponse {
	return NotificationResponse{
		ID:              n.ID,
		Type:            string(n.Type),
		Title:           n.Title,
		Content:         n.Content,
		Status:          string(n.Status),
		IsRead:          n.IsRead,
		RequesterID:     n.RequesterID,
		RequesterName:   n.RequesterName,
		RequesterAvatar: n.RequesterAvatar,
		ConversationID:  n.ConversationID,
		Metadata:        n.Metadata,
		CreatedAt:       n.CreatedAt,
		RespondedAt:     n.RespondedAt,
	}
}
