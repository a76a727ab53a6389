// Package model holds the GORM persistence models. Foreign keys and their delete
// actions are declared on the side that holds the key, so each constraint is
// created inline with its table.
package model

import (
	"github.com/google/uuid"
)

// newID returns a time-ordered UUID, falling back to a random one.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}

// AllModels lists every model in dependency order, referenced tables first.
func AllModels() []any {
	return []any{
		&UserModel{},
		&AmenityModel{},
		&HomestayModel{},
		&HomestayAmenityModel{},
		&HomestayImageModel{},
		&HomestayPricingModel{},
		&BlockedDateModel{},
		&PromotionModel{},
		&BookingModel{},
		&PaymentModel{},
		&ConversationModel{},
		&MessageModel{},
		&UserNotificationModel{},
	}
}
