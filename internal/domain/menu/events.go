package menu

import (
	"github.com/sppg/backend/internal/domain/shared"
)

// Aggregate types
const (
	AggregateTypeMenu = "Menu"
)

// Event types
const (
	EventTypeMenuCreated       = "menu.created"
	EventTypeMenuStatusChanged = "menu.status_changed"
)

// MenuCreatedEvent is published when a new menu is created
type MenuCreatedEvent struct {
	shared.BaseDomainEvent
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	MealType MealType `json:"meal_type"`
}

// NewMenuCreatedEvent creates a new menu created event
func NewMenuCreatedEvent(menu *Menu) *MenuCreatedEvent {
	return &MenuCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeMenuCreated,
			AggregateTypeMenu,
			menu.ID,
			menu.TenantID,
		),
		Code:     menu.Code,
		Name:     menu.Name,
		MealType: menu.MealType,
	}
}

// MenuStatusChangedEvent is published when a menu is approved or retired
type MenuStatusChangedEvent struct {
	shared.BaseDomainEvent
	Code      string     `json:"code"`
	OldStatus MenuStatus `json:"old_status"`
	NewStatus MenuStatus `json:"new_status"`
}

// NewMenuStatusChangedEvent creates a new menu status changed event
func NewMenuStatusChangedEvent(menu *Menu, oldStatus, newStatus MenuStatus) *MenuStatusChangedEvent {
	return &MenuStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeMenuStatusChanged,
			AggregateTypeMenu,
			menu.ID,
			menu.TenantID,
		),
		Code:      menu.Code,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}
