package menu

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sppg/backend/internal/domain/shared"
)

// MenuStatus represents the lifecycle status of a menu
type MenuStatus string

const (
	MenuStatusDraft    MenuStatus = "draft"
	MenuStatusApproved MenuStatus = "approved"
	MenuStatusRetired  MenuStatus = "retired"
)

// MealType represents when a menu is served
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeSnack     MealType = "snack"
)

// NutritionFacts holds the per-portion nutrition values of a menu.
// All values are per single serving.
type NutritionFacts struct {
	Calories decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // kcal
	Protein  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // grams
	Carbs    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // grams
	Fat      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // grams
	Fiber    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // grams
	Sodium   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // milligrams
	Sugar    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // grams
}

// Menu represents a meal menu with its nutrition profile.
// It is the aggregate root for menu operations.
type Menu struct {
	shared.TenantAggregateRoot
	Code         string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_menu_tenant_code,priority:2"`
	Name         string     `gorm:"type:varchar(200);not null"`
	MealType     MealType   `gorm:"type:varchar(20);not null"`
	Status       MenuStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	CategoryID   *uuid.UUID `gorm:"type:uuid;index"`
	Description  string     `gorm:"type:text"`
	Nutrition    NutritionFacts  `gorm:"embedded;embeddedPrefix:nutrition_"`
	CostPerServe decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ApprovedBy   *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt   *time.Time
	RetiredAt    *time.Time
}

// TableName returns the table name for GORM
func (Menu) TableName() string {
	return "menus"
}

// NewMenu creates a new menu in draft status
func NewMenu(tenantID uuid.UUID, code, name string, mealType MealType) (*Menu, error) {
	if err := validateMenuCode(code); err != nil {
		return nil, err
	}
	if err := validateMenuName(name); err != nil {
		return nil, err
	}
	if err := validateMealType(mealType); err != nil {
		return nil, err
	}

	menu := &Menu{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		MealType:            mealType,
		Status:              MenuStatusDraft,
	}

	menu.AddDomainEvent(NewMenuCreatedEvent(menu))

	return menu, nil
}

// Update updates the menu's basic information; only draft menus can be edited
func (m *Menu) Update(name string, mealType MealType, description string) error {
	if m.Status != MenuStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft menus can be edited")
	}
	if err := validateMenuName(name); err != nil {
		return err
	}
	if err := validateMealType(mealType); err != nil {
		return err
	}

	m.Name = name
	m.MealType = mealType
	m.Description = description
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// SetCategory assigns the menu to a food category
func (m *Menu) SetCategory(categoryID uuid.UUID) error {
	if m.Status != MenuStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft menus can be edited")
	}
	if categoryID == uuid.Nil {
		m.CategoryID = nil
	} else {
		m.CategoryID = &categoryID
	}
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// SetNutrition records the menu's per-portion nutrition facts
func (m *Menu) SetNutrition(facts NutritionFacts) error {
	if m.Status != MenuStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft menus can be edited")
	}
	for _, v := range []decimal.Decimal{
		facts.Calories, facts.Protein, facts.Carbs, facts.Fat,
		facts.Fiber, facts.Sodium, facts.Sugar,
	} {
		if v.IsNegative() {
			return shared.NewDomainError("INVALID_NUTRITION", "Nutrition values cannot be negative")
		}
	}

	m.Nutrition = facts
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// SetCostPerServe sets the estimated cost per serving
func (m *Menu) SetCostPerServe(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost per serve cannot be negative")
	}

	m.CostPerServe = cost
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// Approve approves a draft menu for use in production planning
func (m *Menu) Approve(approvedBy uuid.UUID) error {
	if m.Status != MenuStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft menus can be approved")
	}
	if m.Nutrition.Calories.IsZero() {
		return shared.NewDomainError("NUTRITION_MISSING", "Nutrition facts must be set before approval")
	}

	now := time.Now()
	m.Status = MenuStatusApproved
	m.ApprovedBy = &approvedBy
	m.ApprovedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuStatusChangedEvent(m, MenuStatusDraft, MenuStatusApproved))

	return nil
}

// Retire retires an approved menu; retired is terminal
func (m *Menu) Retire() error {
	if m.Status != MenuStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved menus can be retired")
	}

	now := time.Now()
	m.Status = MenuStatusRetired
	m.RetiredAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuStatusChangedEvent(m, MenuStatusApproved, MenuStatusRetired))

	return nil
}

// IsApproved returns true if the menu is approved
func (m *Menu) IsApproved() bool {
	return m.Status == MenuStatusApproved
}

// Validation functions

func validateMenuCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Menu code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Menu code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Menu code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateMenuName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Menu name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Menu name cannot exceed 200 characters")
	}
	return nil
}

func validateMealType(mealType MealType) error {
	switch mealType {
	case MealTypeBreakfast, MealTypeLunch, MealTypeSnack:
		return nil
	default:
		return shared.NewDomainError("INVALID_MEAL_TYPE", "Invalid meal type")
	}
}
