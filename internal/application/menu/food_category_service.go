package menu

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/menu"
	"github.com/sppg/backend/internal/domain/shared"
)

// FoodCategoryService handles food category management
type FoodCategoryService struct {
	categoryRepo menu.FoodCategoryRepository
}

// NewFoodCategoryService creates a new FoodCategoryService
func NewFoodCategoryService(categoryRepo menu.FoodCategoryRepository) *FoodCategoryService {
	return &FoodCategoryService{categoryRepo: categoryRepo}
}

// Create creates a new food category
func (s *FoodCategoryService) Create(ctx context.Context, req CreateFoodCategoryRequest) (*FoodCategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Food category with this code already exists")
	}

	category, err := menu.NewFoodCategory(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := category.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToFoodCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a food category by ID
func (s *FoodCategoryService) GetByID(ctx context.Context, categoryID uuid.UUID) (*FoodCategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	response := ToFoodCategoryResponse(category)
	return &response, nil
}

// List retrieves all food categories in sort order
func (s *FoodCategoryService) List(ctx context.Context) ([]FoodCategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToFoodCategoryResponses(categories), nil
}

// Update updates a food category
func (s *FoodCategoryService) Update(ctx context.Context, categoryID uuid.UUID, req UpdateFoodCategoryRequest) (*FoodCategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := category.Name
		description := category.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := category.Update(name, description); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToFoodCategoryResponse(category)
	return &response, nil
}

// Delete deletes a food category
func (s *FoodCategoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, categoryID)
}
