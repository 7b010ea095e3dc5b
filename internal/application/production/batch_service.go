package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/menu"
	"github.com/sppg/backend/internal/domain/production"
	"github.com/sppg/backend/internal/domain/program"
	"github.com/sppg/backend/internal/domain/shared"
)

// BatchService handles the production batch lifecycle
type BatchService struct {
	batchRepo      production.BatchRepository
	menuRepo       menu.MenuRepository
	programRepo    program.ProgramRepository
	eventPublisher shared.EventPublisher
}

// NewBatchService creates a new BatchService
func NewBatchService(
	batchRepo production.BatchRepository,
	menuRepo menu.MenuRepository,
	programRepo program.ProgramRepository,
) *BatchService {
	return &BatchService{
		batchRepo:   batchRepo,
		menuRepo:    menuRepo,
		programRepo: programRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *BatchService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create plans a new production batch for an approved menu and active program
func (s *BatchService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBatchRequest) (*BatchResponse, error) {
	m, err := s.menuRepo.FindByIDForTenant(ctx, tenantID, req.MenuID)
	if err != nil {
		return nil, err
	}
	if !m.IsApproved() {
		return nil, shared.NewDomainError("MENU_NOT_APPROVED", "Only approved menus can be produced")
	}

	prog, err := s.programRepo.FindByIDForTenant(ctx, tenantID, req.ProgramID)
	if err != nil {
		return nil, err
	}
	if !prog.IsActive() {
		return nil, shared.NewDomainError("PROGRAM_NOT_ACTIVE", "Batches can only be planned for active programs")
	}

	sequence, err := s.batchRepo.NextSequenceForDate(ctx, tenantID, req.ProductionDate)
	if err != nil {
		return nil, err
	}
	number := production.FormatBatchNumber(req.ProductionDate, sequence)

	batch, err := production.NewProductionBatch(tenantID, req.MenuID, req.ProgramID, number, req.ProductionDate, req.TargetPortions)
	if err != nil {
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, batch)

	response := ToBatchResponse(batch)
	return &response, nil
}

// GetByID retrieves a batch by ID
func (s *BatchService) GetByID(ctx context.Context, tenantID, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	response := ToBatchResponse(batch)
	return &response, nil
}

// GetByNumber retrieves a batch by its number
func (s *BatchService) GetByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}

	response := ToBatchResponse(batch)
	return &response, nil
}

// List retrieves batches with filtering and pagination
func (s *BatchService) List(ctx context.Context, tenantID uuid.UUID, filter BatchListFilter) ([]BatchListResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	batches, err := s.batchRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.batchRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBatchListResponses(batches), total, nil
}

// ListByProductionDate retrieves batches for one production day
func (s *BatchService) ListByProductionDate(ctx context.Context, tenantID uuid.UUID, date time.Time, filter BatchListFilter) ([]BatchListResponse, error) {
	batches, err := s.batchRepo.FindByProductionDate(ctx, tenantID, date, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToBatchListResponses(batches), nil
}

// Update updates a planned batch's target portions
func (s *BatchService) Update(ctx context.Context, tenantID, batchID uuid.UUID, req UpdateBatchRequest) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	if req.TargetPortions != nil {
		if err := batch.SetTargetPortions(*req.TargetPortions); err != nil {
			return nil, err
		}
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, batch)

	response := ToBatchResponse(batch)
	return &response, nil
}

// Start moves a planned batch into progress
func (s *BatchService) Start(ctx context.Context, tenantID, batchID uuid.UUID) (*BatchResponse, error) {
	return s.transition(ctx, tenantID, batchID, (*production.ProductionBatch).Start)
}

// Complete records a batch's actual output
func (s *BatchService) Complete(ctx context.Context, tenantID, batchID uuid.UUID, req CompleteBatchRequest) (*BatchResponse, error) {
	return s.transition(ctx, tenantID, batchID, func(batch *production.ProductionBatch) error {
		return batch.Complete(req.ProducedPortions)
	})
}

// Cancel cancels a planned or in-progress batch
func (s *BatchService) Cancel(ctx context.Context, tenantID, batchID uuid.UUID, req CancelBatchRequest) (*BatchResponse, error) {
	return s.transition(ctx, tenantID, batchID, func(batch *production.ProductionBatch) error {
		return batch.Cancel(req.Reason)
	})
}

// Delete deletes a batch that was never started
func (s *BatchService) Delete(ctx context.Context, tenantID, batchID uuid.UUID) error {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return err
	}
	if batch.Status != production.BatchStatusPlanned {
		return shared.NewDomainError("NOT_PLANNED", "Only planned batches can be deleted")
	}

	return s.batchRepo.DeleteForTenant(ctx, tenantID, batchID)
}

func (s *BatchService) transition(ctx context.Context, tenantID, batchID uuid.UUID, change func(*production.ProductionBatch) error) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}

	if err := change(batch); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, batch)

	response := ToBatchResponse(batch)
	return &response, nil
}

func (s *BatchService) toDomainFilter(filter BatchListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.MenuID != nil {
		domainFilter.Filters["menu_id"] = *filter.MenuID
	}
	if filter.ProgramID != nil {
		domainFilter.Filters["program_id"] = *filter.ProgramID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	return domainFilter
}

func (s *BatchService) publishEvents(ctx context.Context, batch *production.ProductionBatch) {
	if s.eventPublisher == nil {
		return
	}
	events := batch.GetDomainEvents()
	batch.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}
