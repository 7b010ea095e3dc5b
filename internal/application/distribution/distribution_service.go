package distribution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/distribution"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/production"
	"github.com/sppg/backend/internal/domain/shared"
)

// DistributionService handles delivery runs from production batches to schools
type DistributionService struct {
	distRepo       distribution.DistributionRepository
	batchRepo      production.BatchRepository
	schoolRepo     partner.SchoolRepository
	eventPublisher shared.EventPublisher
}

// NewDistributionService creates a new DistributionService
func NewDistributionService(
	distRepo distribution.DistributionRepository,
	batchRepo production.BatchRepository,
	schoolRepo partner.SchoolRepository,
) *DistributionService {
	return &DistributionService{
		distRepo:   distRepo,
		batchRepo:  batchRepo,
		schoolRepo: schoolRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *DistributionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create schedules a delivery, allocating portions from a completed batch
func (s *DistributionService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDistributionRequest) (*DistributionResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, req.BatchID)
	if err != nil {
		return nil, err
	}

	school, err := s.schoolRepo.FindByIDForTenant(ctx, tenantID, req.SchoolID)
	if err != nil {
		return nil, err
	}
	if school.Status != partner.SchoolStatusActive {
		return nil, shared.NewDomainError("SCHOOL_INACTIVE", "Deliveries cannot be scheduled for inactive schools")
	}

	if err := batch.AllocatePortions(req.PortionsSent); err != nil {
		return nil, err
	}

	dist, err := distribution.NewDistribution(tenantID, req.BatchID, req.SchoolID, req.ScheduledDate, req.PortionsSent)
	if err != nil {
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	if err := s.distRepo.Save(ctx, dist); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, dist)

	response := ToDistributionResponse(dist)
	return &response, nil
}

// GetByID retrieves a distribution by ID
func (s *DistributionService) GetByID(ctx context.Context, tenantID, distID uuid.UUID) (*DistributionResponse, error) {
	dist, err := s.distRepo.FindByIDForTenant(ctx, tenantID, distID)
	if err != nil {
		return nil, err
	}

	response := ToDistributionResponse(dist)
	return &response, nil
}

// List retrieves distributions with filtering and pagination
func (s *DistributionService) List(ctx context.Context, tenantID uuid.UUID, filter DistributionListFilter) ([]DistributionListResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	dists, err := s.distRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.distRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDistributionListResponses(dists), total, nil
}

// ListByBatch retrieves distributions drawing from a batch
func (s *DistributionService) ListByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]DistributionListResponse, error) {
	dists, err := s.distRepo.FindByBatch(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}
	return ToDistributionListResponses(dists), nil
}

// ListBySchool retrieves distributions for a school
func (s *DistributionService) ListBySchool(ctx context.Context, tenantID, schoolID uuid.UUID, filter DistributionListFilter) ([]DistributionListResponse, error) {
	dists, err := s.distRepo.FindBySchool(ctx, tenantID, schoolID, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToDistributionListResponses(dists), nil
}

// ListByScheduledDate retrieves distributions scheduled on one day
func (s *DistributionService) ListByScheduledDate(ctx context.Context, tenantID uuid.UUID, date time.Time, filter DistributionListFilter) ([]DistributionListResponse, error) {
	dists, err := s.distRepo.FindByScheduledDate(ctx, tenantID, date, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToDistributionListResponses(dists), nil
}

// AssignTransport assigns a vehicle and driver to a scheduled delivery
func (s *DistributionService) AssignTransport(ctx context.Context, tenantID, distID uuid.UUID, req AssignTransportRequest) (*DistributionResponse, error) {
	return s.transition(ctx, tenantID, distID, func(dist *distribution.Distribution) error {
		return dist.AssignTransport(req.VehiclePlate, req.DriverName)
	})
}

// Depart marks a delivery as in transit
func (s *DistributionService) Depart(ctx context.Context, tenantID, distID uuid.UUID) (*DistributionResponse, error) {
	return s.transition(ctx, tenantID, distID, (*distribution.Distribution).Depart)
}

// ConfirmDelivery records the delivered portion count and receiver
func (s *DistributionService) ConfirmDelivery(ctx context.Context, tenantID, distID uuid.UUID, req ConfirmDeliveryRequest) (*DistributionResponse, error) {
	return s.transition(ctx, tenantID, distID, func(dist *distribution.Distribution) error {
		return dist.ConfirmDelivery(req.PortionsDelivered, req.ReceiverName)
	})
}

// Cancel cancels a delivery and releases its portions back to the batch
func (s *DistributionService) Cancel(ctx context.Context, tenantID, distID uuid.UUID, req CancelDistributionRequest) (*DistributionResponse, error) {
	dist, err := s.distRepo.FindByIDForTenant(ctx, tenantID, distID)
	if err != nil {
		return nil, err
	}

	if err := dist.Cancel(req.Reason); err != nil {
		return nil, err
	}

	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, dist.BatchID)
	if err != nil {
		return nil, err
	}
	if err := batch.ReleasePortions(dist.PortionsSent); err != nil {
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	if err := s.distRepo.Save(ctx, dist); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, dist)

	response := ToDistributionResponse(dist)
	return &response, nil
}

func (s *DistributionService) transition(ctx context.Context, tenantID, distID uuid.UUID, change func(*distribution.Distribution) error) (*DistributionResponse, error) {
	dist, err := s.distRepo.FindByIDForTenant(ctx, tenantID, distID)
	if err != nil {
		return nil, err
	}

	if err := change(dist); err != nil {
		return nil, err
	}

	if err := s.distRepo.Save(ctx, dist); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, dist)

	response := ToDistributionResponse(dist)
	return &response, nil
}

func (s *DistributionService) toDomainFilter(filter DistributionListFilter) shared.Filter {
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
	if filter.BatchID != nil {
		domainFilter.Filters["batch_id"] = *filter.BatchID
	}
	if filter.SchoolID != nil {
		domainFilter.Filters["school_id"] = *filter.SchoolID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	return domainFilter
}

func (s *DistributionService) publishEvents(ctx context.Context, dist *distribution.Distribution) {
	if s.eventPublisher == nil {
		return
	}
	events := dist.GetDomainEvents()
	dist.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}
