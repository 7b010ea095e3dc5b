package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/partner"
	"github.com/sppg/backend/internal/domain/shared"
)

// SchoolService handles school-related business operations
type SchoolService struct {
	schoolRepo     partner.SchoolRepository
	eventPublisher shared.EventPublisher
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(schoolRepo partner.SchoolRepository) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SchoolService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new school
func (s *SchoolService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSchoolRequest) (*SchoolResponse, error) {
	exists, err := s.schoolRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "School with this code already exists")
	}

	school, err := partner.NewSchool(tenantID, req.Code, req.Name, partner.SchoolLevel(req.Level))
	if err != nil {
		return nil, err
	}

	if req.NPSN != "" {
		if err := school.SetNPSN(req.NPSN); err != nil {
			return nil, err
		}
	}

	if req.Street != "" || req.Village != "" || req.District != "" || req.City != "" || req.Province != "" || req.PostalCode != "" {
		if err := school.SetAddress(req.Street, req.Village, req.District, req.City, req.Province, req.PostalCode); err != nil {
			return nil, err
		}
	}

	if req.ContactPerson != "" || req.Phone != "" || req.Email != "" {
		if err := school.SetContact(req.ContactPerson, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}

	if req.StudentCount != nil {
		if err := school.SetStudentCount(*req.StudentCount); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		school.SetNotes(req.Notes)
	}

	if err := s.schoolRepo.Save(ctx, school); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, school)

	response := ToSchoolResponse(school)
	return &response, nil
}

// GetByID retrieves a school by ID
func (s *SchoolService) GetByID(ctx context.Context, tenantID, schoolID uuid.UUID) (*SchoolResponse, error) {
	school, err := s.schoolRepo.FindByIDForTenant(ctx, tenantID, schoolID)
	if err != nil {
		return nil, err
	}

	response := ToSchoolResponse(school)
	return &response, nil
}

// GetByCode retrieves a school by code
func (s *SchoolService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*SchoolResponse, error) {
	school, err := s.schoolRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	response := ToSchoolResponse(school)
	return &response, nil
}

// List retrieves schools with filtering and pagination
func (s *SchoolService) List(ctx context.Context, tenantID uuid.UUID, filter SchoolListFilter) ([]SchoolListResponse, int64, error) {
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
	if filter.Level != "" {
		domainFilter.Filters["level"] = filter.Level
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}
	if filter.District != "" {
		domainFilter.Filters["district"] = filter.District
	}
	if filter.Province != "" {
		domainFilter.Filters["province"] = filter.Province
	}

	schools, err := s.schoolRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.schoolRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSchoolListResponses(schools), total, nil
}

// Stats returns roster statistics for a tenant's schools
func (s *SchoolService) Stats(ctx context.Context, tenantID uuid.UUID) (*SchoolStatsResponse, error) {
	stats := &SchoolStatsResponse{
		ByLevel: make(map[string]int64),
	}

	total, err := s.schoolRepo.CountForTenant(ctx, tenantID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	stats.Total = total

	if stats.Active, err = s.schoolRepo.CountByStatus(ctx, tenantID, partner.SchoolStatusActive); err != nil {
		return nil, err
	}
	if stats.Inactive, err = s.schoolRepo.CountByStatus(ctx, tenantID, partner.SchoolStatusInactive); err != nil {
		return nil, err
	}

	levels := []partner.SchoolLevel{
		partner.SchoolLevelTK,
		partner.SchoolLevelSD,
		partner.SchoolLevelSMP,
		partner.SchoolLevelSMA,
	}
	for _, level := range levels {
		count, err := s.schoolRepo.CountByLevel(ctx, tenantID, level)
		if err != nil {
			return nil, err
		}
		stats.ByLevel[string(level)] = count
	}

	if stats.TotalStudents, err = s.schoolRepo.SumStudentCount(ctx, tenantID); err != nil {
		return nil, err
	}

	return stats, nil
}

// Update updates a school
func (s *SchoolService) Update(ctx context.Context, tenantID, schoolID uuid.UUID, req UpdateSchoolRequest) (*SchoolResponse, error) {
	school, err := s.schoolRepo.FindByIDForTenant(ctx, tenantID, schoolID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Level != nil {
		name := school.Name
		level := school.Level
		if req.Name != nil {
			name = *req.Name
		}
		if req.Level != nil {
			level = partner.SchoolLevel(*req.Level)
		}
		if err := school.Update(name, level); err != nil {
			return nil, err
		}
	}

	if req.NPSN != nil {
		if err := school.SetNPSN(*req.NPSN); err != nil {
			return nil, err
		}
	}

	if req.Street != nil || req.Village != nil || req.District != nil || req.City != nil || req.Province != nil || req.PostalCode != nil {
		street := school.Street
		village := school.Village
		district := school.District
		city := school.City
		province := school.Province
		postalCode := school.PostalCode
		if req.Street != nil {
			street = *req.Street
		}
		if req.Village != nil {
			village = *req.Village
		}
		if req.District != nil {
			district = *req.District
		}
		if req.City != nil {
			city = *req.City
		}
		if req.Province != nil {
			province = *req.Province
		}
		if req.PostalCode != nil {
			postalCode = *req.PostalCode
		}
		if err := school.SetAddress(street, village, district, city, province, postalCode); err != nil {
			return nil, err
		}
	}

	if req.ContactPerson != nil || req.Phone != nil || req.Email != nil {
		contactPerson := school.ContactPerson
		phone := school.Phone
		email := school.Email
		if req.ContactPerson != nil {
			contactPerson = *req.ContactPerson
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := school.SetContact(contactPerson, phone, email); err != nil {
			return nil, err
		}
	}

	if req.StudentCount != nil {
		if err := school.SetStudentCount(*req.StudentCount); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		school.SetNotes(*req.Notes)
	}

	if err := s.schoolRepo.Save(ctx, school); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, school)

	response := ToSchoolResponse(school)
	return &response, nil
}

// Activate activates a school
func (s *SchoolService) Activate(ctx context.Context, tenantID, schoolID uuid.UUID) (*SchoolResponse, error) {
	return s.changeStatus(ctx, tenantID, schoolID, (*partner.School).Activate)
}

// Deactivate deactivates a school
func (s *SchoolService) Deactivate(ctx context.Context, tenantID, schoolID uuid.UUID) (*SchoolResponse, error) {
	return s.changeStatus(ctx, tenantID, schoolID, (*partner.School).Deactivate)
}

// Delete deletes a school
func (s *SchoolService) Delete(ctx context.Context, tenantID, schoolID uuid.UUID) error {
	return s.schoolRepo.DeleteForTenant(ctx, tenantID, schoolID)
}

func (s *SchoolService) changeStatus(ctx context.Context, tenantID, schoolID uuid.UUID, change func(*partner.School) error) (*SchoolResponse, error) {
	school, err := s.schoolRepo.FindByIDForTenant(ctx, tenantID, schoolID)
	if err != nil {
		return nil, err
	}

	if err := change(school); err != nil {
		return nil, err
	}

	if err := s.schoolRepo.Save(ctx, school); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, school)

	response := ToSchoolResponse(school)
	return &response, nil
}

func (s *SchoolService) publishEvents(ctx context.Context, school *partner.School) {
	if s.eventPublisher == nil {
		return
	}
	events := school.GetDomainEvents()
	school.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}
