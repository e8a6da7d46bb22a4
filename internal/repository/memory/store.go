// Package memory provides in-memory implementations of the repository
// interfaces. It backs the service when no database is configured and every
// workflow test. Mutations copy on write; transitions hold the store lock so
// a partial update is never observable.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
)

type Store struct {
	mu            sync.RWMutex
	bookings      map[uuid.UUID]models.Booking
	imports       map[uuid.UUID]models.ImportInspection
	farmInspects  map[uuid.UUID]models.FarmInspection
	surveillance  map[uuid.UUID]models.PestSurveillance
	users         map[uuid.UUID]models.User
	farms         map[uuid.UUID]models.Farm
	auditLog      []models.AuditEntry
	tokenIndex    map[string]uuid.UUID
	importRefs    map[string]uuid.UUID
	farmInspRefs  map[string]uuid.UUID
	emailIndex    map[string]uuid.UUID
}

func NewStore() *Store {
	return &Store{
		bookings:     make(map[uuid.UUID]models.Booking),
		imports:      make(map[uuid.UUID]models.ImportInspection),
		farmInspects: make(map[uuid.UUID]models.FarmInspection),
		surveillance: make(map[uuid.UUID]models.PestSurveillance),
		users:        make(map[uuid.UUID]models.User),
		farms:        make(map[uuid.UUID]models.Farm),
		tokenIndex:   make(map[string]uuid.UUID),
		importRefs:   make(map[string]uuid.UUID),
		farmInspRefs: make(map[string]uuid.UUID),
		emailIndex:   make(map[string]uuid.UUID),
	}
}

// ============================================================================
// BOOKINGS
// ============================================================================

func (s *Store) Create(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	s.bookings[booking.ID] = *booking
	s.tokenIndex[booking.SubmissionToken] = booking.ID
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityBooking, ID: id.String()}
	}
	return &booking, nil
}

func (s *Store) GetBySubmissionToken(ctx context.Context, token string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tokenIndex[token]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityBooking, ID: token}
	}
	booking := s.bookings[id]
	return &booking, nil
}

func (s *Store) List(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := []models.Booking{}
	for _, booking := range s.bookings {
		if status == nil || booking.Status == *status {
			bookings = append(bookings, booking)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (s *Store) UpdateTransition(ctx context.Context, booking *models.Booking, from models.BookingStatus, entry *models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.bookings[booking.ID]
	if !ok {
		return &models.NotFoundError{Entity: models.EntityBooking, ID: booking.ID.String()}
	}
	// Re-check the from-state under the write lock; a concurrent transition
	// may have moved the booking since it was read.
	if stored.Status != from {
		return &models.InvalidTransition{
			Entity: models.EntityBooking,
			From:   string(from),
			To:     string(booking.Status),
		}
	}
	booking.UpdatedAt = time.Now()
	s.bookings[booking.ID] = *booking
	s.appendAuditLocked(entry)
	return nil
}

func (s *Store) CountByStatus(ctx context.Context, status models.BookingStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, booking := range s.bookings {
		if booking.Status == status {
			count++
		}
	}
	return count, nil
}

// ============================================================================
// AUDIT LOG
// ============================================================================

func (s *Store) appendAuditLocked(entry *models.AuditEntry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.auditLog = append(s.auditLog, *entry)
}

func (s *Store) Append(ctx context.Context, entry *models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendAuditLocked(entry)
	return nil
}

func (s *Store) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]models.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []models.AuditEntry{}
	for _, entry := range s.auditLog {
		if entry.EntityID == entityID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// ============================================================================
// IMPORT INSPECTIONS
// ============================================================================

type ImportInspections struct{ store *Store }

func (s *Store) ImportInspections() *ImportInspections { return &ImportInspections{store: s} }

func (r *ImportInspections) Create(ctx context.Context, inspection *models.ImportInspection) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if inspection.ID == uuid.Nil {
		inspection.ID = uuid.New()
	}
	inspection.CreatedAt = time.Now()
	inspection.UpdatedAt = time.Now()

	s.imports[inspection.ID] = *inspection
	s.importRefs[inspection.ReferenceNumber] = inspection.ID
	return nil
}

func (r *ImportInspections) GetByID(ctx context.Context, id uuid.UUID) (*models.ImportInspection, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	inspection, ok := s.imports[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityImportInspection, ID: id.String()}
	}
	return &inspection, nil
}

func (r *ImportInspections) GetByReference(ctx context.Context, ref string) (*models.ImportInspection, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.importRefs[ref]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityImportInspection, ID: ref}
	}
	inspection := s.imports[id]
	return &inspection, nil
}

func (r *ImportInspections) List(ctx context.Context, status *models.ImportInspectionStatus) ([]models.ImportInspection, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	inspections := []models.ImportInspection{}
	for _, inspection := range s.imports {
		if status == nil || inspection.Status == *status {
			inspections = append(inspections, inspection)
		}
	}
	sort.Slice(inspections, func(i, j int) bool {
		return inspections[i].CreatedAt.After(inspections[j].CreatedAt)
	})
	return inspections, nil
}

func (r *ImportInspections) UpdateStatus(ctx context.Context, inspection *models.ImportInspection, from models.ImportInspectionStatus, entry *models.AuditEntry) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.imports[inspection.ID]
	if !ok {
		return &models.NotFoundError{Entity: models.EntityImportInspection, ID: inspection.ID.String()}
	}
	if stored.Status != from {
		return &models.InvalidTransition{
			Entity: models.EntityImportInspection,
			From:   string(from),
			To:     string(inspection.Status),
		}
	}
	inspection.UpdatedAt = time.Now()
	s.imports[inspection.ID] = *inspection
	s.appendAuditLocked(entry)
	return nil
}

func (r *ImportInspections) AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	inspection, ok := s.imports[id]
	if !ok {
		return &models.NotFoundError{Entity: models.EntityImportInspection, ID: id.String()}
	}
	inspection.Photos = append(inspection.Photos, urls...)
	inspection.UpdatedAt = time.Now()
	s.imports[id] = inspection
	return nil
}

func (r *ImportInspections) Count(ctx context.Context) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.imports), nil
}

// ============================================================================
// FARM INSPECTIONS
// ============================================================================

type FarmInspections struct{ store *Store }

func (s *Store) FarmInspections() *FarmInspections { return &FarmInspections{store: s} }

func (r *FarmInspections) Create(ctx context.Context, inspection *models.FarmInspection) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if inspection.ID == uuid.Nil {
		inspection.ID = uuid.New()
	}
	inspection.CreatedAt = time.Now()
	inspection.UpdatedAt = time.Now()

	s.farmInspects[inspection.ID] = *inspection
	s.farmInspRefs[inspection.ReferenceNumber] = inspection.ID
	return nil
}

func (r *FarmInspections) GetByID(ctx context.Context, id uuid.UUID) (*models.FarmInspection, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	inspection, ok := s.farmInspects[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityFarmInspection, ID: id.String()}
	}
	return &inspection, nil
}

func (r *FarmInspections) GetByReference(ctx context.Context, ref string) (*models.FarmInspection, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.farmInspRefs[ref]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityFarmInspection, ID: ref}
	}
	inspection := s.farmInspects[id]
	return &inspection, nil
}

func (r *FarmInspections) List(ctx context.Context, status *models.FarmInspectionStatus) ([]models.FarmInspection, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	inspections := []models.FarmInspection{}
	for _, inspection := range s.farmInspects {
		if status == nil || inspection.Status == *status {
			inspections = append(inspections, inspection)
		}
	}
	sort.Slice(inspections, func(i, j int) bool {
		return inspections[i].CreatedAt.After(inspections[j].CreatedAt)
	})
	return inspections, nil
}

func (r *FarmInspections) AppendPhotos(ctx context.Context, id uuid.UUID, urls []string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	inspection, ok := s.farmInspects[id]
	if !ok {
		return &models.NotFoundError{Entity: models.EntityFarmInspection, ID: id.String()}
	}
	inspection.Photos = append(inspection.Photos, urls...)
	inspection.UpdatedAt = time.Now()
	s.farmInspects[id] = inspection
	return nil
}

func (r *FarmInspections) Count(ctx context.Context) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.farmInspects), nil
}

// ============================================================================
// PEST SURVEILLANCE
// ============================================================================

type Surveillance struct{ store *Store }

func (s *Store) Surveillance() *Surveillance { return &Surveillance{store: s} }

func (r *Surveillance) Create(ctx context.Context, record *models.PestSurveillance) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	s.surveillance[record.ID] = *record
	return nil
}

func (r *Surveillance) GetByID(ctx context.Context, id uuid.UUID) (*models.PestSurveillance, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.surveillance[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntitySurveillance, ID: id.String()}
	}
	return &record, nil
}

func (r *Surveillance) List(ctx context.Context) ([]models.PestSurveillance, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := []models.PestSurveillance{}
	for _, record := range s.surveillance {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (r *Surveillance) Count(ctx context.Context) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.surveillance), nil
}

// ============================================================================
// USERS
// ============================================================================

type Users struct{ store *Store }

func (s *Store) Users() *Users { return &Users{store: s} }

func (r *Users) Create(ctx context.Context, user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	s.users[user.ID] = *user
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (r *Users) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityUser, ID: id.String()}
	}
	return &user, nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emailIndex[email]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityUser, ID: email}
	}
	user := s.users[id]
	return &user, nil
}

func (r *Users) List(ctx context.Context) ([]models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := []models.User{}
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *Users) Update(ctx context.Context, user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return &models.NotFoundError{Entity: models.EntityUser, ID: user.ID.String()}
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (r *Users) CountActive(ctx context.Context) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, user := range s.users {
		if user.Active {
			count++
		}
	}
	return count, nil
}

// ============================================================================
// FARMS
// ============================================================================

type Farms struct{ store *Store }

func (s *Store) Farms() *Farms { return &Farms{store: s} }

func (r *Farms) Create(ctx context.Context, farm *models.Farm) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if farm.ID == uuid.Nil {
		farm.ID = uuid.New()
	}
	farm.CreatedAt = time.Now()
	farm.UpdatedAt = time.Now()

	s.farms[farm.ID] = *farm
	return nil
}

func (r *Farms) GetByID(ctx context.Context, id uuid.UUID) (*models.Farm, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	farm, ok := s.farms[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: models.EntityFarm, ID: id.String()}
	}
	return &farm, nil
}

func (r *Farms) List(ctx context.Context) ([]models.Farm, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	farms := []models.Farm{}
	for _, farm := range s.farms {
		farms = append(farms, farm)
	}
	sort.Slice(farms, func(i, j int) bool {
		return farms[i].Name < farms[j].Name
	})
	return farms, nil
}
