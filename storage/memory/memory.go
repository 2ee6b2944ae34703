package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taxidesk/pkg/models"
	"taxidesk/storage"
)

// Store is an in-process implementation of storage.IStorage. It backs unit
// tests and the STORAGE_DRIVER=memory mode. One mutex guards every record,
// which gives the same serialized read-increment-write the postgres statement
// gives for complaint escalation.
type Store struct {
	mu sync.Mutex

	vehicles   []*models.Vehicle
	drivers    map[int64]*models.Driver
	bookings   map[int64]*models.Booking
	complaints map[int64]*models.Complaint
	admins     map[string]*models.AdminAccount

	nextDriverID    int64
	nextBookingID   int64
	nextComplaintID int64
	nextAdminID     int64
}

func New() *Store {
	return &Store{
		drivers:    make(map[int64]*models.Driver),
		bookings:   make(map[int64]*models.Booking),
		complaints: make(map[int64]*models.Complaint),
		admins:     make(map[string]*models.AdminAccount),
	}
}

func (s *Store) Close() {}

func (s *Store) Vehicle() storage.IVehicleStorage     { return (*vehicleStore)(s) }
func (s *Store) Driver() storage.IDriverStorage       { return (*driverStore)(s) }
func (s *Store) Booking() storage.IBookingStorage     { return (*bookingStore)(s) }
func (s *Store) Complaint() storage.IComplaintStorage { return (*complaintStore)(s) }
func (s *Store) Admin() storage.IAdminStorage         { return (*adminStore)(s) }

// SeedVehicles replaces the vehicle catalog.
func (s *Store) SeedVehicles(vehicles []*models.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = vehicles
}

// SeedDriver inserts a driver and returns its assigned id.
func (s *Store) SeedDriver(d models.Driver) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextDriverID++
	d.ID = s.nextDriverID
	s.drivers[d.ID] = &d
	return d.ID
}

type vehicleStore Store

func (s *vehicleStore) GetAll(ctx context.Context) ([]*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Vehicle, len(s.vehicles))
	for i, v := range s.vehicles {
		cp := *v
		out[i] = &cp
	}
	return out, nil
}

type driverStore Store

func (s *driverStore) GetAll(ctx context.Context) ([]*models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Driver
	for _, d := range s.drivers {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *driverStore) GetActive(ctx context.Context) ([]*models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Driver
	for _, d := range s.drivers {
		if d.IsActive && !d.IsBanned {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *driverStore) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *driverStore) GetByPhone(ctx context.Context, phone string) (*models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.drivers {
		if d.Phone == phone {
			cp := *d
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *driverStore) Update(ctx context.Context, id int64, upd storage.DriverUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return storage.ErrNotFound
	}
	if upd.IsActive != nil {
		d.IsActive = *upd.IsActive
	}
	if upd.AgreementAccepted != nil {
		d.AgreementAccepted = *upd.AgreementAccepted
	}
	if upd.IsBanned != nil {
		d.IsBanned = *upd.IsBanned
	}
	if upd.ComplaintCount != nil {
		d.ComplaintCount = *upd.ComplaintCount
	}
	return nil
}

func (s *driverStore) RegisterComplaint(ctx context.Context, id int64, banThreshold int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return 0, false, storage.ErrNotFound
	}
	d.ComplaintCount++
	crossed := d.ComplaintCount >= banThreshold
	if crossed {
		d.IsBanned = true
		d.IsActive = false
	}
	return d.ComplaintCount, crossed, nil
}

type bookingStore Store

func (s *bookingStore) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBookingID++
	cp := *booking
	cp.ID = s.nextBookingID
	cp.Status = models.BookingStatusPending
	cp.IsCompleted = false
	s.bookings[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *bookingStore) GetAll(ctx context.Context) ([]*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Booking
	for _, b := range s.bookings {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.After(out[j].DateTime) })
	return out, nil
}

func (s *bookingStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return storage.ErrNotFound
	}
	b.Status = status
	b.IsCompleted = status == models.BookingStatusCompleted
	return nil
}

type complaintStore Store

func (s *complaintStore) Create(ctx context.Context, complaint *models.Complaint) (*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextComplaintID++
	cp := *complaint
	cp.ID = s.nextComplaintID
	cp.Status = models.ComplaintStatusPending
	if cp.DateTime.IsZero() {
		cp.DateTime = time.Now()
	}
	s.complaints[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *complaintStore) GetAll(ctx context.Context) ([]*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Complaint
	for _, c := range s.complaints {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].ID > out[j].ID
		}
		return out[i].DateTime.After(out[j].DateTime)
	})
	return out, nil
}

type adminStore Store

func (s *adminStore) GetByUsername(ctx context.Context, username string) (*models.AdminAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *adminStore) Ensure(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[username]; ok {
		return nil
	}
	s.nextAdminID++
	s.admins[username] = &models.AdminAccount{
		ID:           s.nextAdminID,
		Username:     username,
		PasswordHash: passwordHash,
	}
	return nil
}
