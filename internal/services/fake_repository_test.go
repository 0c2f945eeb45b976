package services

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/events"
	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/repositories"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

// fakeRepository is an in-memory repositories.Repository used across the
// service tests. ClaimSeat mirrors the conditional update of the Postgres
// implementation, and the unique constraints on email and (user, workshop)
// surface as gorm.ErrDuplicatedKey the way the real driver reports them.
type fakeRepository struct {
	mu sync.Mutex

	users         map[uint]*models.User
	enterprises   map[uint]*models.Enterprise
	workshops     map[uint]*models.Workshop
	registrations map[uint]*models.Registration
	profiles      map[uint]*models.UserProfile

	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:         make(map[uint]*models.User),
		enterprises:   make(map[uint]*models.Enterprise),
		workshops:     make(map[uint]*models.Workshop),
		registrations: make(map[uint]*models.Registration),
		profiles:      make(map[uint]*models.UserProfile),
	}
}

func (f *fakeRepository) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepository) User() repositories.UserRepository                 { return &fakeUserRepo{f} }
func (f *fakeRepository) Enterprise() repositories.EnterpriseRepository     { return &fakeEnterpriseRepo{f} }
func (f *fakeRepository) Workshop() repositories.WorkshopRepository         { return &fakeWorkshopRepo{f} }
func (f *fakeRepository) Registration() repositories.RegistrationRepository { return &fakeRegistrationRepo{f} }
func (f *fakeRepository) Profile() repositories.ProfileRepository           { return &fakeProfileRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== USERS =====

type fakeUserRepo struct{ f *fakeRepository }

func (r *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.f.id()
	r.f.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	user, ok := r.f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, user := range r.f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	delete(r.f.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var users []*models.User
	for _, user := range r.f.users {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		if filters.Query != "" &&
			!strings.Contains(strings.ToLower(user.Name), strings.ToLower(filters.Query)) &&
			!strings.Contains(strings.ToLower(user.Email), strings.ToLower(filters.Query)) {
			continue
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, user := range r.f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ===== ENTERPRISES =====

type fakeEnterpriseRepo struct{ f *fakeRepository }

func (r *fakeEnterpriseRepo) Create(ctx context.Context, tx *gorm.DB, enterprise *models.Enterprise) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.enterprises {
		if existing.UserID == enterprise.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	enterprise.ID = r.f.id()
	r.f.enterprises[enterprise.ID] = enterprise
	return nil
}

func (r *fakeEnterpriseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Enterprise, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	enterprise, ok := r.f.enterprises[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return enterprise, nil
}

func (r *fakeEnterpriseRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.Enterprise, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, enterprise := range r.f.enterprises {
		if enterprise.UserID == userID {
			return enterprise, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEnterpriseRepo) Update(ctx context.Context, tx *gorm.DB, enterprise *models.Enterprise) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.enterprises[enterprise.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.enterprises[enterprise.ID] = enterprise
	return nil
}

func (r *fakeEnterpriseRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EnterpriseStatus) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	enterprise, ok := r.f.enterprises[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	enterprise.Status = status
	return nil
}

func (r *fakeEnterpriseRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	delete(r.f.enterprises, id)
	return nil
}

func (r *fakeEnterpriseRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.EnterpriseFilters) ([]*models.Enterprise, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var enterprises []*models.Enterprise
	for _, enterprise := range r.f.enterprises {
		if filters.Status != nil && enterprise.Status != *filters.Status {
			continue
		}
		enterprises = append(enterprises, enterprise)
	}
	sort.Slice(enterprises, func(i, j int) bool { return enterprises[i].ID < enterprises[j].ID })
	return enterprises, int64(len(enterprises)), nil
}

// ===== WORKSHOPS =====

type fakeWorkshopRepo struct{ f *fakeRepository }

func (r *fakeWorkshopRepo) Create(ctx context.Context, tx *gorm.DB, workshop *models.Workshop) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	workshop.ID = r.f.id()
	r.f.workshops[workshop.ID] = workshop
	return nil
}

func (r *fakeWorkshopRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Workshop, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	workshop, ok := r.f.workshops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return workshop, nil
}

func (r *fakeWorkshopRepo) GetByIDWithEnterprise(ctx context.Context, tx *gorm.DB, id uint) (*models.Workshop, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	workshop, ok := r.f.workshops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if enterprise, ok := r.f.enterprises[workshop.EnterpriseID]; ok {
		workshop.Enterprise = *enterprise
	}
	return workshop, nil
}

func (r *fakeWorkshopRepo) Update(ctx context.Context, tx *gorm.DB, workshop *models.Workshop) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.workshops[workshop.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.workshops[workshop.ID] = workshop
	return nil
}

func (r *fakeWorkshopRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.WorkshopStatus) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	workshop, ok := r.f.workshops[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	workshop.Status = status
	return nil
}

func (r *fakeWorkshopRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	delete(r.f.workshops, id)
	return nil
}

func (r *fakeWorkshopRepo) DeleteByEnterprise(ctx context.Context, tx *gorm.DB, enterpriseID uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, workshop := range r.f.workshops {
		if workshop.EnterpriseID == enterpriseID {
			delete(r.f.workshops, id)
		}
	}
	return nil
}

func (r *fakeWorkshopRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.WorkshopFilters) ([]*models.Workshop, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return r.filter(filters)
}

func (r *fakeWorkshopRepo) ListApproved(ctx context.Context, tx *gorm.DB, filters repositories.WorkshopFilters) ([]*models.Workshop, int64, error) {
	approved := models.WorkshopApproved
	filters.Status = &approved
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return r.filter(filters)
}

func (r *fakeWorkshopRepo) filter(filters repositories.WorkshopFilters) ([]*models.Workshop, int64, error) {
	var workshops []*models.Workshop
	for _, workshop := range r.f.workshops {
		if filters.Status != nil && workshop.Status != *filters.Status {
			continue
		}
		if filters.EnterpriseID != nil && workshop.EnterpriseID != *filters.EnterpriseID {
			continue
		}
		if filters.Mode != nil && workshop.Mode != *filters.Mode {
			continue
		}
		if filters.FreeOnly && !workshop.IsFree {
			continue
		}
		workshops = append(workshops, workshop)
	}
	sort.Slice(workshops, func(i, j int) bool { return workshops[i].ID < workshops[j].ID })
	return workshops, int64(len(workshops)), nil
}

func (r *fakeWorkshopRepo) GetByEnterprise(ctx context.Context, tx *gorm.DB, enterpriseID uint) ([]*models.Workshop, error) {
	workshops, _, err := r.List(ctx, tx, repositories.WorkshopFilters{EnterpriseID: &enterpriseID})
	return workshops, err
}

func (r *fakeWorkshopRepo) GetIDsByEnterprise(ctx context.Context, tx *gorm.DB, enterpriseID uint) ([]uint, error) {
	workshops, _, err := r.List(ctx, tx, repositories.WorkshopFilters{EnterpriseID: &enterpriseID})
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(workshops))
	for _, workshop := range workshops {
		ids = append(ids, workshop.ID)
	}
	return ids, nil
}

func (r *fakeWorkshopRepo) ClaimSeat(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	workshop, ok := r.f.workshops[id]
	if !ok {
		return false, nil
	}
	if workshop.RegisteredSeats >= workshop.Seats {
		return false, nil
	}
	workshop.RegisteredSeats++
	return true, nil
}

// ===== REGISTRATIONS =====

type fakeRegistrationRepo struct{ f *fakeRepository }

func (r *fakeRegistrationRepo) Create(ctx context.Context, tx *gorm.DB, registration *models.Registration) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.registrations {
		if existing.UserID == registration.UserID && existing.WorkshopID == registration.WorkshopID {
			return gorm.ErrDuplicatedKey
		}
	}
	registration.ID = r.f.id()
	r.f.registrations[registration.ID] = registration
	return nil
}

func (r *fakeRegistrationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Registration, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	registration, ok := r.f.registrations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if workshop, ok := r.f.workshops[registration.WorkshopID]; ok {
		registration.Workshop = *workshop
	}
	return registration, nil
}

func (r *fakeRegistrationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.RegistrationStatus) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	registration, ok := r.f.registrations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	registration.Status = status
	return nil
}

func (r *fakeRegistrationRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	delete(r.f.registrations, id)
	return nil
}

func (r *fakeRegistrationRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, registration := range r.f.registrations {
		if registration.UserID == userID {
			delete(r.f.registrations, id)
		}
	}
	return nil
}

func (r *fakeRegistrationRepo) DeleteByWorkshop(ctx context.Context, tx *gorm.DB, workshopID uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, registration := range r.f.registrations {
		if registration.WorkshopID == workshopID {
			delete(r.f.registrations, id)
		}
	}
	return nil
}

func (r *fakeRegistrationRepo) DeleteByWorkshops(ctx context.Context, tx *gorm.DB, workshopIDs []uint) error {
	for _, id := range workshopIDs {
		if err := r.DeleteByWorkshop(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRegistrationRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.RegistrationFilters) ([]*models.Registration, int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var registrations []*models.Registration
	for _, registration := range r.f.registrations {
		if filters.Status != nil && registration.Status != *filters.Status {
			continue
		}
		if filters.UserID != nil && registration.UserID != *filters.UserID {
			continue
		}
		if filters.WorkshopID != nil && registration.WorkshopID != *filters.WorkshopID {
			continue
		}
		registrations = append(registrations, registration)
	}
	sort.Slice(registrations, func(i, j int) bool { return registrations[i].ID < registrations[j].ID })
	return registrations, int64(len(registrations)), nil
}

func (r *fakeRegistrationRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Registration, error) {
	registrations, _, err := r.List(ctx, tx, repositories.RegistrationFilters{UserID: &userID})
	if err != nil {
		return nil, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, registration := range registrations {
		if workshop, ok := r.f.workshops[registration.WorkshopID]; ok {
			registration.Workshop = *workshop
		}
	}
	return registrations, nil
}

func (r *fakeRegistrationRepo) GetByWorkshop(ctx context.Context, tx *gorm.DB, workshopID uint) ([]*models.Registration, error) {
	registrations, _, err := r.List(ctx, tx, repositories.RegistrationFilters{WorkshopID: &workshopID})
	if err != nil {
		return nil, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, registration := range registrations {
		if user, ok := r.f.users[registration.UserID]; ok {
			registration.User = *user
		}
	}
	return registrations, nil
}

func (r *fakeRegistrationRepo) ExistsByUserAndWorkshop(ctx context.Context, tx *gorm.DB, userID, workshopID uint) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, registration := range r.f.registrations {
		if registration.UserID == userID && registration.WorkshopID == workshopID {
			return true, nil
		}
	}
	return false, nil
}

// ===== PROFILES =====

type fakeProfileRepo struct{ f *fakeRepository }

func (r *fakeProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, existing := range r.f.profiles {
		if existing.UserID == profile.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	profile.ID = r.f.id()
	r.f.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserProfile, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, profile := range r.f.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) Update(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.profiles[profile.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for id, profile := range r.f.profiles {
		if profile.UserID == userID {
			delete(r.f.profiles, id)
		}
	}
	return nil
}

// ===== SHARED TEST SETUP =====

type testDeps struct {
	repo      *fakeRepository
	publisher *events.MockEventPublisher
	validator *validator.Validator
	logger    *slog.Logger
}

func newTestDeps() *testDeps {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return &testDeps{
		repo:      newFakeRepository(),
		publisher: events.NewMockEventPublisher(logger),
		validator: validator.New(),
		logger:    logger,
	}
}

func seedUser(repo *fakeRepository, name, email string, role models.UserRole) *models.User {
	user := &models.User{Name: name, Email: email, PasswordHash: "x", Role: role}
	if err := repo.User().Create(context.Background(), nil, user); err != nil {
		panic(err)
	}
	return user
}

func seedEnterprise(repo *fakeRepository, userID uint, status models.EnterpriseStatus) *models.Enterprise {
	enterprise := &models.Enterprise{
		UserID:        userID,
		CompanyName:   "Acme Workshops",
		ContactPerson: "Jamie Doe",
		Status:        status,
	}
	if err := repo.Enterprise().Create(context.Background(), nil, enterprise); err != nil {
		panic(err)
	}
	return enterprise
}

func seedWorkshop(repo *fakeRepository, enterpriseID uint, w models.Workshop) *models.Workshop {
	w.EnterpriseID = enterpriseID
	if w.Title == "" {
		w.Title = "Intro to Distributed Systems"
	}
	if w.Description == "" {
		w.Description = "A hands-on session covering the fundamentals."
	}
	if w.Date.IsZero() {
		w.Date = time.Now().Add(72 * time.Hour)
	}
	if w.Mode == "" {
		w.Mode = models.ModeOnline
	}
	if w.Seats == 0 {
		w.Seats = 10
	}
	if w.RegistrationMode == "" {
		w.RegistrationMode = models.RegistrationAutomated
	}
	w.IsFree = w.Price == 0
	if err := repo.Workshop().Create(context.Background(), nil, &w); err != nil {
		panic(err)
	}
	return &w
}

func strPtr(s string) *string { return &s }
