package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"rentflow/catalog"
)

var (
	// ErrPropertyNotFound signals the draft targets a property missing from the catalog.
	ErrPropertyNotFound = errors.New("application: property not found")
	// ErrInvalidDecision signals a status transition target outside approved/rejected.
	ErrInvalidDecision = errors.New("application: decision must be approved or rejected")
)

// ValidationError carries the per-field messages of a rejected draft. The form
// stays editable; no write is issued while the map is non-empty.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("application: draft failed validation (%d fields)", len(e.Fields))
}

// Service handles application submission, listing, and status decisions.
type Service struct {
	repo    Repository
	catalog *catalog.Catalog
	idGen   func() string
	now     func() time.Time
}

// NewService wires the application service.
func NewService(repo Repository, cat *catalog.Catalog) *Service {
	return &Service{
		repo:    repo,
		catalog: cat,
		idGen:   func() string { return uuid.NewString() },
		now:     time.Now,
	}
}

// WithIDGenerator overrides the record id source. Intended for tests.
func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGen = gen
	return s
}

// WithClock overrides the wall clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SubmitParams bundles a draft with its target property and submitter.
type SubmitParams struct {
	PropertyID string
	UserID     string
	Draft      Draft
}

// Submit validates the draft against the target property and persists exactly
// one record on success. A *ValidationError return means nothing was written
// and the caller may fix the draft and retry.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (Application, error) {
	if params.UserID == "" {
		return Application{}, fmt.Errorf("application: missing submitter user id")
	}

	property, err := s.catalog.GetByID(params.PropertyID)
	if err != nil {
		return Application{}, fmt.Errorf("%w: %s", ErrPropertyNotFound, params.PropertyID)
	}

	fields, violations := params.Draft.Validate(property.Rent, s.now())
	if len(violations) > 0 {
		return Application{}, &ValidationError{Fields: violations}
	}

	created, err := s.repo.Create(ctx, CreateParams{
		ID:            s.idGen(),
		PropertyID:    property.ID,
		PropertyTitle: property.Title,
		UserID:        params.UserID,
		Fields:        fields,
	})
	if err != nil {
		return Application{}, err
	}

	return created, nil
}

// ListByUser returns the submitter's applications, most recent first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	if userID == "" {
		return nil, fmt.Errorf("application: missing user id")
	}

	apps, err := s.repo.List(ctx, Filters{UserID: userID})
	if err != nil {
		return nil, err
	}

	s.normalize(apps)
	sortByCreatedDesc(apps)
	return apps, nil
}

// ListAll returns every application, most recent first. Used by the dashboard.
func (s *Service) ListAll(ctx context.Context) ([]Application, error) {
	apps, err := s.repo.List(ctx, Filters{})
	if err != nil {
		return nil, err
	}

	s.normalize(apps)
	sortByCreatedDesc(apps)
	return apps, nil
}

// ApprovedPropertyIDs returns the set of properties with an approved
// application. The listing view uses it to badge taken properties.
func (s *Service) ApprovedPropertyIDs(ctx context.Context) (map[string]bool, error) {
	apps, err := s.repo.List(ctx, Filters{Status: StatusApproved})
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(apps))
	for _, app := range apps {
		ids[app.PropertyID] = true
	}
	return ids, nil
}

// Decide moves a pending application to approved or rejected and stamps the
// update time. The write is conditional on the record still being pending.
func (s *Service) Decide(ctx context.Context, applicationID string, status Status) (Application, error) {
	if applicationID == "" {
		return Application{}, fmt.Errorf("application: missing application id")
	}
	if !status.IsDecision() {
		return Application{}, ErrInvalidDecision
	}

	return s.repo.UpdateStatus(ctx, applicationID, status, s.now())
}

// normalize substitutes the current moment for records whose stored timestamp
// is absent or malformed. The substitute keeps sorting and date buckets sane
// for display and is never written back.
func (s *Service) normalize(apps []Application) {
	now := s.now()
	for i := range apps {
		if apps[i].CreatedAt.IsZero() {
			apps[i].CreatedAt = now
		}
	}
}

func sortByCreatedDesc(apps []Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
}
