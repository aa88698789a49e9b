package dashboard

import (
	"context"
	"time"

	"rentflow/application"
	"rentflow/catalog"
)

// ApplicationService abstracts the application operations the dashboard needs.
type ApplicationService interface {
	ListAll(ctx context.Context) ([]application.Application, error)
	Decide(ctx context.Context, applicationID string, status application.Status) (application.Application, error)
}

// View is one admin dashboard session over the full application collection.
// It performs a one-shot fetch and keeps a private in-memory copy for its own
// lifetime; it is not safe for use by concurrent callers.
type View struct {
	svc     ApplicationService
	catalog *catalog.Catalog
	now     func() time.Time
	apps    []application.Application
	loaded  bool
}

// NewView builds a dashboard view over the given services.
func NewView(svc ApplicationService, cat *catalog.Catalog) *View {
	return &View{
		svc:     svc,
		catalog: cat,
		now:     time.Now,
	}
}

// WithClock overrides the wall clock. Intended for tests.
func (v *View) WithClock(now func() time.Time) *View {
	v.now = now
	return v
}

// Load fetches the full collection. The service normalizes timestamps and
// sorts most recent first; a failed load leaves any previous copy intact.
func (v *View) Load(ctx context.Context) error {
	apps, err := v.svc.ListAll(ctx)
	if err != nil {
		return err
	}
	v.apps = apps
	v.loaded = true
	return nil
}

// Applications returns the cached list.
func (v *View) Applications() []application.Application {
	out := make([]application.Application, len(v.apps))
	copy(out, v.apps)
	return out
}

// Stats summarizes the cached list.
func (v *View) Stats() Stats {
	return Summarize(v.apps, v.catalog.AverageRentByCity(), v.now())
}

// TimeSeries returns the 14-day submissions chart for the cached list.
func (v *View) TimeSeries() []SeriesPoint {
	return TimeSeries(v.apps, v.now())
}

// Search filters the cached list by the free-text query.
func (v *View) Search(query string) []application.Application {
	return FilterBySearch(v.apps, query)
}

// Transition decides a pending application and patches the cached entry in
// place so the view reflects the change without a refetch. A failed write
// leaves the cache untouched; re-applying an already-applied decision to the
// cache changes nothing.
func (v *View) Transition(ctx context.Context, applicationID string, status application.Status) (application.Application, error) {
	decided, err := v.svc.Decide(ctx, applicationID, status)
	if err != nil {
		return application.Application{}, err
	}

	for i := range v.apps {
		if v.apps[i].ID == applicationID {
			v.apps[i].Status = decided.Status
			v.apps[i].UpdatedAt = decided.UpdatedAt
			break
		}
	}
	return decided, nil
}
