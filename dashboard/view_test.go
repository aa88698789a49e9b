package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rentflow/application"
	"rentflow/catalog"
)

type fakeAppService struct {
	apps      []application.Application
	listErr   error
	decideErr error
	decided   int
}

func (f *fakeAppService) ListAll(ctx context.Context) ([]application.Application, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]application.Application, len(f.apps))
	copy(out, f.apps)
	return out, nil
}

func (f *fakeAppService) Decide(ctx context.Context, applicationID string, status application.Status) (application.Application, error) {
	if f.decideErr != nil {
		return application.Application{}, f.decideErr
	}
	for i := range f.apps {
		if f.apps[i].ID == applicationID {
			if f.apps[i].Status != application.StatusPending {
				return application.Application{}, fmt.Errorf("%w: currently %s", application.ErrNotPending, f.apps[i].Status)
			}
			f.apps[i].Status = status
			ts := time.Now().UTC()
			f.apps[i].UpdatedAt = &ts
			f.decided++
			return f.apps[i], nil
		}
	}
	return application.Application{}, errors.New("not found")
}

func viewCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Property{
		{ID: "prop-1", Title: "Sunny Loft", City: "Austin", Rent: 1800},
		{ID: "prop-2", Title: "Riverside Studio", City: "Denver", Rent: 1300},
	})
}

func newLoadedView(t *testing.T, svc *fakeAppService) *View {
	t.Helper()
	v := NewView(svc, viewCatalog()).WithClock(func() time.Time { return statsNow })
	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return v
}

func TestView_LoadAndStats(t *testing.T) {
	svc := &fakeAppService{apps: []application.Application{
		appAt("a1", statsNow.Add(-time.Hour)),
		appAt("a2", statsNow.Add(-3*24*time.Hour)),
	}}
	v := newLoadedView(t, svc)

	stats := v.Stats()
	if stats.TotalApplications != 2 {
		t.Errorf("expected 2 total, got %d", stats.TotalApplications)
	}
	if stats.AvgRentByCity["Austin"] != 1800 || stats.AvgRentByCity["Denver"] != 1300 {
		t.Errorf("unexpected catalog averages: %v", stats.AvgRentByCity)
	}

	if got := len(v.TimeSeries()); got != 14 {
		t.Errorf("expected 14 series points, got %d", got)
	}
}

func TestView_LoadFailureKeepsPreviousCopy(t *testing.T) {
	svc := &fakeAppService{apps: []application.Application{appAt("a1", statsNow)}}
	v := newLoadedView(t, svc)

	svc.listErr = errors.New("store down")
	if err := v.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if len(v.Applications()) != 1 {
		t.Fatalf("expected previous copy to survive a failed reload")
	}
}

func TestView_Transition(t *testing.T) {
	svc := &fakeAppService{apps: []application.Application{
		appAt("a1", statsNow.Add(-time.Hour)),
		appAt("a2", statsNow.Add(-2*time.Hour)),
	}}
	v := newLoadedView(t, svc)

	decided, err := v.Transition(context.Background(), "a1", application.StatusApproved)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if decided.Status != application.StatusApproved {
		t.Errorf("expected approved, got %s", decided.Status)
	}

	apps := v.Applications()
	if len(apps) != 2 {
		t.Fatalf("cache length must not change, got %d", len(apps))
	}
	for _, app := range apps {
		switch app.ID {
		case "a1":
			if app.Status != application.StatusApproved {
				t.Errorf("cached entry not updated: %s", app.Status)
			}
			if app.UpdatedAt == nil {
				t.Error("cached entry missing update timestamp")
			}
		case "a2":
			if app.Status != application.StatusPending {
				t.Errorf("unrelated entry mutated: %s", app.Status)
			}
		}
	}
}

func TestView_TransitionFailureLeavesCacheUntouched(t *testing.T) {
	svc := &fakeAppService{apps: []application.Application{appAt("a1", statsNow)}}
	v := newLoadedView(t, svc)

	svc.decideErr = errors.New("store down")
	if _, err := v.Transition(context.Background(), "a1", application.StatusRejected); err == nil {
		t.Fatal("expected transition error")
	}

	apps := v.Applications()
	if apps[0].Status != application.StatusPending {
		t.Fatalf("cache mutated on failed transition: %s", apps[0].Status)
	}
	if apps[0].UpdatedAt != nil {
		t.Fatal("cache gained update timestamp on failed transition")
	}
}

func TestView_TransitionSecondDecisionRejected(t *testing.T) {
	svc := &fakeAppService{apps: []application.Application{appAt("a1", statsNow)}}
	v := newLoadedView(t, svc)

	if _, err := v.Transition(context.Background(), "a1", application.StatusApproved); err != nil {
		t.Fatalf("first transition: %v", err)
	}

	_, err := v.Transition(context.Background(), "a1", application.StatusRejected)
	if !errors.Is(err, application.ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}

	apps := v.Applications()
	if len(apps) != 1 || apps[0].Status != application.StatusApproved {
		t.Fatalf("cache must keep the first decision, got %+v", apps)
	}
}
