package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"rentflow/test/infra"
)

// TestRepository_Integration runs against a real PostgreSQL and verifies the
// repository round trip: create, list, decide, and the pending-only guard on a
// repeated decision. Set DATABASE_URL to reuse a live database; otherwise a
// throwaway container is started.
func TestRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	override := os.Getenv("DATABASE_URL")
	pgC, dsn, err := infra.StartPostgres16(ctx, override)
	if err != nil {
		t.Skipf("start postgres: %v (set DATABASE_URL to reuse a live database)", err)
	}
	defer pgC.Terminate(context.Background())

	// A reused database gets a per-run schema so parallel runs cannot collide.
	shared := override != "" || os.Getenv("RENTFLOW_TEST_PG_DSN") != ""
	pool, teardown, err := infra.ApplyMigrations(ctx, dsn, shared)
	if err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	defer pool.Close()
	defer func() {
		if err := teardown(context.Background()); err != nil {
			t.Logf("teardown warning: %v", err)
		}
	}()

	var userID string
	if err := pool.QueryRow(ctx, `INSERT INTO users (email, full_name, password_hash, role) VALUES ($1, $2, $3, 'renter') RETURNING id`,
		fmt.Sprintf("ana+%d@example.com", time.Now().UnixNano()), "Ana Applicant", "x").Scan(&userID); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	repo := NewRepository(pool)

	created, err := repo.Create(ctx, CreateParams{
		PropertyID:    "prop-001",
		PropertyTitle: "Modern Downtown Apartment",
		UserID:        userID,
		Fields: Fields{
			FullName:      "Ana Applicant",
			Email:         "ana@example.com",
			Phone:         "5125550144",
			MonthlyIncome: 5400,
			MoveInDate:    time.Now().AddDate(0, 1, 0),
			Notes:         "integration",
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Status != StatusPending {
		t.Fatalf("expected pending on create, got %q", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected store-assigned created_at")
	}
	if created.UpdatedAt != nil {
		t.Fatalf("expected nil updated_at on create, got %v", created.UpdatedAt)
	}

	list, err := repo.List(ctx, Filters{UserID: userID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected the created record back, got %+v", list)
	}
	if list[0].PropertyTitle != "Modern Downtown Apartment" {
		t.Fatalf("expected denormalized title, got %q", list[0].PropertyTitle)
	}

	decidedAt := time.Now().UTC().Truncate(time.Millisecond)
	decided, err := repo.UpdateStatus(ctx, created.ID, StatusApproved, decidedAt)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Fatalf("expected approved, got %q", decided.Status)
	}
	if decided.UpdatedAt == nil || !decided.UpdatedAt.Equal(decidedAt) {
		t.Fatalf("expected updated_at %v, got %v", decidedAt, decided.UpdatedAt)
	}

	// A second decision must not overwrite the first.
	if _, err := repo.UpdateStatus(ctx, created.ID, StatusRejected, time.Now()); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on second decision, got %v", err)
	}

	var status string
	if err := pool.QueryRow(ctx, `SELECT status FROM applications WHERE id = $1`, created.ID).Scan(&status); err != nil {
		t.Fatalf("verify status: %v", err)
	}
	if status != "approved" {
		t.Fatalf("expected first decision to stand, got %q", status)
	}
}
