package workorder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publicworks/portal/internal/command"
	"github.com/publicworks/portal/internal/domain"
	"github.com/publicworks/portal/internal/notify"
	"github.com/publicworks/portal/internal/result"
	"github.com/publicworks/portal/internal/session"
	"github.com/publicworks/portal/internal/workorder"
)

// fakeWorkOrderRepo is a stateful in-memory WorkOrderRepository.
type fakeWorkOrderRepo struct {
	orders    []*domain.WorkOrder
	createErr error
	listErr   error
}

func (f *fakeWorkOrderRepo) Create(_ context.Context, wo *domain.WorkOrder) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *wo
	f.orders = append(f.orders, &cp)
	return nil
}

func (f *fakeWorkOrderRepo) ListByTenant(_ context.Context, tenantID string) ([]*domain.WorkOrder, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.WorkOrder
	for _, wo := range f.orders {
		if wo.TenantID == tenantID {
			out = append(out, wo)
		}
	}
	return out, nil
}

// captureNotifier records published notices.
type captureNotifier struct {
	notices []notify.Notice
	err     error
}

func (c *captureNotifier) Publish(_ context.Context, n notify.Notice) error {
	c.notices = append(c.notices, n)
	return c.err
}

func sessionCtx(t *testing.T) context.Context {
	t.Helper()
	return session.WithUser(t.Context(), &domain.User{
		ID:             uuid.New(),
		Email:          "alice@acme.example",
		Role:           domain.RoleUser,
		TenantID:       "acme",
		Differentiator: domain.DifferentiatorDefault,
	})
}

func validCreate() command.CreateWorkOrder {
	return command.CreateWorkOrder{
		TenantID:         "acme",
		Title:            "Replace hydrant at 5th and Main",
		Description:      "Hydrant sheared off by plow",
		RequestedBy:      "J. Ramirez",
		RequesterContact: "jramirez@acme.example",
		RequesterPhone:   "555-0104",
		Location:         "5th and Main",
		Operation:        "water",
		Priority:         domain.PriorityHigh,
		Differentiator:   domain.DifferentiatorDefault,
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("happy path persists and returns the work order with a banner", func(t *testing.T) {
		t.Parallel()

		repo := &fakeWorkOrderRepo{}
		notifier := &captureNotifier{}
		svc := workorder.NewService(repo, notifier)

		res := svc.Create(sessionCtx(t), validCreate())

		require.True(t, res.IsSuccess(), "create failed: %v", res.Failure())
		wo := res.Data()
		require.NotNil(t, wo)
		assert.NotEqual(t, uuid.Nil, wo.ID)
		assert.Equal(t, "acme", wo.TenantID)
		assert.Equal(t, domain.WorkOrderOpen, wo.Status, "new orders start open")
		assert.Equal(t, domain.PriorityHigh, wo.Priority)
		require.Len(t, repo.orders, 1)

		banner := res.Banner()
		require.NotNil(t, banner)
		assert.Equal(t, result.BannerSuccess, banner.Variant)
		assert.Equal(t, "Work order created", banner.Title)
		assert.Equal(t, "workorders/"+wo.ID.String(), banner.OpenRoute)
		assert.Equal(t, result.DefaultOpenLabel, banner.OpenLabel)
	})

	t.Run("banner is fanned out to the tenant", func(t *testing.T) {
		t.Parallel()

		notifier := &captureNotifier{}
		svc := workorder.NewService(&fakeWorkOrderRepo{}, notifier)

		res := svc.Create(sessionCtx(t), validCreate())

		require.True(t, res.IsSuccess())
		require.Len(t, notifier.notices, 1)
		notice := notifier.notices[0]
		assert.Equal(t, "acme", notice.TenantID)
		assert.Equal(t, "work_order", notice.Entity)
		assert.Equal(t, res.Data().ID.String(), notice.EntityID)
		assert.Same(t, res.Banner(), notice.Banner)
	})

	t.Run("fan-out failure does not fail the command", func(t *testing.T) {
		t.Parallel()

		notifier := &captureNotifier{err: errors.New("sink down")}
		svc := workorder.NewService(&fakeWorkOrderRepo{}, notifier)

		res := svc.Create(sessionCtx(t), validCreate())

		assert.True(t, res.IsSuccess())
	})

	t.Run("no session user fails before any validation", func(t *testing.T) {
		t.Parallel()

		repo := &fakeWorkOrderRepo{}
		svc := workorder.NewService(repo, nil)

		res := svc.Create(t.Context(), validCreate())

		require.False(t, res.IsSuccess())
		assert.Equal(t, result.KindUnauthenticated, res.Failure().Kind)
		assert.Empty(t, repo.orders)
	})

	t.Run("missing required fields fail naming the field", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			mutate func(*command.CreateWorkOrder)
			field  string
		}{
			{name: "missing title", mutate: func(c *command.CreateWorkOrder) { c.Title = "" }, field: "title"},
			{name: "missing requested by", mutate: func(c *command.CreateWorkOrder) { c.RequestedBy = "" }, field: "requested_by"},
			{name: "unknown priority", mutate: func(c *command.CreateWorkOrder) { c.Priority = "URGENT" }, field: "priority"},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				repo := &fakeWorkOrderRepo{}
				svc := workorder.NewService(repo, nil)

				cmd := validCreate()
				tc.mutate(&cmd)

				res := svc.Create(sessionCtx(t), cmd)

				require.False(t, res.IsSuccess())
				require.NotNil(t, res.Failure())
				assert.Equal(t, result.KindValidationFailed, res.Failure().Kind)
				assert.Equal(t, tc.field, res.Failure().Field)
				assert.Empty(t, repo.orders, "validation failures must not persist")
			})
		}
	})

	t.Run("empty priority defaults to normal", func(t *testing.T) {
		t.Parallel()

		svc := workorder.NewService(&fakeWorkOrderRepo{}, nil)

		cmd := validCreate()
		cmd.Priority = ""
		res := svc.Create(sessionCtx(t), cmd)

		require.True(t, res.IsSuccess())
		assert.Equal(t, domain.PriorityNormal, res.Data().Priority)
	})

	t.Run("tenant mismatch is rejected not substituted", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			mutate func(*command.CreateWorkOrder)
		}{
			{name: "foreign tenant id", mutate: func(c *command.CreateWorkOrder) { c.TenantID = "rival" }},
			{name: "foreign differentiator", mutate: func(c *command.CreateWorkOrder) { c.Differentiator = domain.DifferentiatorDedicated }},
				{name: "foreign tenant id wins over a missing title", mutate: func(c *command.CreateWorkOrder) {
					c.TenantID = "rival"
					c.Title = ""
				}},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				repo := &fakeWorkOrderRepo{}
				svc := workorder.NewService(repo, nil)

				cmd := validCreate()
				tc.mutate(&cmd)

				res := svc.Create(sessionCtx(t), cmd)

				require.False(t, res.IsSuccess())
				assert.Equal(t, result.KindTenantMismatch, res.Failure().Kind)
				assert.Empty(t, repo.orders, "cross-tenant writes must be rejected")
			})
		}
	})

	t.Run("storage failure is generic to the caller", func(t *testing.T) {
		t.Parallel()

		repo := &fakeWorkOrderRepo{createErr: errors.New("deadlock detected")}
		svc := workorder.NewService(repo, nil)

		res := svc.Create(sessionCtx(t), validCreate())

		require.False(t, res.IsSuccess())
		assert.Equal(t, result.KindPersistenceFailure, res.Failure().Kind)
		assert.NotContains(t, res.Message(), "deadlock", "storage detail must not leak")
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	t.Run("returns only the session tenant's orders", func(t *testing.T) {
		t.Parallel()

		repo := &fakeWorkOrderRepo{}
		svc := workorder.NewService(repo, nil)

		require.True(t, svc.Create(sessionCtx(t), validCreate()).IsSuccess())
		repo.orders = append(repo.orders, &domain.WorkOrder{ID: uuid.New(), TenantID: "rival", Title: "other"})

		res := svc.List(sessionCtx(t), command.ListWorkOrders{
			TenantID:       "acme",
			Differentiator: domain.DifferentiatorDefault,
		})

		require.True(t, res.IsSuccess())
		require.Len(t, res.Data(), 1)
		assert.Equal(t, "acme", res.Data()[0].TenantID)
	})

	t.Run("tenant mismatch is rejected", func(t *testing.T) {
		t.Parallel()

		svc := workorder.NewService(&fakeWorkOrderRepo{}, nil)

		res := svc.List(sessionCtx(t), command.ListWorkOrders{
			TenantID:       "rival",
			Differentiator: domain.DifferentiatorDefault,
		})

		require.False(t, res.IsSuccess())
		assert.Equal(t, result.KindTenantMismatch, res.Failure().Kind)
	})

	t.Run("requires a session", func(t *testing.T) {
		t.Parallel()

		svc := workorder.NewService(&fakeWorkOrderRepo{}, nil)

		res := svc.List(t.Context(), command.ListWorkOrders{TenantID: "acme"})

		require.False(t, res.IsSuccess())
		assert.Equal(t, result.KindUnauthenticated, res.Failure().Kind)
	})

	t.Run("reachable through the bus", func(t *testing.T) {
		t.Parallel()

		svc := workorder.NewService(&fakeWorkOrderRepo{}, nil)
		bus, err := command.NewBus(workorder.CreateHandler(svc), workorder.ListHandler(svc))
		require.NoError(t, err)

		ctx := sessionCtx(t)
		created, err := bus.Dispatch(ctx, validCreate())
		require.NoError(t, err)
		require.True(t, created.IsSuccess())

		listed, err := bus.Dispatch(ctx, command.ListWorkOrders{
			TenantID:       "acme",
			Differentiator: domain.DifferentiatorDefault,
		})
		require.NoError(t, err)
		require.True(t, listed.IsSuccess())

		orders, ok := listed.Data().([]*domain.WorkOrder)
		require.True(t, ok, "bus result must carry the typed slice")
		assert.Len(t, orders, 1)
	})
}
