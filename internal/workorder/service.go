// Package workorder handles the tenant-scoped work order commands: required
// field validation, tenant enforcement against the session, persistence, and
// the success banner the UI renders.
package workorder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/publicworks/portal/internal/command"
	"github.com/publicworks/portal/internal/domain"
	"github.com/publicworks/portal/internal/notify"
	"github.com/publicworks/portal/internal/result"
	"github.com/publicworks/portal/internal/session"
)

const (
	msgSignInRequired     = "Please sign in to continue."
	msgTenantMismatch     = "This action is not available for your organization."
	msgStorageUnavailable = "Something went wrong. Please try again."
)

// Notifier fans banners out to other sessions. Delivery is best effort.
type Notifier interface {
	Publish(ctx context.Context, n notify.Notice) error
}

// Service handles work order commands.
type Service struct {
	orders   domain.WorkOrderRepository
	notifier Notifier // nil disables fan-out
}

func NewService(orders domain.WorkOrderRepository, notifier Notifier) *Service {
	return &Service{orders: orders, notifier: notifier}
}

// Create enforces tenant scope against the session, validates the command,
// persists the work order, and returns it with a success banner. Tenant
// enforcement runs before field validation so a cross-tenant command always
// fails on scope; neither failure reaches storage.
func (s *Service) Create(ctx context.Context, cmd command.CreateWorkOrder) result.Result[*domain.WorkOrder] {
	user, ok := session.FromContext(ctx)
	if !ok {
		return result.Fail[*domain.WorkOrder](result.KindUnauthenticated, msgSignInRequired)
	}

	// The command must already be stamped with the session's tenant; a
	// mismatch is rejected, never silently substituted.
	if cmd.TenantID != user.TenantID || cmd.Differentiator != user.Differentiator {
		return result.Fail[*domain.WorkOrder](result.KindTenantMismatch, msgTenantMismatch)
	}

	if cmd.Title == "" {
		return result.FailField[*domain.WorkOrder]("title", "Title is required.")
	}
	if cmd.RequestedBy == "" {
		return result.FailField[*domain.WorkOrder]("requested_by", "Requested by is required.")
	}

	priority := cmd.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !priority.Valid() {
		return result.FailField[*domain.WorkOrder]("priority", "Unknown priority.")
	}

	now := time.Now()
	wo := &domain.WorkOrder{
		ID:               uuid.New(),
		TenantID:         cmd.TenantID,
		Title:            cmd.Title,
		Description:      cmd.Description,
		RequestedBy:      cmd.RequestedBy,
		RequesterContact: cmd.RequesterContact,
		RequesterPhone:   cmd.RequesterPhone,
		Location:         cmd.Location,
		Operation:        cmd.Operation,
		Priority:         priority,
		Status:           domain.WorkOrderOpen,
		Differentiator:   cmd.Differentiator,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.orders.Create(ctx, wo); err != nil {
		log.Error().Err(err).Str("tenant", wo.TenantID).Msg("workorder: create failed")
		return result.Fail[*domain.WorkOrder](result.KindPersistenceFailure, msgStorageUnavailable)
	}

	banner := result.NewBanner(result.BannerSuccess, "Work order created", wo.Title).
		WithAction("", "workorders/"+wo.ID.String())

	if s.notifier != nil {
		notice := notify.Notice{
			TenantID: wo.TenantID,
			Entity:   "work_order",
			EntityID: wo.ID.String(),
			Banner:   banner,
		}
		if err := s.notifier.Publish(ctx, notice); err != nil {
			log.Warn().Err(err).Str("tenant", wo.TenantID).Msg("workorder: banner fan-out failed")
		}
	}

	return result.OK(wo).
		WithMessage("Work order created.").
		WithBanner(banner)
}

// List returns the issuing tenant's work orders under the same session and
// tenant enforcement as Create.
func (s *Service) List(ctx context.Context, cmd command.ListWorkOrders) result.Result[[]*domain.WorkOrder] {
	user, ok := session.FromContext(ctx)
	if !ok {
		return result.Fail[[]*domain.WorkOrder](result.KindUnauthenticated, msgSignInRequired)
	}

	if cmd.TenantID != user.TenantID || cmd.Differentiator != user.Differentiator {
		return result.Fail[[]*domain.WorkOrder](result.KindTenantMismatch, msgTenantMismatch)
	}

	orders, err := s.orders.ListByTenant(ctx, cmd.TenantID)
	if err != nil {
		log.Error().Err(err).Str("tenant", cmd.TenantID).Msg("workorder: list failed")
		return result.Fail[[]*domain.WorkOrder](result.KindPersistenceFailure, msgStorageUnavailable)
	}

	return result.OK(orders)
}

// CreateHandler exposes Service.Create on the command bus.
func CreateHandler(s *Service) command.Registration {
	return command.Handle(func(ctx context.Context, cmd command.CreateWorkOrder) result.Result[any] {
		return result.Erase(s.Create(ctx, cmd))
	})
}

// ListHandler exposes Service.List on the command bus.
func ListHandler(s *Service) command.Registration {
	return command.Handle(func(ctx context.Context, cmd command.ListWorkOrders) result.Result[any] {
		return result.Erase(s.List(ctx, cmd))
	})
}
