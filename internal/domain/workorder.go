package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Priority orders field work for dispatching crews.
type Priority string

const (
	PriorityLow       Priority = "LOW"
	PriorityNormal    Priority = "NORMAL"
	PriorityHigh      Priority = "HIGH"
	PriorityEmergency Priority = "EMERGENCY"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}

// WorkOrderStatus tracks a work order through its lifecycle.
type WorkOrderStatus string

const (
	WorkOrderOpen       WorkOrderStatus = "OPEN"
	WorkOrderInProgress WorkOrderStatus = "IN_PROGRESS"
	WorkOrderClosed     WorkOrderStatus = "CLOSED"
)

// WorkOrder is a tenant-scoped request for field work. TenantID and
// Differentiator must match the issuing user's session; cross-tenant writes
// are rejected before persistence.
type WorkOrder struct {
	ID               uuid.UUID
	TenantID         string
	Title            string
	Description      string
	RequestedBy      string
	RequesterContact string
	RequesterPhone   string
	Location         string
	Operation        string
	Priority         Priority
	Status           WorkOrderStatus
	Differentiator   Differentiator
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// WorkOrderRepository is the persistence collaborator contract for work
// orders. Each call is one atomic write or read.
type WorkOrderRepository interface {
	Create(ctx context.Context, wo *WorkOrder) error
	ListByTenant(ctx context.Context, tenantID string) ([]*WorkOrder, error)
}
