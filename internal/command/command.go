// Package command defines the typed command values the UI constructs per
// action and the bus that routes each one to its single registered handler.
package command

import "github.com/publicworks/portal/internal/domain"

// Kind identifies a command's concrete type for routing. It is a closed
// typed enum rather than a string name, so a typo cannot route silently and
// registration stays validated at startup.
type Kind int

const (
	KindLogin Kind = iota + 1
	KindRegister
	KindCreateWorkOrder
	KindListWorkOrders
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindRegister:
		return "register"
	case KindCreateWorkOrder:
		return "create_work_order"
	case KindListWorkOrders:
		return "list_work_orders"
	}
	return "unknown"
}

// Command is an immutable description of one intended action. A command is
// fully self-describing: handlers read nothing beyond the instance and the
// session values threaded through the context.
type Command interface {
	Kind() Kind
}

// Login carries the credentials collected by the sign-in form.
type Login struct {
	Email    string
	Password string
}

func (Login) Kind() Kind { return KindLogin }

// Register creates a tenant-scoped account. Role and Differentiator default
// to USER and DEFAULT when left empty; TenantID wins over TenantName, and a
// fresh tenant id is generated when both are empty.
type Register struct {
	Email          string
	Password       string
	TenantName     string
	TenantID       string
	Role           domain.Role
	Differentiator domain.Differentiator
}

func (Register) Kind() Kind { return KindRegister }

// CreateWorkOrder files a new tenant-scoped work order. TenantID and
// Differentiator are stamped from the session upstream by the UI and are
// verified against the session again at handling time.
type CreateWorkOrder struct {
	TenantID         string
	Title            string
	Description      string
	RequestedBy      string
	RequesterContact string
	RequesterPhone   string
	Location         string
	Operation        string
	Priority         domain.Priority
	Differentiator   domain.Differentiator
}

func (CreateWorkOrder) Kind() Kind { return KindCreateWorkOrder }

// ListWorkOrders reads the issuing tenant's work orders.
type ListWorkOrders struct {
	TenantID       string
	Differentiator domain.Differentiator
}

func (ListWorkOrders) Kind() Kind { return KindListWorkOrders }
