package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/publicworks/portal/internal/domain"
)

type WorkOrderRepo struct {
	pool *pgxpool.Pool
}

func NewWorkOrderRepo(pool *pgxpool.Pool) *WorkOrderRepo {
	return &WorkOrderRepo{pool: pool}
}

func (r *WorkOrderRepo) Create(ctx context.Context, wo *domain.WorkOrder) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO work_orders (id, tenant_id, title, description, requested_by, requester_contact,
		                          requester_phone, location, operation, priority, status,
		                          customer_differentiator, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		wo.ID, wo.TenantID, wo.Title, wo.Description, wo.RequestedBy, wo.RequesterContact,
		wo.RequesterPhone, wo.Location, wo.Operation, wo.Priority, wo.Status,
		wo.Differentiator, wo.CreatedAt, wo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("workOrderRepo.Create: %w", err)
	}

	return nil
}

func (r *WorkOrderRepo) ListByTenant(ctx context.Context, tenantID string) ([]*domain.WorkOrder, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, title, description, requested_by, requester_contact,
		        requester_phone, location, operation, priority, status,
		        customer_differentiator, created_at, updated_at
		 FROM work_orders WHERE tenant_id = $1
		 ORDER BY created_at DESC, id
		 LIMIT 1000`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("workOrderRepo.ListByTenant: %w", err)
	}
	defer rows.Close()

	return scanWorkOrders(rows, "workOrderRepo.ListByTenant")
}

func scanWorkOrders(rows pgx.Rows, op string) ([]*domain.WorkOrder, error) {
	var orders []*domain.WorkOrder
	for rows.Next() {
		var wo domain.WorkOrder

		err := rows.Scan(
			&wo.ID, &wo.TenantID, &wo.Title, &wo.Description, &wo.RequestedBy, &wo.RequesterContact,
			&wo.RequesterPhone, &wo.Location, &wo.Operation, &wo.Priority, &wo.Status,
			&wo.Differentiator, &wo.CreatedAt, &wo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		orders = append(orders, &wo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return orders, nil
}
