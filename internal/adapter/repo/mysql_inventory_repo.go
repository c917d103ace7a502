package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/valebmss/pos-local1/internal/entity"
	"github.com/valebmss/pos-local1/internal/usecase"
)

type MySQLInventoryRepo struct{ db *sql.DB }

func NewMySQLInventoryRepo(db *sql.DB) *MySQLInventoryRepo { return &MySQLInventoryRepo{db: db} }

func (r *MySQLInventoryRepo) Get(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT product_id,nombre,precio_venta,stock
FROM inventario WHERE product_id=?`, productID)
	var rec domain.InventoryRecord
	if err := row.Scan(&rec.ProductID, &rec.Nombre, &rec.PrecioVenta, &rec.Stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *MySQLInventoryRepo) Scan(ctx context.Context) ([]domain.InventoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT product_id,nombre,precio_venta,stock
FROM inventario ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.InventoryRecord
	for rows.Next() {
		var rec domain.InventoryRecord
		if err := rows.Scan(&rec.ProductID, &rec.Nombre, &rec.PrecioVenta, &rec.Stock); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DecrementStock is the conditional decrement: the stock guard and the write
// are one statement, so two concurrent checkouts cannot both drain the same
// units. rows == 0 → either unknown product or insufficient stock.
func (r *MySQLInventoryRepo) DecrementStock(ctx context.Context, productID string, qty int) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE inventario
        SET stock = stock - ?, updated_at = NOW()
        WHERE product_id = ? AND stock >= ?`,
		qty, productID, qty,
	)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := r.Get(ctx, productID); err != nil {
			return err
		}
		return usecase.ErrInsufficientStock
	}
	return nil
}

func (r *MySQLInventoryRepo) AddStock(ctx context.Context, productID string, qty int) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE inventario
        SET stock = stock + ?, updated_at = NOW()
        WHERE product_id = ?`,
		qty, productID,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

var _ usecase.InventoryStore = (*MySQLInventoryRepo)(nil)
