package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	domain "github.com/valebmss/pos-local1/internal/entity"
	"github.com/valebmss/pos-local1/internal/usecase"
)

type MySQLSalesLedger struct{ db *sql.DB }

func NewMySQLSalesLedger(db *sql.DB) *MySQLSalesLedger { return &MySQLSalesLedger{db: db} }

// Insert writes the sale exactly once. venta_id is the primary key, so a
// duplicate insert fails instead of silently overwriting a prior sale.
func (r *MySQLSalesLedger) Insert(ctx context.Context, sale *domain.SaleRecord) error {
	lines, err := json.Marshal(sale.Lines)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO ventas (venta_id,fecha,metodo_pago,cliente,monto_total,productos_json,created_at)
VALUES (?,?,?,?,?,?,?)
`, sale.SaleID, sale.Fecha, string(sale.PaymentMethod), sale.CustomerRef, sale.TotalAmount, lines, sale.CreatedAt)
	return err
}

func (r *MySQLSalesLedger) ListByDate(ctx context.Context, fecha string) ([]domain.SaleRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT venta_id,fecha,metodo_pago,cliente,monto_total,productos_json,created_at
FROM ventas WHERE fecha=? ORDER BY created_at`, fecha)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SaleRecord
	for rows.Next() {
		var (
			rec    domain.SaleRecord
			method string
			lines  []byte
		)
		if err := rows.Scan(&rec.SaleID, &rec.Fecha, &method, &rec.CustomerRef, &rec.TotalAmount, &lines, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.PaymentMethod = domain.PaymentMethod(method)
		if err := json.Unmarshal(lines, &rec.Lines); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ usecase.SalesLedger = (*MySQLSalesLedger)(nil)
