package repos

import (
	"candelore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateWithItems persists the order header and every line in one
// transaction. Either all of it lands or none of it does.
func (r *OrderRepo) CreateWithItems(o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, customer_name, phone, contact_method, address, comment, total, status, created_at)
	  VALUES(?,?,?,?,?,?,?,'new',CURRENT_TIMESTAMP)
	`, o.ID, o.CustomerName, o.Phone, o.ContactMethod, o.Address, o.Comment, o.Total); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(id, order_id, product_id, color_id, qty, unit_price)
		  VALUES(?,?,?,?,?,?)
		`, it.ID, it.OrderID, it.ProductID, it.ColorID, it.Qty, it.UnitPrice); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, customer_name, phone, contact_method, address, comment, total, status, created_at
	  FROM orders WHERE id = ?
	`, id)
	return o, err
}

// ItemRow is an order line joined with whatever product data still exists.
type ItemRow struct {
	ProductID   string  `db:"product_id"`
	ProductName string  `db:"product_name"`
	ColorName   string  `db:"color_name"`
	Qty         int     `db:"qty"`
	UnitPrice   float64 `db:"unit_price"`
	Subtotal    float64 `db:"subtotal"`
}

func (r *OrderRepo) Items(orderID string) ([]ItemRow, error) {
	var out []ItemRow
	err := r.db.Select(&out, `
	  SELECT oi.product_id,
	         COALESCE(p.name,'(removed)') AS product_name,
	         COALESCE(c.name,'')          AS color_name,
	         oi.qty, oi.unit_price,
	         (oi.qty * oi.unit_price)     AS subtotal
	  FROM order_items oi
	  LEFT JOIN products p ON p.id = oi.product_id
	  LEFT JOIN colors   c ON c.id = oi.color_id
	  WHERE oi.order_id = ?
	`, orderID)
	return out, err
}

// ListLatest feeds the admin order list, newest first.
func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, customer_name, phone, contact_method, address, comment, total, status, created_at
	  FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}
