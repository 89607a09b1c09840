package customers

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE email = $1`, email).Scan(&n)
	return n > 0, err
}

func (r *Repo) Insert(ctx context.Context, c Customer) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO customers(first_name, last_name, email, phone, address, city, state, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING customer_id`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City, c.State, c.ZipCode).Scan(&id)
	return id, err
}
