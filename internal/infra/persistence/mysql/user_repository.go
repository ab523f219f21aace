package mysql

import (
	"context"
	"database/sql"
	"errors"

	driver "github.com/go-sql-driver/mysql"

	domuser "example.com/product-catalog/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO users (name, email, password_hash, role)
        VALUES (?, ?, ?, ?)
    `, u.Name, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		var mysqlErr *driver.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, domuser.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, email, password_hash, role FROM users WHERE id = ?
    `, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, email, password_hash, role FROM users WHERE email = ?
    `, email)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context) ([]*domuser.User, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, email, password_hash, role FROM users ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domuser.User
	for rows.Next() {
		var u domuser.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domuser.ErrUserNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*domuser.User, error) {
	var u domuser.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
