// Package sqlite implements the domain repositories on an embedded SQLite
// file, for shops that run the service on the counter machine itself.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/mobilehub-pos/internal/domain/repository"
)

const recordSelect = `SELECT id, name, phone, cnic, model, emi, type, price, paid_amount,
	remaining_amount, date, created_at, updated_at FROM customers`

type recordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository creates a SQLite backed record repository
func NewRecordRepository(db *sqlx.DB) domainRepo.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *entity.Record) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now().UTC()
	record.CreatedAt, record.UpdatedAt = now, now

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO customers
		(id, name, phone, cnic, model, emi, type, price, paid_amount, remaining_amount, date, created_at, updated_at)
		VALUES (:id, :name, :phone, :cnic, :model, :emi, :type, :price, :paid_amount, :remaining_amount, :date, :created_at, :updated_at)`,
		record)
	return err
}

func (r *recordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Record, error) {
	var record entity.Record
	err := r.db.GetContext(ctx, &record, recordSelect+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *recordRepository) Update(ctx context.Context, record *entity.Record) error {
	record.UpdatedAt = time.Now().UTC()
	_, err := r.db.NamedExecContext(ctx, `UPDATE customers SET
		name = :name, phone = :phone, cnic = :cnic, model = :model, emi = :emi, type = :type,
		price = :price, paid_amount = :paid_amount, remaining_amount = :remaining_amount,
		date = :date, updated_at = :updated_at
		WHERE id = :id`, record)
	return err
}

func (r *recordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	return err
}

func (r *recordRepository) List(ctx context.Context, search string) ([]entity.Record, error) {
	query := recordSelect
	var args []interface{}

	// LIKE ignores ASCII case in SQLite, so phone and cnic use instr
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + escapeLike(s) + "%"
		query += ` WHERE name LIKE ? ESCAPE '\' OR model LIKE ? ESCAPE '\' OR emi LIKE ? ESCAPE '\'
			OR instr(phone, ?) > 0 OR instr(cnic, ?) > 0`
		args = append(args, like, like, like, s, s)
	}
	query += ` ORDER BY created_at ASC, rowid ASC`

	records := make([]entity.Record, 0)
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
