package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"passportal/internal/application/models"
	"passportal/pkg/platform/sentinel"
)

// Postgres stores application records in one table, sections as JSONB. This
// is the deployment path that replaces the demo's flat JSON file.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a pool against the given URL and ensures the schema.
func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &Postgres{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresFromDB wraps an existing pool (integration tests).
func NewPostgresFromDB(ctx context.Context, db *sql.DB) (*Postgres, error) {
	s := &Postgres{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Postgres) Close() error { return s.db.Close() }

// Ping reports pool health for the readiness endpoint.
func (s *Postgres) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

const schemaSQL = `
CREATE TABLE IF NOT EXISTS applications (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL,
    personal_info   JSONB,
    contact_info    JSONB,
    passport_opts   JSONB,
    documents       JSONB,
    payment         JSONB,
    appointment     JSONB,
    submission_date TIMESTAMPTZ,
    last_updated    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_applications_status ON applications (status);
`

func (s *Postgres) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure applications schema: %w", err)
	}
	return nil
}

func (s *Postgres) Create(ctx context.Context, record *models.ApplicationRecord) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO applications
			(id, user_id, status, personal_info, contact_info, passport_opts,
			 documents, payment, appointment, submission_date, last_updated)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO NOTHING`,
		row.id, row.userID, row.status, row.personal, row.contact, row.opts,
		row.documents, row.payment, row.appointment, row.submissionDate, row.lastUpdated)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id string) (*models.ApplicationRecord, error) {
	record, err := scanOne(s.db.QueryRowContext(ctx, selectSQL+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return record, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.ApplicationRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectSQL+` ORDER BY submission_date DESC NULLS LAST`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []*models.ApplicationRecord
	for rows.Next() {
		record, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Execute uses SELECT ... FOR UPDATE so validation and mutation see a stable
// row even with concurrent admins.
func (s *Postgres) Execute(ctx context.Context, id string,
	validate func(*models.ApplicationRecord) error,
	mutate func(*models.ApplicationRecord)) (*models.ApplicationRecord, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	record, err := scanOne(tx.QueryRowContext(ctx, selectSQL+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock application: %w", err)
	}
	if err := validate(record); err != nil {
		return nil, err
	}
	mutate(record)

	row, err := toRow(record)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE applications SET
			status = $2, personal_info = $3, contact_info = $4,
			passport_opts = $5, documents = $6, payment = $7,
			appointment = $8, submission_date = $9, last_updated = $10
		WHERE id = $1`,
		row.id, row.status, row.personal, row.contact, row.opts,
		row.documents, row.payment, row.appointment, row.submissionDate, row.lastUpdated)
	if err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit application update: %w", err)
	}
	return record, nil
}

const selectSQL = `
	SELECT id, user_id, status, personal_info, contact_info, passport_opts,
	       documents, payment, appointment, submission_date, last_updated
	FROM applications`

type applicationRow struct {
	id             string
	userID         string
	status         string
	personal       []byte
	contact        []byte
	opts           []byte
	documents      []byte
	payment        []byte
	appointment    []byte
	submissionDate sql.NullTime
	lastUpdated    sql.NullTime
}

func toRow(r *models.ApplicationRecord) (*applicationRow, error) {
	row := &applicationRow{id: r.ID, userID: r.UserID, status: string(r.Status)}
	var err error
	if row.personal, err = marshalSection(r.PersonalInfo); err != nil {
		return nil, err
	}
	if row.contact, err = marshalSection(r.ContactInfo); err != nil {
		return nil, err
	}
	if row.opts, err = marshalSection(r.PassportOpts); err != nil {
		return nil, err
	}
	if row.documents, err = marshalSection(r.Documents); err != nil {
		return nil, err
	}
	if row.payment, err = marshalSection(r.Payment); err != nil {
		return nil, err
	}
	if row.appointment, err = marshalSection(r.Appointment); err != nil {
		return nil, err
	}
	if !r.SubmissionDate.IsZero() {
		row.submissionDate = sql.NullTime{Time: r.SubmissionDate, Valid: true}
	}
	row.lastUpdated = sql.NullTime{Time: r.LastUpdated, Valid: true}
	return row, nil
}

// marshalSection keeps NULL in the column when a section is absent.
func marshalSection[T any](section *T) ([]byte, error) {
	if section == nil {
		return nil, nil
	}
	data, err := json.Marshal(section)
	if err != nil {
		return nil, fmt.Errorf("marshal section: %w", err)
	}
	return data, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOne(sc rowScanner) (*models.ApplicationRecord, error) {
	var row applicationRow
	if err := sc.Scan(&row.id, &row.userID, &row.status, &row.personal,
		&row.contact, &row.opts, &row.documents, &row.payment,
		&row.appointment, &row.submissionDate, &row.lastUpdated); err != nil {
		return nil, err
	}
	record := &models.ApplicationRecord{
		ID:     row.id,
		UserID: row.userID,
		Status: models.Status(row.status),
	}
	if err := unmarshalSection(row.personal, &record.PersonalInfo); err != nil {
		return nil, err
	}
	if err := unmarshalSection(row.contact, &record.ContactInfo); err != nil {
		return nil, err
	}
	if err := unmarshalSection(row.opts, &record.PassportOpts); err != nil {
		return nil, err
	}
	if err := unmarshalSection(row.documents, &record.Documents); err != nil {
		return nil, err
	}
	if err := unmarshalSection(row.payment, &record.Payment); err != nil {
		return nil, err
	}
	if err := unmarshalSection(row.appointment, &record.Appointment); err != nil {
		return nil, err
	}
	if row.submissionDate.Valid {
		record.SubmissionDate = row.submissionDate.Time
	}
	if row.lastUpdated.Valid {
		record.LastUpdated = row.lastUpdated.Time
	}
	return record, nil
}

func unmarshalSection[T any](data []byte, dst **T) error {
	if len(data) == 0 {
		return nil
	}
	section := new(T)
	if err := json.Unmarshal(data, section); err != nil {
		return fmt.Errorf("unmarshal section: %w", err)
	}
	*dst = section
	return nil
}
