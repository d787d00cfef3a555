package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/mbolis/formbox/model"
)

const formColumns = "id, title, description, fields, is_primary, is_archived, created_at, updated_at"

// FormStore persists form definitions and owns the lifecycle invariants:
// at most one non-archived form is primary, the primary form can neither be
// archived nor deleted, and setting an archived form primary un-archives it.
// Every clear-then-set primary transition runs inside a single transaction.
type FormStore struct {
	db *sql.DB
}

func NewFormStore(db *sql.DB) *FormStore {
	return &FormStore{db}
}

// GetPrimary returns the single primary, non-archived form.
func (s *FormStore) GetPrimary(ctx context.Context) (model.FormConfig, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+formColumns+`
		FROM form
		WHERE is_primary = 1 AND is_archived = 0`)
	return scanForm(row)
}

// Current returns the primary form, falling back to the well-known
// default-form document when nothing is marked primary.
func (s *FormStore) Current(ctx context.Context) (model.FormConfig, error) {
	form, err := s.GetPrimary(ctx)
	if errors.Is(err, ErrNotFound) {
		return s.GetByID(ctx, model.DefaultFormID)
	}
	return form, err
}

// Initialize returns the current form, creating the built-in default form
// (marked primary) when no usable form exists yet. It is idempotent.
func (s *FormStore) Initialize(ctx context.Context) (model.FormConfig, error) {
	form, err := s.Current(ctx)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return form, err
	}

	form = model.DefaultFormConfig()
	now := time.Now().UnixMilli()
	form.CreatedAt, form.UpdatedAt = now, now

	err = s.insert(ctx, form)
	if err != nil {
		return model.FormConfig{}, err
	}
	return form, nil
}

// ListAll returns every form, newest-created first.
func (s *FormStore) ListAll(ctx context.Context) ([]model.FormConfig, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+formColumns+`
		FROM form
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query forms: %w", err)
	}
	defer rows.Close()

	forms := []model.FormConfig{}
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

func (s *FormStore) GetByID(ctx context.Context, id string) (model.FormConfig, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+formColumns+`
		FROM form
		WHERE id = ?`,
		id)
	return scanForm(row)
}

// Create inserts a new form. A missing id is generated; timestamps are set
// to now and the form starts un-archived. When the new form is marked
// primary, every other form loses the flag in the same transaction.
func (s *FormStore) Create(ctx context.Context, form model.FormConfig) (model.FormConfig, error) {
	if form.ID == "" {
		form.ID = newFormID()
	}
	now := time.Now().UnixMilli()
	form.CreatedAt, form.UpdatedAt = now, now
	form.IsArchived = false

	if !form.IsPrimary {
		err := s.insert(ctx, form)
		if err != nil {
			return model.FormConfig{}, err
		}
		return form, nil
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := clearPrimary(ctx, tx, "")
		if err != nil {
			return err
		}
		return insertForm(ctx, tx, form)
	})
	if err != nil {
		return model.FormConfig{}, err
	}
	return form, nil
}

// Update merges a partial document into an existing form. Promoting a form
// to primary demotes all others; a document that ends up both primary and
// archived is silently corrected to un-archived.
func (s *FormStore) Update(ctx context.Context, id string, upd model.FormUpdate) (form model.FormConfig, err error) {
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			SELECT `+formColumns+`
			FROM form
			WHERE id = ?`,
			id)
		form, err = scanForm(row)
		if err != nil {
			return err
		}

		form = merge(form, upd)
		form.UpdatedAt = time.Now().UnixMilli()

		if upd.IsPrimary != nil && *upd.IsPrimary {
			err = clearPrimary(ctx, tx, id)
			if err != nil {
				return err
			}
		}
		return writeForm(ctx, tx, form)
	})
	if err != nil {
		return model.FormConfig{}, err
	}
	return form, nil
}

// Save upserts a full form document, the legacy single-form code path.
// A missing id falls back to the default form.
func (s *FormStore) Save(ctx context.Context, form model.FormConfig) (model.FormConfig, error) {
	if form.ID == "" {
		form.ID = model.DefaultFormID
	}
	if form.IsPrimary {
		form.IsArchived = false
	}
	form.UpdatedAt = time.Now().UnixMilli()

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if form.IsPrimary {
			err := clearPrimary(ctx, tx, form.ID)
			if err != nil {
				return err
			}
		}

		var createdAt int64
		err := tx.QueryRowContext(ctx, "SELECT created_at FROM form WHERE id = ?", form.ID).
			Scan(&createdAt)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			form.CreatedAt = form.UpdatedAt
			return insertForm(ctx, tx, form)
		case err != nil:
			return fmt.Errorf("query form: %w", err)
		}

		form.CreatedAt = createdAt
		return writeForm(ctx, tx, form)
	})
	if err != nil {
		return model.FormConfig{}, err
	}
	return form, nil
}

// SetPrimary makes the target form the single primary one, un-archiving it
// if needed. Whatever form was primary before is demoted to a plain active
// form, not archived.
func (s *FormStore) SetPrimary(ctx context.Context, id string) (form model.FormConfig, err error) {
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		err := clearPrimary(ctx, tx, id)
		if err != nil {
			return err
		}

		now := time.Now().UnixMilli()
		res, err := tx.ExecContext(ctx, `
			UPDATE form
			SET is_primary = 1, is_archived = 0, updated_at = ?
			WHERE id = ?`,
			now, id)
		if err != nil {
			return fmt.Errorf("set primary: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n < 1 {
			return fmt.Errorf("form %q: %w", id, ErrNotFound)
		}

		row := tx.QueryRowContext(ctx, `SELECT `+formColumns+` FROM form WHERE id = ?`, id)
		form, err = scanForm(row)
		return err
	})
	if err != nil {
		return model.FormConfig{}, err
	}
	return form, nil
}

// Archive sets the archived flag. Archiving the primary form is rejected:
// another form must be made primary first.
func (s *FormStore) Archive(ctx context.Context, id string, archived bool) (form model.FormConfig, err error) {
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+formColumns+` FROM form WHERE id = ?`, id)
		form, err = scanForm(row)
		if err != nil {
			return err
		}

		if form.IsPrimary && archived {
			return fmt.Errorf("cannot archive primary form, set another form as primary first: %w", ErrConflict)
		}

		form.IsArchived = archived
		form.UpdatedAt = time.Now().UnixMilli()
		return writeForm(ctx, tx, form)
	})
	if err != nil {
		return model.FormConfig{}, err
	}
	return form, nil
}

// Delete removes a form. The primary form cannot be deleted. Responses
// referencing the form are left in place.
func (s *FormStore) Delete(ctx context.Context, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var isPrimary bool
		err := tx.QueryRowContext(ctx, "SELECT is_primary FROM form WHERE id = ?", id).
			Scan(&isPrimary)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("form %q: %w", id, ErrNotFound)
		case err != nil:
			return fmt.Errorf("query form: %w", err)
		}

		if isPrimary {
			return fmt.Errorf("cannot delete primary form, set another form as primary first: %w", ErrConflict)
		}

		_, err = tx.ExecContext(ctx, "DELETE FROM form WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete form: %w", err)
		}
		return nil
	})
}

func (s *FormStore) inTx(ctx context.Context, op func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = op(tx)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *FormStore) insert(ctx context.Context, form model.FormConfig) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return insertForm(ctx, tx, form)
	})
}

func clearPrimary(ctx context.Context, tx *sql.Tx, exceptID string) error {
	_, err := tx.ExecContext(ctx, "UPDATE form SET is_primary = 0 WHERE id <> ?", exceptID)
	if err != nil {
		return fmt.Errorf("clear primary: %w", err)
	}
	return nil
}

func insertForm(ctx context.Context, tx *sql.Tx, form model.FormConfig) error {
	fields, err := json.Marshal(form.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO form (`+formColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		form.ID, form.Title, form.Description, string(fields),
		form.IsPrimary, form.IsArchived, form.CreatedAt, form.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert form: %w", err)
	}
	return nil
}

func writeForm(ctx context.Context, tx *sql.Tx, form model.FormConfig) error {
	fields, err := json.Marshal(form.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE form
		SET
			title = ?,
			description = ?,
			fields = ?,
			is_primary = ?,
			is_archived = ?,
			updated_at = ?
		WHERE id = ?`,
		form.Title, form.Description, string(fields),
		form.IsPrimary, form.IsArchived, form.UpdatedAt,
		form.ID)
	if err != nil {
		return fmt.Errorf("update form: %w", err)
	}
	return nil
}

func merge(form model.FormConfig, upd model.FormUpdate) model.FormConfig {
	if upd.Title != "" {
		form.Title = upd.Title
	}
	if upd.Description != nil {
		form.Description = *upd.Description
	}
	if upd.Fields != nil {
		form.Fields = upd.Fields
	}
	if upd.IsPrimary != nil {
		form.IsPrimary = *upd.IsPrimary
	}
	if upd.IsArchived != nil {
		form.IsArchived = *upd.IsArchived
	}
	if form.IsPrimary {
		// a primary form can never be archived
		form.IsArchived = false
	}
	return form
}

type scanner interface {
	Scan(dest ...any) error
}

func scanForm(s scanner) (form model.FormConfig, err error) {
	var fields string
	err = s.Scan(
		&form.ID, &form.Title, &form.Description, &fields,
		&form.IsPrimary, &form.IsArchived, &form.CreatedAt, &form.UpdatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return form, ErrNotFound
	case err != nil:
		return form, fmt.Errorf("scan form: %w", err)
	}

	if fields != "" {
		err = json.Unmarshal([]byte(fields), &form.Fields)
		if err != nil {
			return form, fmt.Errorf("parse form fields: %w", err)
		}
	}
	return form, nil
}

func newFormID() string {
	suffix := uuid.Must(uuid.NewV4()).String()[:8]
	return fmt.Sprintf("form-%d-%s", time.Now().UnixMilli(), suffix)
}
