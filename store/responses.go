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

const responseColumns = "id, form_id, data, email, submitted_at"

// ResponseStore persists visitor submissions. Rows are only ever inserted
// and deleted, never updated; the form reference is deliberately soft, so
// responses survive deletion of their form.
type ResponseStore struct {
	db *sql.DB
}

func NewResponseStore(db *sql.DB) *ResponseStore {
	return &ResponseStore{db}
}

// Add stores a submission, assigning its id and timestamp.
func (s *ResponseStore) Add(ctx context.Context, formID string, data map[string]any, email *string) (model.FormResponse, error) {
	resp := model.FormResponse{
		ID:          uuid.Must(uuid.NewV4()).String(),
		FormID:      formID,
		Data:        data,
		Email:       email,
		SubmittedAt: time.Now().UnixMilli(),
	}

	payload, err := json.Marshal(resp.Data)
	if err != nil {
		return model.FormResponse{}, fmt.Errorf("marshal response data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO response (`+responseColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		resp.ID, resp.FormID, string(payload), resp.Email, resp.SubmittedAt)
	if err != nil {
		return model.FormResponse{}, fmt.Errorf("insert response: %w", err)
	}
	return resp, nil
}

// List returns every response, most recently submitted first.
func (s *ResponseStore) List(ctx context.Context) ([]model.FormResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+responseColumns+`
		FROM response
		ORDER BY submitted_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	responses := []model.FormResponse{}
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (s *ResponseStore) GetByID(ctx context.Context, id string) (model.FormResponse, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+responseColumns+`
		FROM response
		WHERE id = ?`,
		id)
	return scanResponse(row)
}

// Delete removes one response, reporting whether a row actually existed.
func (s *ResponseStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM response WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete response: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanResponse(s scanner) (resp model.FormResponse, err error) {
	var data string
	err = s.Scan(&resp.ID, &resp.FormID, &data, &resp.Email, &resp.SubmittedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return resp, ErrNotFound
	case err != nil:
		return resp, fmt.Errorf("scan response: %w", err)
	}

	err = json.Unmarshal([]byte(data), &resp.Data)
	if err != nil {
		return resp, fmt.Errorf("parse response data: %w", err)
	}
	return resp, nil
}
