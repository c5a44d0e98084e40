// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/feedback-notes/models"
)

// FeedbackStore is the feedback ledger backed by the feedback table.
type FeedbackStore struct {
	db *sql.DB
}

func NewFeedbackStore(db *sql.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Create persists a new feedback note owned by owner
func (s *FeedbackStore) Create(ctx context.Context, title, content, owner string) (*models.Feedback, error) {
	if title == "" || content == "" {
		return nil, ErrEmptyField
	}

	fb := &models.Feedback{Title: title, Content: content, Username: owner}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO feedback (title, content, username)
		VALUES ($1, $2, $3)
		RETURNING id
	`, title, content, owner).Scan(&fb.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert feedback: %w", err)
	}
	return fb, nil
}

// Get looks up feedback by id
func (s *FeedbackStore) Get(ctx context.Context, id int64) (*models.Feedback, error) {
	var fb models.Feedback
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, username
		FROM feedback
		WHERE id = $1
	`, id).Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	return &fb, nil
}

// ListByUser returns a user's feedback in creation order
func (s *FeedbackStore) ListByUser(ctx context.Context, username string) ([]models.Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, username
		FROM feedback
		WHERE username = $1
		ORDER BY id
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	items := []models.Feedback{}
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		items = append(items, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}
	return items, nil
}

// Update replaces title and content; id and owner never change
func (s *FeedbackStore) Update(ctx context.Context, id int64, title, content string) error {
	if title == "" || content == "" {
		return ErrEmptyField
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE feedback SET title = $1, content = $2 WHERE id = $3
	`, title, content, id)
	if err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}
	return expectOneRow(res)
}

func (s *FeedbackStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
