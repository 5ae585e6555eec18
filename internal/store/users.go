// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"blogly/internal/model"
)

const getUserByID = `
SELECT id, first_name, last_name, image_url
FROM users
WHERE id = ?
`

// GetUserByID returns the user with the given id, or sql.ErrNoRows.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u model.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.ImageURL)
	return u, err
}

const listUsers = `
SELECT id, first_name, last_name, image_url
FROM users
ORDER BY last_name, first_name
`

// ListUsers returns all users ordered by last name, then first name.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.ImageURL); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateUserParams holds the fields for a new user.
type CreateUserParams struct {
	FirstName string
	LastName  string
	ImageURL  string
}

const createUser = `
INSERT INTO users (first_name, last_name, image_url)
VALUES (?, ?, ?)
RETURNING id, first_name, last_name, image_url
`

// CreateUser inserts a new user and returns the stored row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, createUser, arg.FirstName, arg.LastName, arg.ImageURL)
	var u model.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.ImageURL)
	return u, err
}

// UpdateUserParams holds the full replacement fields for an existing user.
type UpdateUserParams struct {
	FirstName string
	LastName  string
	ImageURL  string
	ID        int64
}

const updateUser = `
UPDATE users
SET first_name = ?, last_name = ?, image_url = ?
WHERE id = ?
RETURNING id, first_name, last_name, image_url
`

// UpdateUser overwrites all user fields and returns the stored row, or
// sql.ErrNoRows if the user does not exist.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, updateUser, arg.FirstName, arg.LastName, arg.ImageURL, arg.ID)
	var u model.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.ImageURL)
	return u, err
}

const deleteUserPosts = `
DELETE FROM posts
WHERE user_id = ?
`

// DeleteUserPosts removes every post owned by the given user.
func (q *Queries) DeleteUserPosts(ctx context.Context, userID int64) error {
	_, err := q.db.ExecContext(ctx, deleteUserPosts, userID)
	return err
}

const deleteUser = `
DELETE FROM users
WHERE id = ?
`

// DeleteUser removes a single user row. Use DeleteUserCascade to also remove
// the user's posts.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteUser, id)
	return err
}

// DeleteUserCascade removes a user and every post it owns within a single
// transaction, so no orphan posts can remain visible to subsequent reads.
func DeleteUserCascade(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := New(tx)
	if err := qtx.DeleteUserPosts(ctx, id); err != nil {
		return fmt.Errorf("deleting user posts: %w", err)
	}
	if err := qtx.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return tx.Commit()
}
