// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"blogly/internal/model"
)

const getPostByID = `
SELECT id, title, content, created_at, user_id
FROM posts
WHERE id = ?
`

// GetPostByID returns the post with the given id, or sql.ErrNoRows.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, getPostByID, id)
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UserID)
	return p, err
}

const listRecentPosts = `
SELECT p.id, p.title, p.content, p.created_at, p.user_id, u.first_name, u.last_name
FROM posts p
JOIN users u ON u.id = p.user_id
ORDER BY p.created_at DESC, p.id DESC
LIMIT ?
`

// ListRecentPostsRow is a post joined with its author's name.
type ListRecentPostsRow struct {
	model.Post
	AuthorFirstName string
	AuthorLastName  string
}

// AuthorFullName returns the author's first and last name separated by a space.
func (r ListRecentPostsRow) AuthorFullName() string {
	return r.AuthorFirstName + " " + r.AuthorLastName
}

// ListRecentPosts returns the most recently created posts, newest first,
// each joined with its author.
func (q *Queries) ListRecentPosts(ctx context.Context, limit int64) ([]ListRecentPostsRow, error) {
	rows, err := q.db.QueryContext(ctx, listRecentPosts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []ListRecentPostsRow
	for rows.Next() {
		var r ListRecentPostsRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Content, &r.CreatedAt, &r.UserID,
			&r.AuthorFirstName, &r.AuthorLastName); err != nil {
			return nil, err
		}
		posts = append(posts, r)
	}
	return posts, rows.Err()
}

const listPostsByUser = `
SELECT id, title, content, created_at, user_id
FROM posts
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
`

// ListPostsByUser returns all posts owned by the given user, newest first.
func (q *Queries) ListPostsByUser(ctx context.Context, userID int64) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, listPostsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// CreatePostParams holds the fields for a new post.
type CreatePostParams struct {
	Title     string
	Content   string
	CreatedAt time.Time
	UserID    int64
}

const createPost = `
INSERT INTO posts (title, content, created_at, user_id)
VALUES (?, ?, ?, ?)
RETURNING id, title, content, created_at, user_id
`

// CreatePost inserts a new post and returns the stored row.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, createPost, arg.Title, arg.Content, arg.CreatedAt, arg.UserID)
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UserID)
	return p, err
}

// UpdatePostParams holds the replacement fields for an existing post.
// CreatedAt and UserID are never updated.
type UpdatePostParams struct {
	Title   string
	Content string
	ID      int64
}

const updatePost = `
UPDATE posts
SET title = ?, content = ?
WHERE id = ?
RETURNING id, title, content, created_at, user_id
`

// UpdatePost overwrites the post's title and content and returns the stored
// row, or sql.ErrNoRows if the post does not exist.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, updatePost, arg.Title, arg.Content, arg.ID)
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UserID)
	return p, err
}

const deletePost = `
DELETE FROM posts
WHERE id = ?
`

// DeletePost removes a post.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePost, id)
	return err
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UserID); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
