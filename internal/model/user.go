// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types of the application: User, Post and
// their computed accessors.
package model

// DefaultImageURL is stored verbatim when a user is created without an image URL.
const DefaultImageURL = "https://www.freeiconspng.com/uploads/icon-user-blue-symbol-people-person-generic--public-domain--21.png"

// User represents a site user who owns blog posts.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
}

// FullName returns the user's first and last name separated by a space.
// It is computed, never stored.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
