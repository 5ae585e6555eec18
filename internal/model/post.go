// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// friendlyDateLayout renders a timestamp as weekday, month, day, year and
// 12-hour time with an AM/PM marker.
const friendlyDateLayout = "Mon Jan 2 2006, 3:04 PM"

// Post represents a blog post owned by a user. The owner never changes after
// creation and CreatedAt is set exactly once.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"user_id"`
}

// FriendlyDate returns the creation timestamp in a human-readable form.
// It is computed, never stored.
func (p Post) FriendlyDate() string {
	return p.CreatedAt.Format(friendlyDateLayout)
}
