// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for "edit" routes.
	RouteSuffixEdit = "/edit"
	// RouteSuffixDelete is the suffix for "delete" routes.
	RouteSuffixDelete = "/delete"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	// RouteUsers is the users route.
	RouteUsers = "/users"
	// RoutePosts is the posts route.
	RoutePosts = "/posts"

	// RouteUsersID is the users ID route pattern.
	RouteUsersID = RouteUsers + RouteParamID
	// RoutePostsID is the posts ID route pattern.
	RoutePostsID = RoutePosts + RouteParamID
	// RouteUserPostsNew is the per-user post creation route pattern.
	RouteUserPostsNew = RouteUsersID + RoutePosts + RouteSuffixNew
)

const (
	redirectUsers    = RouteUsers
	redirectUsersNew = RouteUsers + RouteSuffixNew
	redirectUserID   = "/users/%d"
)

// HomepagePostCount is the number of recent posts shown on the homepage.
const HomepagePostCount = 5
