// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for form input structs.
var validate = validator.New()

// UserForm is the typed input for user create/edit submissions. ImageURL is
// optional; a blank value takes the default on create and is stored verbatim
// on edit.
type UserForm struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	ImageURL  string `validate:"-"`
}

// Values returns the submitted values for re-rendering the form.
func (f UserForm) Values() map[string]string {
	return map[string]string{
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"image_url":  f.ImageURL,
	}
}

// parseUserForm reads user form fields from a parsed request and validates
// presence of the required ones. The returned map is non-empty when
// validation failed, keyed by form field name.
func parseUserForm(r *http.Request) (UserForm, map[string]string) {
	form := UserForm{
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		ImageURL:  strings.TrimSpace(r.FormValue("image_url")),
	}

	return form, validationErrors(validate.Struct(form), map[string]string{
		"FirstName": "first_name",
		"LastName":  "last_name",
	}, map[string]string{
		"first_name": "First name is required",
		"last_name":  "Last name is required",
	})
}

// PostForm is the typed input for post create/edit submissions.
type PostForm struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

// Values returns the submitted values for re-rendering the form.
func (f PostForm) Values() map[string]string {
	return map[string]string{
		"title":   f.Title,
		"content": f.Content,
	}
}

// parsePostForm reads post form fields from a parsed request and validates
// presence of the required ones.
func parsePostForm(r *http.Request) (PostForm, map[string]string) {
	form := PostForm{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: r.FormValue("content"),
	}

	return form, validationErrors(validate.Struct(form), map[string]string{
		"Title":   "title",
		"Content": "content",
	}, map[string]string{
		"title":   "Title is required",
		"content": "Content is required",
	})
}

// validationErrors translates validator output into a form-field → message map.
func validationErrors(err error, fields, messages map[string]string) map[string]string {
	if err == nil {
		return nil
	}

	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if name, ok := fields[fe.Field()]; ok {
				out[name] = messages[name]
			}
		}
	}
	return out
}
