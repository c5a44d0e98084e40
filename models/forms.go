// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jellydator/validation"
	"github.com/jellydator/validation/is"
)

// usernamePattern keeps a username to one URL path segment that the mux
// will not clean or split: no slash, query or fragment, no leading dot.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// RegisterForm is the body of POST /register
type RegisterForm struct {
	Username  string `schema:"username" json:"username"`
	Password  string `schema:"password" json:"password"`
	Email     string `schema:"email" json:"email"`
	FirstName string `schema:"first_name" json:"first_name"`
	LastName  string `schema:"last_name" json:"last_name"`
}

func (f RegisterForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username,
			validation.Required.Error("Username is required."),
			validation.RuneLength(0, MaxUsernameLen).Error("Username must be at most 20 characters."),
			validation.Match(usernamePattern).Error("Username may only contain letters, digits, '.', '-' and '_'."),
		),
		validation.Field(&f.Password,
			validation.Required.Error("Password is required."),
		),
		validation.Field(&f.Email,
			validation.Required.Error("Email is required."),
			validation.RuneLength(0, MaxEmailLen).Error("Email must be at most 50 characters."),
			is.EmailFormat.Error("Enter a valid email address."),
		),
		validation.Field(&f.FirstName,
			validation.Required.Error("First name is required."),
			validation.RuneLength(0, MaxNameLen).Error("First name must be at most 30 characters."),
		),
		validation.Field(&f.LastName,
			validation.Required.Error("Last name is required."),
			validation.RuneLength(0, MaxNameLen).Error("Last name must be at most 30 characters."),
		),
	)
}

// Normalize trims surrounding whitespace from every field except the password
func (f *RegisterForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
}

// LoginForm is the body of POST /login
type LoginForm struct {
	Username string `schema:"username" json:"username"`
	Password string `schema:"password" json:"password"`
}

// Normalize trims the username the same way registration does
func (f *LoginForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required.Error("Username is required.")),
		validation.Field(&f.Password, validation.Required.Error("Password is required.")),
	)
}

// FeedbackForm is the body of the add and edit feedback forms
type FeedbackForm struct {
	Title   string `schema:"title" json:"title"`
	Content string `schema:"content" json:"content"`
}

func (f FeedbackForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("Title is required."),
			validation.RuneLength(0, MaxTitleLen).Error("Title must be at most 100 characters."),
		),
		validation.Field(&f.Content,
			validation.Required.Error("Content is required."),
		),
	)
}

func (f *FeedbackForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
}

// FieldErrors flattens a validation error into field -> message.
// Errors that are not per-field land under the "form" key.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	out := map[string]string{}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			if fieldErr != nil {
				out[field] = fieldErr.Error()
			}
		}
		return out
	}

	out["form"] = err.Error()
	return out
}
