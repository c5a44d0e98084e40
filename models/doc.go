// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain records and HTML form types.

# Domain Types

  - User: username (primary key), bcrypt password hash, email, first/last name
  - Feedback: surrogate id, title, content, owning username

# Form Types

Forms are decoded from application/x-www-form-urlencoded bodies and validated
with jellydator/validation:

  - RegisterForm: username, password, email, first_name, last_name
  - LoginForm: username, password
  - FeedbackForm: title, content

Every field is required. Length limits match the schema columns:

	MaxUsernameLen = 20
	MaxEmailLen    = 50
	MaxNameLen     = 30
	MaxTitleLen    = 100

FieldErrors converts a validation error into a field -> message map for
re-rendering a form.
*/
package models
