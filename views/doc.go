// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package views renders the embedded HTML pages. Every page is parsed once
// together with base.html and rendered into a buffer before anything is
// sent, so a template error never produces a half-written response.
package views
