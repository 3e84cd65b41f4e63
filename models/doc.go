// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the JSON endpoints.

# Request Types

  - LoginRequest: username, password (form fields or JSON)

# Response Types

  - SessionResponse: stage, authenticated, created_at
  - OptionsResponse: type, options (sorted institute or area names)
  - SelectionResponse: type, key, outcome, count, entries
  - ReloadResponse: entries, institutes, areas, reloaded_at
  - ErrorResponse: error, message

# Constants

Filter type query values:

	TypeInstitute = "inct"
	TypeArea      = "area"
*/
package models
