// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines error types that include remediation steps, plus a small
// registry of known failure conditions rendered as terminal cards, improving the
// user experience when errors occur during CLI operations.
package issue
