// Package httpapi exposes document upload, management, and chat over a
// JSON HTTP API.
package httpapi
