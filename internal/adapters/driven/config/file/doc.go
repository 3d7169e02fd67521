// Package file provides file-based configuration adapters: a TOML config
// store and a prompt store with user-editable template files.
package file
