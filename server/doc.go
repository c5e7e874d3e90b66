// Package server provides the HTTP server for radscribe: a Gin engine with
// optional support for additional http.Handler mounts (e.g. the static
// frontend) on the same port, plus default middleware application.
package server
