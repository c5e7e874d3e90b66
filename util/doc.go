// Package util contains small parsing and formatting helpers shared across
// radscribe packages.
package util
