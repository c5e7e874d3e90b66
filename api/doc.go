// Package api exposes the comparison pipeline over HTTP: one endpoint to
// submit an audio clip against several model variants, plus supporting
// routes for model listing, the client-side live streaming key, and the
// static frontend.
package api
