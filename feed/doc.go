// Package feed fetches the open-data feeds published by api.data.amsterdam.nl.
//
// A Client issues a single GET per call, bounded by a timeout, and returns the
// decoded JSON document. Failures are reported as *apperr.Error values:
//   - timeouts, transport errors and non-2xx statuses are KindConnection
//   - unexpected content types and undecodable bodies are KindData
//
// When no *http.Client is supplied the Client creates one on first use and
// owns it; Close releases only a client it created itself.
package feed
