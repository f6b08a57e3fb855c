// Package api defines the JSON wire types of the primed service and a small
// client for calling it.
//
// # Endpoints
//
//	GET /health                          200 when the service is up
//	GET /primes?end=N[&mode=M][&segment=S][&from=A][&count_only=1]
//	                                     PrimesResponse
//	GET /stats                           StatsResponse
//	GET /info                            driver.HostInfo
//
// # Errors
//
// Failures are plain-text bodies with a non-2xx status:
//   - 400 Bad Request: malformed or invalid parameters
//   - 413 Request Entity Too Large: full sieve above the service limit
//   - 405 Method Not Allowed: anything other than GET
//
// GetJSON turns any status >= 300 into an error carrying the status code.
package api
