// Package crm provides the client for the external CRM API from which filter
// definitions and filtered organization lists are pulled.
//
// The matching workflow only sees the Client interface; the HTTP
// implementation keeps all resilience concerns internal. Requests are paced
// with a token-bucket limiter, HTTP 429 responses and transport failures are
// retried with exponential back-off up to a configured bound, and organization
// listings follow the CRM's start/limit pagination until it reports no more
// items in the collection.
//
// Unknown filter ids surface as apperror.ErrFilterNotFound; exhausted retries
// surface as apperror.ErrExternalFetch. Nothing in this package persists
// state, so a failed pull never corrupts the registry or the result cache.
package crm
