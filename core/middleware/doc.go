// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key validation, disabled when no key is configured.
//   - rayid: a unique request id (ray id) stored in the context and echoed in
//     the X-Ray-ID response header so logs can be correlated.
package middleware
