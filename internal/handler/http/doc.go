// Package http serves the document store API used by trip-keeper clients:
// registration and login, single documents, collections, atomic batches and
// the server version. Every document route runs behind bearer-token auth,
// and the access rules live in the service layer.
package http
