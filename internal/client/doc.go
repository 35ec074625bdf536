// Package client runs the trip-keeper terminal client.
//
// [App] alternates between the login pages and a session. Each session gets
// its own context and its own run of the background workers, so a logout
// stops key sharing for the previous user before the next one signs in.
package client
