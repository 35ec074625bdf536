// Package server runs the trip-keeper HTTP API and the gRPC health endpoint
// side by side and stops them together.
package server
