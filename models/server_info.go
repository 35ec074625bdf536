package models

import "time"

// ServerInfo is the answer of GET /api/version.
type ServerInfo struct {
	Version   string    `json:"version"`
	StartedAt time.Time `json:"startedAt"`
}
