package dto

import "time"

type ModelInfo struct {
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
	Size       int64     `json:"size,omitempty"`
	Digest     string    `json:"digest,omitempty"`
}

type ModelsListResponse struct {
	Models []ModelInfo `json:"models"`
}
