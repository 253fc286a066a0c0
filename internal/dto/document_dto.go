package dto

type UploadDocumentResponse struct {
	SessionId    string `json:"session_id"`
	Filename     string `json:"filename"`
	ChunksStored int    `json:"chunks_stored"`
}
