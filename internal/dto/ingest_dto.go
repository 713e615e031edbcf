package dto

// PublishIngestDocumentMessage is the watermill payload for asynchronous ingestion.
type PublishIngestDocumentMessage struct {
	JobId    string `json:"job_id"`
	FilePath string `json:"file_path"`
	Source   string `json:"source"`
}

type IngestAcceptedResponse struct {
	JobId  string `json:"job_id"`
	Source string `json:"source"`
}

type IngestResult struct {
	Source   string `json:"source"`
	Pages    int    `json:"pages"`
	Chunks   int    `json:"chunks"`
	Upserted int    `json:"upserted"`
	// Existing counts the passages already stored for Source before this run.
	Existing int64 `json:"existing"`
}
