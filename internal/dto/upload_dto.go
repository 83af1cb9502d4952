package dto

// UploadRequest carries an image as a data-URI, the authoring editor's output.
type UploadRequest struct {
	FileName string `json:"file_name"`
	DataURI  string `json:"data_uri" validate:"required"`
}

// UploadResponse describes the stored file.
type UploadResponse struct {
	Path      string `json:"path"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}
