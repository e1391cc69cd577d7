package dto

// UploadResponse is returned after a file passes validation and is stored.
type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
	Size     int64  `json:"size"`
}
