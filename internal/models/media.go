package models

// UploadedFile описывает файл, сохранённый вместе с заявкой.
type UploadedFile struct {
	FilePath     string `json:"file_path"`
	FileType     string `json:"file_type"`
	FileSize     int64  `json:"file_size"`
	OriginalName string `json:"original_name"`
}
