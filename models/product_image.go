package models

// ProductImageFile represents an image file found in the Drive product
// images folder, with the internal code parsed from its filename
type ProductImageFile struct {
	DriveFileID  string `json:"driveFileId"`
	FileName     string `json:"fileName"`
	InternalCode string `json:"internalCode"`
	ImageURL     string `json:"imageUrl"`
}

// SyncStats summarizes a product image synchronization run
// Example response: {"linked": 12, "skipped": 80, "unmatched": 3, "total": 95}
type SyncStats struct {
	Linked    int `json:"linked"`
	Skipped   int `json:"skipped"`
	Unmatched int `json:"unmatched"`
	Total     int `json:"total"`
}
