package service

import "distribuidora-backoffice/models"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListProductImages(folderID string) ([]models.ProductImageFile, error)
	DownloadImage(fileID string) ([]byte, error)
}
