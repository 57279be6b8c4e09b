package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/utils"
)

// DriveService handles Google Drive API operations for the product image
// folder
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(credentialsPath string) (*DriveService, error) {
	ctx := context.Background()

	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{client: driveService}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// ListProductImages lists the image files in a Drive folder and parses
// each filename into a product internal code. Files whose name does not
// follow the INTERNALCODE.(png|jpg|jpeg) pattern are skipped.
func (ds *DriveService) ListProductImages(folderID string) ([]models.ProductImageFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	imageMimeTypes := map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
	}

	var images []models.ProductImageFile
	for _, file := range allFiles {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}

		internalCode, err := utils.ParseImageFileName(file.Name)
		if err != nil {
			log.Printf("warning: failed to parse filename %s: %v", file.Name, err)
			continue
		}

		images = append(images, models.ProductImageFile{
			DriveFileID:  file.Id,
			FileName:     file.Name,
			InternalCode: internalCode,
			ImageURL:     fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id),
		})
	}

	return images, nil
}

// DownloadImage downloads the raw bytes of a Drive file
func (ds *DriveService) DownloadImage(fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}
