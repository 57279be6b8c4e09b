package service

import (
	"context"
	"fmt"
	"log"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/repository"
	"distribuidora-backoffice/utils"
)

// SyncService links product images from Google Drive to products by their
// internal code. Syncs may overlap (a second one can be triggered while the
// first is still listing the folder); a Sequencer makes the last-started
// sync win, stale results are discarded.
type SyncService struct {
	driveService DriveServiceInterface
	productRepo  repository.ProductRepositoryInterface
	seq          utils.Sequencer
}

// NewSyncService creates a new SyncService
func NewSyncService(driveService DriveServiceInterface, productRepo repository.ProductRepositoryInterface) *SyncService {
	return &SyncService{
		driveService: driveService,
		productRepo:  productRepo,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncProductImages walks the Drive folder and attaches each image to the
// product whose internal code matches its filename.
// linked = images newly attached, skipped = already attached (by
// drive_file_id), unmatched = no product with that internal code,
// total = image files seen in Drive.
func (s *SyncService) SyncProductImages(ctx context.Context, folderID string) (*models.SyncStats, error) {
	seq := s.seq.Next()
	log.Printf("🔄 Starting product image sync for folder: %s", folderID)

	images, err := s.driveService.ListProductImages(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product images from Drive: %w", err)
	}

	if !s.seq.Accept(seq) {
		log.Printf("⚠️ Sync superseded by a newer run, discarding result for folder: %s", folderID)
		return nil, fmt.Errorf("sync superseded by a newer run")
	}

	log.Printf("📦 Processing %d product images from Google Drive", len(images))
	stats := &models.SyncStats{Total: len(images)}

	for _, image := range images {
		exists, err := s.productRepo.ExistsByDriveFileID(ctx, image.DriveFileID)
		if err != nil {
			log.Printf("❌ Error checking existence for drive_file_id %s: %v", image.DriveFileID, err)
			continue
		}
		if exists {
			stats.Skipped++
			continue
		}

		product, err := s.productRepo.GetByInternalCode(ctx, image.InternalCode)
		if err != nil {
			log.Printf("⚠️ No product with internal code %s (file %s)", image.InternalCode, image.FileName)
			stats.Unmatched++
			continue
		}

		if err := s.productRepo.SetImage(ctx, product.ID, image.DriveFileID, image.ImageURL); err != nil {
			log.Printf("❌ Error attaching image to product %d: %v", product.ID, err)
			continue
		}

		log.Printf("✓ Attached image %s to product %d (%s)", image.FileName, product.ID, product.InternalCode)
		stats.Linked++
	}

	log.Printf("🎉 Sync completed: %d linked, %d skipped, %d unmatched, %d total",
		stats.Linked, stats.Skipped, stats.Unmatched, stats.Total)
	return stats, nil
}
