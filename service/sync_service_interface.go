package service

import (
	"context"

	"distribuidora-backoffice/models"
)

// SyncServiceInterface defines the contract for product image synchronization
type SyncServiceInterface interface {
	SyncProductImages(ctx context.Context, folderID string) (*models.SyncStats, error)
}
