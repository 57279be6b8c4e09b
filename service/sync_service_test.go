package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distribuidora-backoffice/models"
)

// fakeDrive serves a fixed image listing
type fakeDrive struct {
	images  []models.ProductImageFile
	listErr error
	// onList runs before returning, used to simulate an overlapping sync
	onList func()
}

func (d *fakeDrive) ListProductImages(folderID string) ([]models.ProductImageFile, error) {
	if d.onList != nil {
		d.onList()
	}
	return d.images, d.listErr
}

func (d *fakeDrive) DownloadImage(fileID string) ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}

// fakeProductRepo implements the subset of product operations the sync needs
type fakeProductRepo struct {
	byCode       map[string]*models.Product
	linkedDrives map[string]bool
	setImages    []int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		byCode:       make(map[string]*models.Product),
		linkedDrives: make(map[string]bool),
	}
}

func (r *fakeProductRepo) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeProductRepo) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeProductRepo) GetByInternalCode(ctx context.Context, code string) (*models.Product, error) {
	p, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("product with internal code %s not found", code)
	}
	return p, nil
}

func (r *fakeProductRepo) Filter(ctx context.Context, params *models.ProductFilterParams, page, pageSize int) ([]models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeProductRepo) SetImage(ctx context.Context, id int64, driveFileID, imageURL string) error {
	r.setImages = append(r.setImages, id)
	r.linkedDrives[driveFileID] = true
	return nil
}

func (r *fakeProductRepo) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	return r.linkedDrives[driveFileID], nil
}

func TestSyncProductImages(t *testing.T) {
	repo := newFakeProductRepo()
	repo.byCode["HAR-000-1"] = &models.Product{ID: 1, InternalCode: "HAR-000-1"}
	repo.byCode["ACE15"] = &models.Product{ID: 2, InternalCode: "ACE15"}
	repo.linkedDrives["drive-already"] = true

	drive := &fakeDrive{images: []models.ProductImageFile{
		{DriveFileID: "drive-1", FileName: "HAR-000-1.png", InternalCode: "HAR-000-1", ImageURL: "https://drive.google.com/uc?id=drive-1"},
		{DriveFileID: "drive-already", FileName: "ACE15.png", InternalCode: "ACE15"},
		{DriveFileID: "drive-2", FileName: "XXX-404.png", InternalCode: "XXX-404"},
	}}

	s := NewSyncService(drive, repo)
	stats, err := s.SyncProductImages(context.Background(), "folder-1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Linked)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Unmatched)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, []int64{1}, repo.setImages)
}

func TestSyncProductImagesListFailure(t *testing.T) {
	drive := &fakeDrive{listErr: fmt.Errorf("drive unavailable")}
	s := NewSyncService(drive, newFakeProductRepo())

	_, err := s.SyncProductImages(context.Background(), "folder-1")
	assert.Error(t, err)
}

func TestSyncProductImagesSupersededRunIsDiscarded(t *testing.T) {
	repo := newFakeProductRepo()
	repo.byCode["HAR-000-1"] = &models.Product{ID: 1, InternalCode: "HAR-000-1"}

	drive := &fakeDrive{images: []models.ProductImageFile{
		{DriveFileID: "drive-1", FileName: "HAR-000-1.png", InternalCode: "HAR-000-1"},
	}}

	s := NewSyncService(drive, repo)

	// A newer sync starts while the first is still listing the folder
	drive.onList = func() {
		drive.onList = nil
		_, err := s.SyncProductImages(context.Background(), "folder-1")
		require.NoError(t, err)
	}

	_, err := s.SyncProductImages(context.Background(), "folder-1")
	assert.Error(t, err, "stale run must be discarded")
	// Only the newer run applied its result
	assert.Equal(t, []int64{1}, repo.setImages)
}
