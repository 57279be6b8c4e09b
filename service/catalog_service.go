package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/pricing"
	"distribuidora-backoffice/repository"
	"distribuidora-backoffice/utils"
)

// CatalogService generates the per-client price list catalog. Every product
// row shows the client's effective price after their best current discount.
type CatalogService struct {
	repository repository.CatalogRepositoryInterface
	clientRepo repository.ClientRepositoryInterface
	resolver   *pricing.Resolver
	baseURL    string // Base URL for image endpoints (e.g., "http://localhost:8080")
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	repo repository.CatalogRepositoryInterface,
	clientRepo repository.ClientRepositoryInterface,
	resolver *pricing.Resolver,
	baseURL string,
) *CatalogService {
	return &CatalogService{
		repository: repo,
		clientRepo: clientRepo,
		resolver:   resolver,
		baseURL:    baseURL,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GetClientCatalog returns the catalog items priced for a concrete client:
// the resolver fills in the discount and effective price per product.
func (s *CatalogService) GetClientCatalog(ctx context.Context, clientID int64) ([]models.CatalogItem, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	items, err := s.repository.GetCatalogItems(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		discount, err := s.resolver.Resolve(ctx, items[i].ID, clientID)
		if err != nil {
			// a failed lookup must not silently print list prices
			return nil, fmt.Errorf("discount lookup failed for product %d: %w", items[i].ID, err)
		}
		if discount == nil {
			continue
		}
		items[i].DiscountPercent = discount.Percentage
		items[i].EffectivePrice = items[i].ListPrice * (1 - discount.Percentage/100)
	}
	return items, nil
}

// fetchImageAsBase64 fetches an image from the image endpoint and converts it to base64
func (s *CatalogService) fetchImageAsBase64(imageURL string) (string, error) {
	var fullURL string
	if imageURL[0] == '/' {
		fullURL = s.baseURL + imageURL
	} else {
		fullURL = imageURL
	}

	resp, err := http.Get(fullURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	return base64.StdEncoding.EncodeToString(imageData), nil
}

// convertItemsToBase64 converts image URLs to base64 for all items
func (s *CatalogService) convertItemsToBase64(items []models.CatalogItem) {
	for i := range items {
		if items[i].ImageURL == "" {
			continue
		}
		encoded, err := s.fetchImageAsBase64(items[i].ImageURL)
		if err != nil {
			log.Printf("⚠️  Warning: Failed to fetch image for item %d: %v", items[i].ID, err)
			continue
		}
		items[i].ImageBase64 = encoded
	}
}

// paginateItems splits items into pages of 12 rows each
func paginateItems(items []models.CatalogItem) [][]models.CatalogItem {
	const itemsPerPage = 12
	var pages [][]models.CatalogItem

	for i := 0; i < len(items); i += itemsPerPage {
		end := i + itemsPerPage
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[i:end])
	}
	return pages
}

// RenderCatalogHTML renders the price list HTML for a client
func (s *CatalogService) RenderCatalogHTML(ctx context.Context, clientID int64, useBase64 bool) (string, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return "", err
	}

	items, err := s.GetClientCatalog(ctx, clientID)
	if err != nil {
		return "", err
	}

	// base64 only for direct HTML view, not for PDF rendering
	if useBase64 {
		s.convertItemsToBase64(items)
	}

	templateData := struct {
		ClientName  string
		GeneratedAt string
		Pages       [][]models.CatalogItem
	}{
		ClientName:  client.Name,
		GeneratedAt: time.Now().Format("02/01/2006"),
		Pages:       paginateItems(items),
	}

	templatePath := filepath.Join("templates", "catalog.html")
	tmpl, err := template.New("catalog.html").Funcs(template.FuncMap{
		"price": utils.FormatPrice,
	}).ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF renders the client price list through headless Chrome and
// prints it to an A4 PDF
func (s *CatalogService) GeneratePDF(ctx context.Context, clientID int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/admin/catalog/render?clientId=%d", s.baseURL, clientID)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 5000), // 210mm wide at 96 DPI, tall enough for all pages
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		// Wait for fonts and images to load
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete && img.naturalWidth > 0 && img.naturalHeight > 0) {
								resolve();
								return;
							}
							const timeout = setTimeout(() => resolve(), 5000);
							img.onload = () => { clearTimeout(timeout); resolve(); };
							img.onerror = () => { clearTimeout(timeout); resolve(); };
						});
					}))
				]);
			})();
		`, nil),
		chromedp.Sleep(time.Second), // final wait for layout
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait; page breaks come from CSS page-break-after
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdfBuf, nil
}
