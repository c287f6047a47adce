package storage

//go:generate mockgen -source=cloudinary.go -destination=mocks/mock_storage.go -package=mocks FileStorage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// FileStorage defines contract for the document storage provider (Cloudinary implementation).
type FileStorage interface {
	// Upload stores the file read from r and returns its secure URL.
	// folder is the logical folder in storage (e.g. "magang/cv").
	Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// Delete removes a file previously returned by Upload.
	Delete(ctx context.Context, fileURL string) error
}

type cloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage creates the Cloudinary-backed FileStorage. With an
// empty cloudinaryURL the SDK reads CLOUDINARY_URL from the environment.
func NewCloudinaryStorage(cloudinaryURL, cloudName string) (FileStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	} else {
		cld, err = cloudinary.New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	// Ensure HTTPS URLs by default.
	cld.Config.URL.Secure = true

	if cloudName != "" {
		cld.Config.Cloud.CloudName = cloudName
	}

	return &cloudinaryStorage{cld: cld}, nil
}

// Upload uploads the file as a raw resource so PDFs are served untouched.
func (s *cloudinaryStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if s == nil || s.cld == nil {
		return "", fmt.Errorf("cloudinary storage is not initialized")
	}

	// raw public ids keep their extension
	publicID := fmt.Sprintf("%s-%s", uuid.NewString(), sanitizeFileName(fileName))

	params := uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "raw",
		Overwrite:    api.Bool(false),
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, fileURL string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	resourceType, publicID := publicIDFromURL(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	// Invalidate: true helps to clear CDN cache
	params := uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
		Invalidate:   api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete file from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

// publicIDFromURL extracts resource type and public ID from a delivery URL.
// https://res.cloudinary.com/demo/raw/upload/v123/magang/cv/abc-cv.pdf -> raw, magang/cv/abc-cv.pdf
// https://res.cloudinary.com/demo/image/upload/v123/folder/sample.jpg -> image, folder/sample
func publicIDFromURL(fileURL string) (string, string) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", ""
	}

	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}

	if uploadIndex < 1 || uploadIndex+1 >= len(parts) {
		return "", ""
	}
	resourceType := parts[uploadIndex-1]

	relevantParts := parts[uploadIndex+1:]
	if len(relevantParts) > 1 && isVersionSegment(relevantParts[0]) {
		relevantParts = relevantParts[1:]
	}

	publicID := strings.Join(relevantParts, "/")
	if publicID == "" {
		return "", ""
	}

	if resourceType != "raw" {
		publicID = strings.TrimSuffix(publicID, filepath.Ext(publicID))
	}
	return resourceType, publicID
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
