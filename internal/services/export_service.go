package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/saeid-a/BindingStudio/internal/models"
)

const (
	exportContentType = "application/json"

	// sharedObjectName is the object name of every shared export. The key
	// depends only on the profile id so renames never orphan an upload.
	sharedObjectName = "binding-profile.json"
)

// ExportFilename names the download for a profile. Path separators, quotes
// and control characters in the name are replaced so the result is safe in a
// Content-Disposition header and as an object key.
func ExportFilename(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		default:
			return r
		}
	}, name)
	return safe + "-binding-profile.json"
}

// ExportJSON is the full stored record, indented by two spaces.
func ExportJSON(profile *models.BindingProfile) ([]byte, error) {
	payload, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return payload, nil
}

type ExportService struct {
	storage ObjectStorage
}

// NewExportService accepts a nil storage; Share then reports ErrStorageUnavailable.
func NewExportService(storage ObjectStorage) *ExportService {
	return &ExportService{storage: storage}
}

func (s *ExportService) Export(profile *models.BindingProfile) (string, []byte, error) {
	payload, err := ExportJSON(profile)
	if err != nil {
		return "", nil, err
	}
	return ExportFilename(profile.Name), payload, nil
}

// Share uploads the export and returns a time-limited download link. The
// link asks storage to serve the file as <name>-binding-profile.json.
func (s *ExportService) Share(ctx context.Context, profile *models.BindingProfile) (string, error) {
	if s.storage == nil {
		return "", ErrStorageUnavailable
	}

	filename, payload, err := s.Export(profile)
	if err != nil {
		return "", err
	}

	objectURL, err := s.storage.UploadFile(ctx, bytes.NewReader(payload), sharedObjectName, exportFolder(profile.ID), exportContentType)
	if err != nil {
		return "", err
	}
	signed, err := s.storage.GetSignedURL(ctx, objectURL)
	if err != nil {
		return "", err
	}
	return withDownloadName(signed, filename)
}

// Unshare removes the shared export of the profile.
func (s *ExportService) Unshare(ctx context.Context, profile *models.BindingProfile) error {
	if s.storage == nil {
		return ErrStorageUnavailable
	}
	return s.storage.DeleteFile(ctx, s.storage.ObjectURL(exportFolder(profile.ID), sharedObjectName))
}

func withDownloadName(signedURL, filename string) (string, error) {
	parsed, err := url.Parse(signedURL)
	if err != nil {
		return "", fmt.Errorf("parse signed url: %w", err)
	}
	query := parsed.Query()
	query.Set("download", filename)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func exportFolder(id int64) string {
	return "exports/" + strconv.FormatInt(id, 10)
}
