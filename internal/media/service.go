package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Library is the read side the timeline engine depends on: resolve a source
// reference to its asset, or ErrNotFound.
type Library interface {
	Lookup(ctx context.Context, id string) (*Asset, error)
}

type LibraryService interface {
	Library
	Register(ctx context.Context, req RegisterRequest) (*Asset, error)
	Remove(ctx context.Context, id string) error
	Assets(ctx context.Context) ([]*Asset, error)
	Count(ctx context.Context) (int, error)
}

// RegisterRequest describes an asset being added by the upload UI. Duration
// comes from the caller; the agent does not probe media.
type RegisterRequest struct {
	Name         string
	Path         string
	ThumbnailURL string
	Duration     float64
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Asset, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	var size int64
	if req.Path != "" {
		info, err := os.Stat(req.Path)
		if err != nil {
			return nil, fmt.Errorf("media file not accessible: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("media path is a directory")
		}
		if !IsVideoFile(req.Path) {
			return nil, fmt.Errorf("unsupported media type")
		}
		size = info.Size()
	}

	asset := &Asset{
		ID:           NewID(),
		Name:         req.Name,
		Path:         req.Path,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
		Size:         size,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateAsset(ctx, asset); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("asset registered", "asset_id", asset.ID, "name", asset.Name, "duration", asset.Duration)
	}
	return asset, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.repo.DeleteAsset(ctx, id)
}

func (s *Service) Assets(ctx context.Context) ([]*Asset, error) {
	return s.repo.ListAssets(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.CountAssets(ctx)
}

// Lookup resolves an asset reference, returning ErrNotFound for unknown IDs
// so callers can distinguish a vanished asset from a storage failure.
func (s *Service) Lookup(ctx context.Context, id string) (*Asset, error) {
	asset, err := s.repo.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrNotFound
	}
	return asset, nil
}
