package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/storage"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
)

// ImageService caches one generated photo per product per session.
type ImageService interface {
	Generate(ctx context.Context, sessionID, productID string) (*model.GeneratedImage, error)
	List(ctx context.Context, sessionID string) ([]model.GeneratedImage, error)
}

type imageService struct {
	sessions       SessionService
	productService ProductService
	ai             AIService
	store          storage.ImageStore
}

func NewImageService(sessions SessionService, productService ProductService, ai AIService, store storage.ImageStore) ImageService {
	if store == nil {
		store = storage.NewDataURIStore()
	}
	return &imageService{
		sessions:       sessions,
		productService: productService,
		ai:             ai,
		store:          store,
	}
}

// Generate renders a new photo and replaces the cached one. On any failure
// the previous photo stays.
func (s *imageService) Generate(ctx context.Context, sessionID, productID string) (*model.GeneratedImage, error) {
	product, err := s.productService.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if !s.ai.Enabled() {
		return nil, ErrAIDisabled
	}

	release, err := s.sessions.Acquire(ctx, "image:"+sessionID+":"+productID)
	if err != nil {
		return nil, err
	}
	defer release()

	started := time.Now()
	image, err := s.ai.GenerateImage(ctx, model.GenerationConfigFor(*product))
	if err != nil {
		return nil, err
	}

	url, err := s.store.Save(ctx, productID, image.Data, image.MIMEType)
	if err != nil {
		logger.Error("Failed to store generated image", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return nil, fmt.Errorf("failed to store generated image: %w", err)
	}

	_, err = s.sessions.Update(context.WithoutCancel(ctx), sessionID, func(session *model.Session) error {
		session.SetImage(productID, url)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Product image generated", map[string]interface{}{
		"session_id":  sessionID,
		"product_id":  productID,
		"bytes":       len(image.Data),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return &model.GeneratedImage{ProductID: productID, URL: url}, nil
}

// List returns the cached photos ordered by product id.
func (s *imageService) List(ctx context.Context, sessionID string) ([]model.GeneratedImage, error) {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	images := make([]model.GeneratedImage, 0, len(session.Images))
	for productID, url := range session.Images {
		images = append(images, model.GeneratedImage{ProductID: productID, URL: url})
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].ProductID < images[j].ProductID
	})
	return images, nil
}
