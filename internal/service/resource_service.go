package service

import (
	"context"

	"prepdeck/internal/domain"
	"prepdeck/internal/dto"
)

// ResourceService serves the read-only study resource catalog.
type ResourceService interface {
	List(ctx context.Context, filter domain.ResourceFilter) (*dto.ResourceListResponse, error)
}

type resourceServiceImpl struct {
	resourceRepo domain.ResourceRepository
}

// NewResourceService creates a new instance of ResourceService.
func NewResourceService(resourceRepo domain.ResourceRepository) ResourceService {
	return &resourceServiceImpl{resourceRepo: resourceRepo}
}

func (s *resourceServiceImpl) List(ctx context.Context, filter domain.ResourceFilter) (*dto.ResourceListResponse, error) {
	resources, err := s.resourceRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to list study resources", err)
	}

	resp := &dto.ResourceListResponse{Resources: make([]dto.ResourceResponse, len(resources))}
	for i, r := range resources {
		resp.Resources[i] = dto.NewResourceResponse(r)
	}
	return resp, nil
}
