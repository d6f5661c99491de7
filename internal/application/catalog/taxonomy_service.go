package catalog

import (
	"context"
	"errors"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared"
)

// TagService handles tag operations
type TagService struct {
	tagRepo catalog.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo catalog.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// Create creates a new tag
func (s *TagService) Create(ctx context.Context, req CreateTagRequest) (*TagResponse, error) {
	tag, err := catalog.NewTag(req.Slug)
	if err != nil {
		return nil, err
	}

	if _, err := s.tagRepo.FindBySlug(ctx, tag.Slug); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}

	response := ToTagResponse(tag)
	return &response, nil
}

// Get retrieves a tag by slug
func (s *TagService) Get(ctx context.Context, slug string) (*TagResponse, error) {
	tag, err := s.tagRepo.FindBySlug(ctx, catalog.Capitalize(slug))
	if err != nil {
		return nil, err
	}
	response := ToTagResponse(tag)
	return &response, nil
}

// List retrieves tags with pagination
func (s *TagService) List(ctx context.Context, filter shared.Filter) ([]TagResponse, int64, error) {
	result, err := s.tagRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TagResponse, len(result.Items))
	for i := range result.Items {
		responses[i] = ToTagResponse(&result.Items[i])
	}
	return responses, result.Total, nil
}

// Delete removes a tag
func (s *TagService) Delete(ctx context.Context, slug string) error {
	slug = catalog.Capitalize(slug)
	if _, err := s.tagRepo.FindBySlug(ctx, slug); err != nil {
		return err
	}
	return s.tagRepo.Delete(ctx, slug)
}

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Slug, req.Description, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindBySlug(ctx, category.Slug); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if req.ParentSlug != nil {
		parent := catalog.Capitalize(*req.ParentSlug)
		if _, err := s.categoryRepo.FindBySlug(ctx, parent); err != nil {
			return nil, err
		}
		if err := category.SetParent(&parent); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Get retrieves a category by slug
func (s *CategoryService) Get(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, catalog.Capitalize(slug))
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves categories with pagination
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, int64, error) {
	result, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, len(result.Items))
	for i := range result.Items {
		responses[i] = ToCategoryResponse(&result.Items[i])
	}
	return responses, result.Total, nil
}

// Update updates a category's description, image and parent
func (s *CategoryService) Update(ctx context.Context, slug string, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, catalog.Capitalize(slug))
	if err != nil {
		return nil, err
	}

	description := category.Description
	imageURL := category.ImageURL
	if req.Description != nil {
		description = *req.Description
	}
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	if err := category.Update(description, imageURL); err != nil {
		return nil, err
	}

	if req.ParentSlug != nil {
		if *req.ParentSlug == "" {
			if err := category.SetParent(nil); err != nil {
				return nil, err
			}
		} else {
			parent := catalog.Capitalize(*req.ParentSlug)
			if _, err := s.categoryRepo.FindBySlug(ctx, parent); err != nil {
				return nil, err
			}
			if err := category.SetParent(&parent); err != nil {
				return nil, err
			}
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category, detaching its children first
func (s *CategoryService) Delete(ctx context.Context, slug string) error {
	slug = catalog.Capitalize(slug)
	if _, err := s.categoryRepo.FindBySlug(ctx, slug); err != nil {
		return err
	}

	children, err := s.categoryRepo.FindChildren(ctx, slug)
	if err != nil {
		return err
	}
	for i := range children {
		if err := children[i].SetParent(nil); err != nil {
			return err
		}
		if err := s.categoryRepo.Save(ctx, &children[i]); err != nil {
			return err
		}
	}

	return s.categoryRepo.Delete(ctx, slug)
}
