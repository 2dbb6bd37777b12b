package service

import (
	"strings"

	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	Slug     string
	Title    string
	Category string
	Price    models.Money
	IsActive *bool
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   normalizeSlug(category),
		Search:     strings.TrimSpace(search),
		OnlyActive: true,
	})
}

// GetPublicBySlug 获取公开商品详情
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(normalizeSlug(slug))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: normalizeSlug(category),
		Search:   strings.TrimSpace(search),
	})
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	slug := normalizeSlug(input.Slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}
	if input.Price.IsNegative() {
		return nil, ErrProductPriceInvalid
	}
	count, err := s.repo.CountBySlug(slug)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	title := sanitizePlainText(input.Title)
	if title == "" {
		title = slug
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	product := models.Product{
		Slug:     slug,
		Title:    title,
		Category: normalizeSlug(input.Category),
		Price:    models.NewMoneyFromDecimal(input.Price.Decimal),
		IsActive: isActive,
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}
