package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

const (
	latestProductsLimit     = 5
	DefaultProductsPageSize = 8
)

const (
	msgProvidePhoto  = "Please provide a photo for this product."
	msgProvideFields = "Please provide all required fields."
)

// PhotoRemover deletes a stored product photo. Removing a missing file is not an error.
type PhotoRemover interface {
	Remove(path string) error
}

type ProductInput struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"required"`
	Description string  `validate:"required"`
	Stock       int     `validate:"required"`
	Category    string  `validate:"required"`
	Photo       string
}

type SearchParams struct {
	Search   string
	Category string
	MaxPrice float64
	Sort     string
	Page     int
}

type SearchResult struct {
	Products      []model.Product `json:"products"`
	TotalPage     int64           `json:"totalPage"`
	CurrentPage   int             `json:"currentPage"`
	TotalProducts int64           `json:"totalProducts"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error)
	LatestProducts(ctx context.Context) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	AdminProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, params SearchParams) (*SearchResult, error)
}

func NewProductService(
	repo model.ProductRepository,
	cache Cache,
	photos PhotoRemover,
	dispatcher domain.EventDispatcher,
	pageSize int,
) ProductService {
	if pageSize <= 0 {
		pageSize = DefaultProductsPageSize
	}
	return &productService{
		repo:        repo,
		codec:       NewCacheCodec(cache),
		invalidator: NewCacheInvalidator(cache),
		photos:      photos,
		dispatcher:  dispatcher,
		validate:    validator.New(),
		pageSize:    pageSize,
	}
}

type productService struct {
	repo        model.ProductRepository
	codec       *CacheCodec
	invalidator CacheInvalidator
	photos      PhotoRemover
	dispatcher  domain.EventDispatcher
	validate    *validator.Validate
	pageSize    int
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	if input.Photo == "" {
		return nil, model.NewValidationError(msgProvidePhoto)
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, model.NewValidationError(msgProvideFields)
	}

	productID, err := model.NewID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:          productID,
		Name:        input.Name,
		Photo:       input.Photo,
		Price:       input.Price,
		Description: input.Description,
		Stock:       input.Stock,
		Category:    strings.ToLower(input.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	if err := s.invalidator.Invalidate(Invalidation{Product: true, Admin: true}); err != nil {
		return nil, err
	}

	dispatch(s.dispatcher, model.ProductCreated{ProductID: productID, Name: product.Name, Category: product.Category})
	return product, nil
}

func (s *productService) LatestProducts(ctx context.Context) ([]model.Product, error) {
	return s.cachedList(ctx, KeyLatestProducts, model.Query{Sort: model.NewestFirst(), Limit: latestProductsLimit})
}

func (s *productService) AdminProducts(ctx context.Context) ([]model.Product, error) {
	return s.cachedList(ctx, KeyAdminProducts, model.Query{Sort: model.NewestFirst()})
}

func (s *productService) cachedList(ctx context.Context, key string, query model.Query) ([]model.Product, error) {
	var products []model.Product
	if s.codec.Load(key, &products) {
		return products, nil
	}

	products, err := s.repo.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	s.codec.Store(key, products)
	return products, nil
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if s.codec.Load(KeyCategories, &categories) {
		return categories, nil
	}

	categories, err := s.repo.Distinct(ctx, model.FieldCategory, nil)
	if err != nil {
		return nil, err
	}

	s.codec.Store(KeyCategories, categories)
	return categories, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}

	key := ProductKey(id)
	product := &model.Product{}
	if s.codec.Load(key, product) {
		return product, nil
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.codec.Store(key, product)
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*model.Product, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPhoto := product.Photo
	if input.Photo != "" {
		product.Photo = input.Photo
	}
	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Price != 0 {
		product.Price = input.Price
	}
	if input.Stock != 0 {
		product.Stock = input.Stock
	}
	if input.Category != "" {
		product.Category = strings.ToLower(input.Category)
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	if input.Photo != "" && oldPhoto != "" && oldPhoto != input.Photo {
		s.removePhoto(oldPhoto)
	}

	if err := s.invalidator.Invalidate(Invalidation{Product: true, Admin: true, ProductIDs: []string{id}}); err != nil {
		return nil, err
	}

	dispatch(s.dispatcher, model.ProductUpdated{ProductID: id})
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if err := model.ValidateID(id); err != nil {
		return err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.removePhoto(product.Photo)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.invalidator.Invalidate(Invalidation{Product: true, Admin: true, ProductIDs: []string{id}}); err != nil {
		return err
	}

	dispatch(s.dispatcher, model.ProductDeleted{ProductID: id})
	return nil
}

func (s *productService) SearchProducts(ctx context.Context, params SearchParams) (*SearchResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := int64(s.pageSize)

	builder := model.NewFilter()
	if params.Search != "" {
		builder.ContainsFold(model.FieldName, params.Search)
	}
	if params.Category != "" {
		builder.Eq(model.FieldCategory, params.Category)
	}
	if params.MaxPrice != 0 {
		builder.Lte(model.FieldPrice, params.MaxPrice)
	}
	filter := builder.Build()

	query := model.Query{Filter: filter, Skip: int64(page-1) * limit, Limit: limit}
	if params.Sort != "" {
		order := model.Descending
		if params.Sort == "asc" {
			order = model.Ascending
		}
		query.Sort = &model.Sort{Field: model.FieldPrice, Order: order}
	}

	products, err := s.repo.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Products:      products,
		TotalPage:     int64(math.Ceil(float64(total) / float64(limit))),
		CurrentPage:   page,
		TotalProducts: total,
	}, nil
}

func (s *productService) removePhoto(path string) {
	if path == "" {
		return
	}
	if err := s.photos.Remove(path); err != nil {
		log.WithError(err).WithField("photo", path).Warn("failed to remove product photo")
	}
}
