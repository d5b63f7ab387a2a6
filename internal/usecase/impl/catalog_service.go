package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultPageSize = 20

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	BrandRepo    repository.BrandRepository
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:    params.TxManager,
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		brandRepo:    params.BrandRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProduct retrieves a product with its associations.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	// Single query operation - use direct repository instance
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product does not exist")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// ListProducts retrieves a page of products matching the filter.
func (srv *catalogService) ListProducts(ctx context.Context, input usecase.ListProductsInput) (*usecase.ProductListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}

	filter := repository.ProductListFilter{
		CategoryID: input.CategoryID,
		BrandID:    input.BrandID,
		Search:     input.Search,
		Featured:   input.Featured,
		ActiveOnly: !input.IncludeAll,
		MinPrice:   input.MinPrice,
		MaxPrice:   input.MaxPrice,
		Offset:     (page - 1) * limit,
		Limit:      limit,
	}

	products, total, err := srv.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return &usecase.ProductListOutput{Products: products, Total: total}, nil
}

// CreateProduct creates a product, optionally seeding an inventory row.
func (srv *catalogService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.String("sku", input.SKU))

	var created *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		if _, err := productRepo.FindBySKU(ctx, input.SKU); err == nil {
			return errors.Wrap(domainerrors.ErrSKUAlreadyExists, "sku already registered")
		} else if !errors.Is(err, repository.ErrProductNotFound) {
			return errors.Wrap(err, "failed to check sku uniqueness")
		}

		product := buildProductEntity(input)
		if err := productRepo.Create(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		if input.InitialStock > 0 {
			if _, err := repoFactory.NewInventoryRepository().UpsertQuantity(ctx, product.ID, input.InitialStock); err != nil {
				return errors.Wrap(err, "failed to seed initial stock")
			}
		}

		created = product

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create product", slog.String("sku", input.SKU), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute product creation transaction")
	}

	return created, nil
}

func buildProductEntity(input usecase.CreateProductInput) *entity.Product {
	product := &entity.Product{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		SKU:          input.SKU,
		Barcode:      input.Barcode,
		CategoryID:   input.CategoryID,
		BrandID:      input.BrandID,
		IsActive:     input.IsActive,
		IsFeatured:   input.IsFeatured,
	}

	for _, img := range input.Images {
		product.Images = append(product.Images, &entity.ProductImage{
			URL:       img.URL,
			IsMain:    img.IsMain,
			SortOrder: img.SortOrder,
		})
	}
	for _, v := range input.Variants {
		product.Variants = append(product.Variants, &entity.ProductVariant{
			Name:  v.Name,
			Value: v.Value,
			Price: v.Price,
			SKU:   v.SKU,
		})
	}

	return product
}

// UpdateProduct modifies a product. Nil input pointers leave the current
// values untouched; non-nil image/variant slices replace wholesale.
func (srv *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Updating product", slog.Any("productID", id))

	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product does not exist")
		}

		return nil, errors.Wrap(err, "failed to load product for update")
	}

	applyProductUpdate(product, input)

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

func applyProductUpdate(product *entity.Product, input usecase.UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ComparePrice != nil {
		product.ComparePrice = input.ComparePrice
	}
	if input.Barcode != nil {
		product.Barcode = *input.Barcode
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.BrandID != nil {
		product.BrandID = input.BrandID
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	if input.Images != nil {
		product.Images = nil
		for _, img := range input.Images {
			product.Images = append(product.Images, &entity.ProductImage{
				ProductID: product.ID,
				URL:       img.URL,
				IsMain:    img.IsMain,
				SortOrder: img.SortOrder,
			})
		}
	}
	if input.Variants != nil {
		product.Variants = nil
		for _, v := range input.Variants {
			product.Variants = append(product.Variants, &entity.ProductVariant{
				ProductID: product.ID,
				Name:      v.Name,
				Value:     v.Value,
				Price:     v.Price,
				SKU:       v.SKU,
			})
		}
	}
}

// DeleteProduct removes a product and its owned rows.
func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting product", slog.Any("productID", id))

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return errors.Wrap(domainerrors.ErrProductNotFound, "product does not exist")
		}

		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// BulkImportProducts creates products in bulk inside one transaction. Rows
// whose SKU already exists are skipped; any other row failure rolls back the
// entire batch.
func (srv *catalogService) BulkImportProducts(ctx context.Context, inputs []usecase.CreateProductInput) (*usecase.BulkImportOutput, error) {
	srv.log(ctx).Info("Bulk importing products", slog.Int("rows", len(inputs)))

	output := &usecase.BulkImportOutput{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		for i, input := range inputs {
			if _, err := productRepo.FindBySKU(ctx, input.SKU); err == nil {
				output.Skipped++

				continue
			} else if !errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrapf(err, "row %d (%s): failed to check sku uniqueness", i+1, input.SKU)
			}

			product := buildProductEntity(input)
			if err := productRepo.Create(ctx, product); err != nil {
				return errors.Wrapf(err, "row %d (%s): failed to create product", i+1, input.SKU)
			}

			if input.InitialStock > 0 {
				if _, err := repoFactory.NewInventoryRepository().UpsertQuantity(ctx, product.ID, input.InitialStock); err != nil {
					return errors.Wrapf(err, "row %d (%s): failed to seed initial stock", i+1, input.SKU)
				}
			}

			output.Created++
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Bulk import rolled back", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute bulk import transaction")
	}

	srv.log(ctx).Info("Bulk import committed",
		slog.Int("created", output.Created),
		slog.Int("skipped", output.Skipped))

	return output, nil
}

// --- Category taxonomy ---

func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *catalogService) CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*entity.Category, error) {
	category := &entity.Category{
		Name:        input.Name,
		Description: input.Description,
		ParentID:    input.ParentID,
	}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	return category, nil
}

func (srv *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input usecase.CreateCategoryInput) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "category does not exist")
		}

		return nil, errors.Wrap(err, "failed to load category")
	}

	category.Name = input.Name
	category.Description = input.Description
	category.ParentID = input.ParentID

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	return category, nil
}

func (srv *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "category does not exist")
		}

		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}

// --- Brand taxonomy ---

func (srv *catalogService) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	brands, err := srv.brandRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list brands")
	}

	return brands, nil
}

func (srv *catalogService) CreateBrand(ctx context.Context, input usecase.CreateBrandInput) (*entity.Brand, error) {
	brand := &entity.Brand{
		Name:    input.Name,
		LogoURL: input.LogoURL,
	}
	if err := srv.brandRepo.Create(ctx, brand); err != nil {
		return nil, errors.Wrap(err, "failed to create brand")
	}

	return brand, nil
}

func (srv *catalogService) UpdateBrand(ctx context.Context, id uuid.UUID, input usecase.CreateBrandInput) (*entity.Brand, error) {
	brand, err := srv.brandRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "brand does not exist")
		}

		return nil, errors.Wrap(err, "failed to load brand")
	}

	brand.Name = input.Name
	brand.LogoURL = input.LogoURL

	if err := srv.brandRepo.Update(ctx, brand); err != nil {
		return nil, errors.Wrap(err, "failed to update brand")
	}

	return brand, nil
}

func (srv *catalogService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	if err := srv.brandRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "brand does not exist")
		}

		return errors.Wrap(err, "failed to delete brand")
	}

	return nil
}
