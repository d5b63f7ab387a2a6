package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service      usecase.CatalogUsecase
	txManager    *mockRepo.MockTransactionManager
	productRepo  *mockRepo.MockProductRepository
	categoryRepo *mockRepo.MockCategoryRepository
	brandRepo    *mockRepo.MockBrandRepository
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	brandRepo := mockRepo.NewMockBrandRepository(t)

	service := NewCatalogService(CatalogServiceParams{
		TxManager:    txManager,
		ProductRepo:  productRepo,
		CategoryRepo: categoryRepo,
		BrandRepo:    brandRepo,
		Logger:       newDiscardLogger(),
	})

	return catalogServiceFixtures{
		service:      service,
		txManager:    txManager,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

func TestCatalogService_CreateProduct_SeedsInitialStock(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()
	variantPrice := 29.9
	variantSKU := "SKU-MOUSE-01-BLK"
	input := usecase.CreateProductInput{
		Name:         "Wireless Mouse",
		Price:        29.9,
		SKU:          "SKU-MOUSE-01",
		CategoryID:   uuid.New(),
		IsActive:     true,
		InitialStock: 10,
		Images: []usecase.ProductImageInput{
			{URL: "https://cdn.example.com/mouse.jpg", IsMain: true},
		},
		Variants: []usecase.ProductVariantInput{
			{Name: "color", Value: "black", Price: &variantPrice, SKU: &variantSKU},
		},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockInventoryRepo := mockRepo.NewMockInventoryRepository(t)

			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)
			mockFactory.EXPECT().NewInventoryRepository().Return(mockInventoryRepo)

			mockProductRepo.EXPECT().
				FindBySKU(ctx, "SKU-MOUSE-01").
				Return(nil, repository.ErrProductNotFound)

			mockProductRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Product")).
				Run(func(ctx context.Context, product *entity.Product) {
					product.ID = productID
				}).
				Return(nil)

			mockInventoryRepo.EXPECT().
				UpsertQuantity(ctx, productID, 10).
				Return(&entity.Inventory{ProductID: productID, Quantity: 10}, nil)

			return fn(mockFactory)
		})

	product, err := fx.service.CreateProduct(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, productID, product.ID)
	assert.Len(t, product.Images, 1)
	assert.Len(t, product.Variants, 1)
	assert.True(t, product.Images[0].IsMain)
	require.NotNil(t, product.Variants[0].SKU)
	assert.Equal(t, "SKU-MOUSE-01-BLK", *product.Variants[0].SKU)
}

func TestCatalogService_CreateProduct_DuplicateSKU(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

			mockProductRepo.EXPECT().
				FindBySKU(ctx, "SKU-TAKEN").
				Return(&entity.Product{ID: uuid.New(), SKU: "SKU-TAKEN"}, nil)

			return fn(mockFactory)
		})

	product, err := fx.service.CreateProduct(ctx, usecase.CreateProductInput{SKU: "SKU-TAKEN"})

	require.Error(t, err)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, domainerrors.ErrSKUAlreadyExists)
}

func TestCatalogService_BulkImportProducts_SkipsDuplicatesInOneTransaction(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	mockProductRepo := mockRepo.NewMockProductRepository(t)

	mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

	mockProductRepo.EXPECT().
		FindBySKU(ctx, mock.AnythingOfType("string")).
		RunAndReturn(func(ctx context.Context, sku string) (*entity.Product, error) {
			if sku == "SKU-DUP" {
				return &entity.Product{ID: uuid.New(), SKU: sku}, nil
			}

			return nil, repository.ErrProductNotFound
		})

	mockProductRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Return(nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(mockFactory)
		}).
		Once()

	output, err := fx.service.BulkImportProducts(ctx, []usecase.CreateProductInput{
		{SKU: "SKU-OK"},
		{SKU: "SKU-DUP"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Created)
	assert.Equal(t, 1, output.Skipped)
	// The whole batch shares a single transaction.
	fx.txManager.AssertNumberOfCalls(t, "Execute", 1)
}

func TestCatalogService_BulkImportProducts_RowFailureAbortsBatch(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	mockProductRepo := mockRepo.NewMockProductRepository(t)

	mockFactory.EXPECT().NewProductRepository().Return(mockProductRepo)

	mockProductRepo.EXPECT().
		FindBySKU(ctx, mock.AnythingOfType("string")).
		Return(nil, repository.ErrProductNotFound)

	// The first row inserts, the second fails; the returned error must
	// surface through Execute so the transaction rolls both rows back.
	mockProductRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		RunAndReturn(func(ctx context.Context, product *entity.Product) error {
			if product.SKU == "SKU-BAD" {
				return errors.New("insert failed")
			}

			return nil
		})

	var txErr error
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			txErr = fn(mockFactory)

			return txErr
		}).
		Once()

	output, err := fx.service.BulkImportProducts(ctx, []usecase.CreateProductInput{
		{SKU: "SKU-OK"},
		{SKU: "SKU-BAD"},
	})

	require.Error(t, err)
	assert.Nil(t, output)
	// The closure reported the row failure to the transaction manager, which
	// is what triggers the rollback.
	require.Error(t, txErr)
	assert.Contains(t, txErr.Error(), "SKU-BAD")
	fx.txManager.AssertNumberOfCalls(t, "Execute", 1)
}

func TestCatalogService_ListProducts_TranslatesPagination(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	fx.productRepo.EXPECT().
		List(ctx, mock.AnythingOfType("repository.ProductListFilter")).
		RunAndReturn(func(ctx context.Context, filter repository.ProductListFilter) ([]*entity.Product, int64, error) {
			assert.Equal(t, 10, filter.Offset)
			assert.Equal(t, 10, filter.Limit)
			assert.True(t, filter.ActiveOnly)

			return []*entity.Product{{ID: uuid.New()}}, 11, nil
		})

	output, err := fx.service.ListProducts(ctx, usecase.ListProductsInput{Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, output.Products, 1)
	assert.Equal(t, int64(11), output.Total)
}

func TestCatalogService_UpdateProduct_ReplacesImagesWholesale(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()
	newPrice := 39.9

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(&entity.Product{
			ID:    productID,
			Name:  "Wireless Mouse",
			Price: 29.9,
			Images: []*entity.ProductImage{
				{ProductID: productID, URL: "https://cdn.example.com/old.jpg"},
			},
		}, nil)

	fx.productRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Product")).
		Return(nil)

	product, err := fx.service.UpdateProduct(ctx, productID, usecase.UpdateProductInput{
		Price: &newPrice,
		Images: []usecase.ProductImageInput{
			{URL: "https://cdn.example.com/new-front.jpg", IsMain: true},
			{URL: "https://cdn.example.com/new-side.jpg", SortOrder: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 39.9, product.Price)
	// Name pointer was nil, so the original value survives.
	assert.Equal(t, "Wireless Mouse", product.Name)
	require.Len(t, product.Images, 2)
	assert.Equal(t, "https://cdn.example.com/new-front.jpg", product.Images[0].URL)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	product, err := fx.service.GetProduct(ctx, productID)

	require.Error(t, err)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_UpdateCategory_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	categoryID := uuid.New()

	fx.categoryRepo.EXPECT().
		FindByID(ctx, categoryID).
		Return(nil, repository.ErrCategoryNotFound)

	category, err := fx.service.UpdateCategory(ctx, categoryID, usecase.CreateCategoryInput{Name: "Gadgets"})

	require.Error(t, err)
	assert.Nil(t, category)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_CreateBrand(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	fx.brandRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Brand")).
		Run(func(ctx context.Context, brand *entity.Brand) {
			brand.ID = uuid.New()
		}).
		Return(nil)

	brand, err := fx.service.CreateBrand(ctx, usecase.CreateBrandInput{
		Name:    "Logitech",
		LogoURL: "https://cdn.example.com/logitech.png",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, brand.ID)
	assert.Equal(t, "Logitech", brand.Name)
}
