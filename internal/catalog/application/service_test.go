package application

import (
	"context"
	"testing"

	"github.com/wyfcoding/marketplace/internal/catalog/domain"

	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product)}
}

func (f *fakeProductRepo) Save(_ context.Context, p *domain.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(_ context.Context, _ domain.ProductFilter) ([]*domain.Product, int64, error) {
	var out []*domain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) ListByShop(_ context.Context, shopID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range f.products {
		if p.ShopID == shopID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

type fakeShopRepo struct {
	shops map[string]*domain.Shop
}

func newFakeShopRepo(shops ...*domain.Shop) *fakeShopRepo {
	repo := &fakeShopRepo{shops: make(map[string]*domain.Shop)}
	for _, shop := range shops {
		repo.shops[shop.ID] = shop
	}
	return repo
}

func (f *fakeShopRepo) Save(_ context.Context, shop *domain.Shop) error {
	f.shops[shop.ID] = shop
	return nil
}

func (f *fakeShopRepo) GetByID(_ context.Context, id string) (*domain.Shop, error) {
	shop, ok := f.shops[id]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	return shop, nil
}

func (f *fakeShopRepo) GetByOwner(_ context.Context, ownerID string) (*domain.Shop, error) {
	for _, shop := range f.shops {
		if shop.OwnerID == ownerID {
			return shop, nil
		}
	}
	return nil, domain.ErrShopNotFound
}

func (f *fakeShopRepo) List(_ context.Context, _ domain.ShopFilter) ([]*domain.Shop, int64, error) {
	var out []*domain.Shop
	for _, shop := range f.shops {
		out = append(out, shop)
	}
	return out, int64(len(out)), nil
}

func (f *fakeShopRepo) ListTrending(_ context.Context, limit int) ([]*domain.Shop, error) {
	out, _, _ := f.List(context.Background(), domain.ShopFilter{})
	domain.SortTrending(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeWriter struct {
	calls int
	text  string
}

func (f *fakeWriter) Describe(context.Context, string) string {
	f.calls++
	return f.text
}

type fakeMirror struct {
	saves int
}

func (f *fakeMirror) SaveCatalog(context.Context, []*domain.Shop, []*domain.Product) { f.saves++ }

func approvedShop(ownerID string) *domain.Shop {
	return &domain.Shop{ID: "shop-1", OwnerID: ownerID, Name: "Khan Traders", Status: domain.ShopStatusApproved}
}

func TestCreateProductGeneratesDescription(t *testing.T) {
	writer := &fakeWriter{text: "Hand-stitched cotton kurta."}
	mirror := &fakeMirror{}
	svc := NewService(newFakeProductRepo(), newFakeShopRepo(approvedShop("seller-1")), writer, mirror)

	product, err := svc.CreateProduct(context.Background(), "seller-1", CreateProductInput{
		Name:                "Cotton Kurta",
		Price:               1000,
		Category:            "Clothing",
		GenerateDescription: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Hand-stitched cotton kurta.", product.Description)
	require.Equal(t, 1, writer.calls)
	require.Equal(t, 1, mirror.saves)
}

func TestCreateProductKeepsProvidedDescription(t *testing.T) {
	writer := &fakeWriter{text: "generated"}
	svc := NewService(newFakeProductRepo(), newFakeShopRepo(approvedShop("seller-1")), writer, &fakeMirror{})

	product, err := svc.CreateProduct(context.Background(), "seller-1", CreateProductInput{
		Name:        "Cotton Kurta",
		Description: "Plain cotton kurta.",
		Price:       1000,
	})
	require.NoError(t, err)
	require.Equal(t, "Plain cotton kurta.", product.Description)
	require.Zero(t, writer.calls)
}

func TestCreateProductRequiresApprovedShop(t *testing.T) {
	shop := approvedShop("seller-1")
	shop.Status = domain.ShopStatusPending
	svc := NewService(newFakeProductRepo(), newFakeShopRepo(shop), &fakeWriter{}, &fakeMirror{})

	_, err := svc.CreateProduct(context.Background(), "seller-1", CreateProductInput{Name: "Pot", Price: 100})
	require.Error(t, err)
}

func TestCreateShopStartsPending(t *testing.T) {
	mirror := &fakeMirror{}
	svc := NewService(newFakeProductRepo(), newFakeShopRepo(), &fakeWriter{}, mirror)

	shop, err := svc.CreateShop(context.Background(), "seller-2", CreateShopInput{Name: "New Shop"})
	require.NoError(t, err)
	require.Equal(t, domain.ShopStatusPending, shop.Status)
	require.Equal(t, 1, mirror.saves)
}

func TestEnsureSeededOnlyWhenEmpty(t *testing.T) {
	products := newFakeProductRepo()
	shops := newFakeShopRepo()
	svc := NewService(products, shops, &fakeWriter{}, &fakeMirror{})

	require.NoError(t, svc.EnsureSeeded(context.Background(), nil, nil))
	require.NotEmpty(t, shops.shops)
	require.NotEmpty(t, products.products)

	before := len(shops.shops)
	// 目录非空时不再重复写入种子
	require.NoError(t, svc.EnsureSeeded(context.Background(), nil, nil))
	require.Len(t, shops.shops, before)
}

func TestDeleteProductOwnershipCheck(t *testing.T) {
	products := newFakeProductRepo()
	_ = products.Save(context.Background(), &domain.Product{ID: "p-1", ShopID: "shop-other", Name: "Pot", Price: 100})
	svc := NewService(products, newFakeShopRepo(approvedShop("seller-1")), &fakeWriter{}, &fakeMirror{})

	err := svc.DeleteProduct(context.Background(), "seller-1", "p-1")
	require.Error(t, err)
}
