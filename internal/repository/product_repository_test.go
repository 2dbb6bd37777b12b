package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/templatehub/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) *GormProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	return NewProductRepository(db)
}

func createRepoProduct(t *testing.T, repo *GormProductRepository, slug, category string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:     slug,
		Title:    "Theme " + slug,
		Category: category,
		Price:    models.MustMoney("19.90"),
		IsActive: active,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductRepositoryListFilters(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	createRepoProduct(t, repo, "saas-landing", "landing", true)
	createRepoProduct(t, repo, "agency-landing", "landing", false)
	createRepoProduct(t, repo, "minimal-blog", "blog", true)

	rows, total, err := repo.List(ProductListFilter{OnlyActive: true})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("active products want 2 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.List(ProductListFilter{Category: "landing"})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("landing products want 2 got %d", total)
	}

	rows, total, err = repo.List(ProductListFilter{Search: "blog", OnlyActive: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || rows[0].Slug != "minimal-blog" {
		t.Fatalf("search want minimal-blog got total=%d rows=%v", total, rows)
	}

	rows, total, err = repo.List(ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 3 || len(rows) != 1 {
		t.Fatalf("page 2 want 1 row of 3 got total=%d len=%d", total, len(rows))
	}
}

func TestProductRepositoryLookups(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	createRepoProduct(t, repo, "saas-landing", "landing", true)
	createRepoProduct(t, repo, "minimal-blog", "blog", true)

	product, err := repo.GetBySlug(" saas-landing ")
	if err != nil || product == nil {
		t.Fatalf("get by slug failed: product=%v err=%v", product, err)
	}
	if product.Price.String() != "19.90" {
		t.Fatalf("price want 19.90 got %s", product.Price.String())
	}

	missing, err := repo.GetBySlug("nope")
	if err != nil || missing != nil {
		t.Fatalf("missing slug want nil,nil got %v,%v", missing, err)
	}

	products, err := repo.ListBySlugs([]string{"saas-landing", "minimal-blog", "ghost"})
	if err != nil {
		t.Fatalf("list by slugs failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("list by slugs want 2 got %d", len(products))
	}

	count, err := repo.CountBySlug("minimal-blog")
	if err != nil || count != 1 {
		t.Fatalf("count by slug want 1 got %d err=%v", count, err)
	}
}
