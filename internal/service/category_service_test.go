package service

import (
	"context"
	"testing"

	"github.com/JuniorCesarMarques/ecommerce/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Grãos e Cereais":     "gr-os-e-cereais",
		"Bebidas":             "bebidas",
		"  Higiene Pessoal  ": "higiene-pessoal",
		"Limpeza & Casa":      "limpeza-casa",
		"UPPER case":          "upper-case",
		"---":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestCreateCategoryDerivesSlugFromName(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo, nil) // nil redis — cache is best-effort

	resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Bebidas Geladas"})
	require.NoError(t, err)
	assert.Equal(t, "bebidas-geladas", resp.Slug)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateCategoryRejectsDuplicateSlug(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo, nil)

	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "bebidas"})
	assert.Error(t, err)
}

func TestListReturnsIDNamePairs(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo, nil)

	seedCategory(t, repo, "Grãos", "graos")
	seedCategory(t, repo, "Bebidas", "bebidas")

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	names := map[string]bool{}
	for _, it := range items {
		assert.NotEmpty(t, it.ID)
		names[it.Name] = true
	}
	assert.True(t, names["Grãos"])
	assert.True(t, names["Bebidas"])
}
