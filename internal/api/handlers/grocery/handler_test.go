package grocery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grocerycore "grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/importer"
	recipecore "grocery-manager/internal/core/recipe"
	"grocery-manager/internal/infrastructure/store"
)

type stubTextGenerator struct {
	draft *recipecore.Draft
	items []recipecore.NormalizedItem
	err   error
}

func (g *stubTextGenerator) GenerateRecipe(ctx context.Context, ingredients []string, opts recipecore.GenerateOptions) (*recipecore.Draft, error) {
	return g.draft, g.err
}

func (g *stubTextGenerator) GenerateShoppingList(ctx context.Context, recipeText string, servings int) ([]recipecore.NormalizedItem, error) {
	return g.items, g.err
}

type testEnv struct {
	router *gin.Engine
	repo   *store.Memory
	gen    *stubTextGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := store.NewMemory("default")
	gen := &stubTextGenerator{}

	ctx := context.Background()
	reconciler := grocerycore.NewReconciler(repo, repo.LoadInHouse(ctx), repo.LoadShopping(ctx))
	recipes := recipecore.NewService(gen, repo, repo.LoadRecipes(ctx))
	imports := importer.NewManager(gen, reconciler)

	router := gin.New()
	handler := NewHandler(reconciler, recipes, imports, repo)
	handler.RegisterRoutes(router.Group("/api/v1"))

	return &testEnv{router: router, repo: repo, gen: gen}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestGetCatalog(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/catalog", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Items []grocerycore.GroceryItem `json:"items"`
	}
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Items, 28)
}

func TestAddItemAndGetLists(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/lists/in-house/items", gin.H{
		"name":     "Kale",
		"category": "Produce",
		"quantity": gin.H{"amount": 2, "unit": "pcs"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var item grocerycore.GroceryItem
	decodeBody(t, w, &item)
	assert.Contains(t, item.ID, "onetime-")
	assert.Equal(t, "Kale", item.Name)

	w = env.do(t, http.MethodGet, "/api/v1/lists", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var lists struct {
		InHouse  []grocerycore.GroceryItem `json:"inHouse"`
		Shopping []grocerycore.GroceryItem `json:"shopping"`
	}
	decodeBody(t, w, &lists)
	require.Len(t, lists.InHouse, 1)
	assert.Equal(t, item.ID, lists.InHouse[0].ID)
	assert.Empty(t, lists.Shopping)
}

func TestAddItemValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/lists/in-house/items", gin.H{
		"name": "", "category": "Produce",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)

	w = env.do(t, http.MethodPost, "/api/v1/lists/in-house/items", gin.H{
		"name": "Chips", "category": "Snacks",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/lists/pantry/items", gin.H{
		"name": "Chips", "category": "Other",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoveRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/lists/in-house/items", gin.H{
		"name": "Kale", "category": "Produce", "quantity": gin.H{"amount": 1, "unit": "pcs"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item grocerycore.GroceryItem
	decodeBody(t, w, &item)

	w = env.do(t, http.MethodPost, "/api/v1/items/"+item.ID+"/move-to-shopping", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// One-time items do not round-trip back to in-house.
	w = env.do(t, http.MethodPost, "/api/v1/items/"+item.ID+"/move-to-in-house", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/lists", nil)
	var lists struct {
		InHouse  []grocerycore.GroceryItem `json:"inHouse"`
		Shopping []grocerycore.GroceryItem `json:"shopping"`
	}
	decodeBody(t, w, &lists)
	assert.Empty(t, lists.InHouse)
	assert.Empty(t, lists.Shopping)
}

func TestUpdateQuantity(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/lists/in-house/items", gin.H{
		"name": "Flour", "category": "Pantry", "quantity": gin.H{"amount": 500, "unit": "g"},
	})
	var item grocerycore.GroceryItem
	decodeBody(t, w, &item)

	w = env.do(t, http.MethodPut, "/api/v1/items/"+item.ID+"/quantity", gin.H{
		"amount": -10, "unit": "g",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/lists", nil)
	var lists struct {
		InHouse []grocerycore.GroceryItem `json:"inHouse"`
	}
	decodeBody(t, w, &lists)
	require.Len(t, lists.InHouse, 1)
	require.NotNil(t, lists.InHouse[0].Quantity)
	assert.Equal(t, 0, lists.InHouse[0].Quantity.Amount)
}

func TestReorderEndpoint(t *testing.T) {
	env := newTestEnv(t)

	var ids []string
	for _, name := range []string{"C", "B", "A"} {
		w := env.do(t, http.MethodPost, "/api/v1/lists/shopping/items", gin.H{
			"name": name, "category": "Other",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var item grocerycore.GroceryItem
		decodeBody(t, w, &item)
		ids = append(ids, item.ID)
	}
	// Prepend ordering: the list is now A, B, C.

	w := env.do(t, http.MethodPost, "/api/v1/lists/shopping/reorder", gin.H{
		"draggedId": ids[0], "targetId": ids[2],
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/lists", nil)
	var lists struct {
		Shopping []grocerycore.GroceryItem `json:"shopping"`
	}
	decodeBody(t, w, &lists)
	require.Len(t, lists.Shopping, 3)
	assert.Equal(t, "C", lists.Shopping[0].Name)
	assert.Equal(t, "A", lists.Shopping[1].Name)
	assert.Equal(t, "B", lists.Shopping[2].Name)
}

func TestImportFlow(t *testing.T) {
	env := newTestEnv(t)
	env.gen.items = []recipecore.NormalizedItem{
		{Name: "Chickpeas", Category: grocerycore.CategoryPantry, NormalizedName: "chickpeas"},
		{Name: "Tahini", Category: grocerycore.CategoryOther, NormalizedName: "tahini"},
	}

	w := env.do(t, http.MethodPost, "/api/v1/imports", gin.H{
		"recipeText": "Hummus: chickpeas, tahini, lemon", "servings": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var session importer.Session
	decodeBody(t, w, &session)
	assert.Equal(t, importer.StateReady, session.State)
	require.Len(t, session.Rows, 2)
	assert.True(t, session.Rows[0].Checked)

	// Uncheck Chickpeas, confirm only Tahini.
	w = env.do(t, http.MethodPost, "/api/v1/imports/"+session.ID+"/toggle", gin.H{"name": "Chickpeas"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/imports/"+session.ID+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var confirm struct {
		Added []grocerycore.GroceryItem `json:"added"`
	}
	decodeBody(t, w, &confirm)
	require.Len(t, confirm.Added, 1)
	assert.Equal(t, "Tahini", confirm.Added[0].Name)

	// The session is discarded after confirm.
	w = env.do(t, http.MethodPost, "/api/v1/imports/"+session.ID+"/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportValidationAndFailure(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/imports", gin.H{"recipeText": "  ", "servings": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.gen.err = errors.New("Failed to parse the recipe. Please check the format or try again.")
	w = env.do(t, http.MethodPost, "/api/v1/imports", gin.H{"recipeText": "Pancakes", "servings": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	var session importer.Session
	decodeBody(t, w, &session)
	assert.Equal(t, importer.StateFailed, session.State)
	assert.Contains(t, session.Error, "Failed to parse the recipe.")
}

func TestCancelImport(t *testing.T) {
	env := newTestEnv(t)
	env.gen.items = []recipecore.NormalizedItem{
		{Name: "Chickpeas", Category: grocerycore.CategoryPantry, NormalizedName: "chickpeas"},
	}

	w := env.do(t, http.MethodPost, "/api/v1/imports", gin.H{"recipeText": "Hummus", "servings": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	var session importer.Session
	decodeBody(t, w, &session)

	w = env.do(t, http.MethodDelete, "/api/v1/imports/"+session.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/lists", nil)
	var lists struct {
		Shopping []grocerycore.GroceryItem `json:"shopping"`
	}
	decodeBody(t, w, &lists)
	assert.Empty(t, lists.Shopping)
}

func TestRecipeGenerateSaveAndMissing(t *testing.T) {
	env := newTestEnv(t)
	env.gen.draft = &recipecore.Draft{
		Name:        "Pancakes",
		Description: "Fluffy.",
		Ingredients: []recipecore.RecipeIngredient{
			{Name: "2 cups Flour", NormalizedName: "flour"},
			{Name: "1 cup Sugar", NormalizedName: "sugar"},
		},
		Instructions: "1. Mix.\n2. Fry.",
	}

	w := env.do(t, http.MethodPost, "/api/v1/recipes/generate", gin.H{
		"ingredients": []string{"flour", "sugar"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/recipes", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var saved recipecore.Recipe
	decodeBody(t, w, &saved)
	assert.Contains(t, saved.ID, "recipe-")

	// Flour is in-house, so only sugar is missing.
	w = env.do(t, http.MethodPost, "/api/v1/lists/in-house/items", gin.H{
		"name": "Flour", "category": "Pantry",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/recipes/"+saved.ID+"/missing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var missing struct {
		Added []grocerycore.GroceryItem `json:"added"`
	}
	decodeBody(t, w, &missing)
	require.Len(t, missing.Added, 1)
	assert.Equal(t, "1 cup Sugar", missing.Added[0].Name)
	assert.Contains(t, missing.Added[0].ID, "recipe-needed-")

	w = env.do(t, http.MethodDelete, "/api/v1/recipes/"+saved.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGenerateValidationAndFailure(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/recipes/generate", gin.H{"ingredients": []string{}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "Please select at least one ingredient.", resp.Message)

	env.gen.err = errors.New("Sorry, I had trouble coming up with a recipe. Please check your setup or try again later.")
	w = env.do(t, http.MethodPost, "/api/v1/recipes/generate", gin.H{"ingredients": []string{"eggs"}})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSaveWithoutGenerate(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/recipes", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMissingUnknownRecipe(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/recipes/recipe-nope/missing", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp struct {
		Code string `json:"code"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "NOT_FOUND", resp.Code)
}

func TestSwitchProfile(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/lists/in-house/items", gin.H{
		"name": "Kale", "category": "Produce",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/profile", gin.H{"profile": "guest"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/lists", nil)
	var lists struct {
		InHouse []grocerycore.GroceryItem `json:"inHouse"`
	}
	decodeBody(t, w, &lists)
	assert.Empty(t, lists.InHouse)

	// Switching back restores the original profile's data.
	w = env.do(t, http.MethodPost, "/api/v1/profile", gin.H{"profile": "default"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/lists", nil)
	decodeBody(t, w, &lists)
	require.Len(t, lists.InHouse, 1)
	assert.Equal(t, "Kale", lists.InHouse[0].Name)

	w = env.do(t, http.MethodPost, "/api/v1/profile", gin.H{"profile": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
