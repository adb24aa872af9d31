package handlers

import (
	"fmt"
	"net/http"

	"itemcatalog/internal/models"
	"itemcatalog/internal/services"
	"itemcatalog/internal/session"
	"itemcatalog/internal/utils"
	"itemcatalog/internal/views"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	itemService     services.ItemService
	sessions        *session.Manager
	views           *views.Renderer
}

func NewCategoryHandler(categoryService services.CategoryService, itemService services.ItemService, sessions *session.Manager, v *views.Renderer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, itemService: itemService, sessions: sessions, views: v}
}

type homePageData struct {
	Categories []models.Category
	Items      []models.Item
}

// Home is the landing page: every category and every item.
func (h *CategoryHandler) Home(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.GetCategories(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	items, err := h.itemService.GetItems(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderPage(h.views, h.sessions, w, r, "index", homePageData{Categories: categories, Items: items})
}

func (h *CategoryHandler) NewCategory(w http.ResponseWriter, r *http.Request) {
	if !requireLogin(h.sessions, w, r) {
		return
	}

	if r.Method == http.MethodGet {
		renderPage(h.views, h.sessions, w, r, "new-category", nil)
		return
	}

	name := r.FormValue("new-category-name")
	category, err := h.categoryService.AddCategory(r.Context(), h.sessions.UserID(r), name)
	if err != nil {
		flashCatalogError(h.sessions, w, r, err, "/catalog/category/new/")
		return
	}

	flashRedirect(h.sessions, w, r, fmt.Sprintf("New Category %s created!", category.Name), "/")
}

type categoryPageData struct {
	Category *models.Category
}

func (h *CategoryHandler) EditCategory(w http.ResponseWriter, r *http.Request) {
	if !requireLogin(h.sessions, w, r) {
		return
	}

	categoryID, err := utils.GetUintFromVars(r, "id")
	if err != nil {
		flashRedirect(h.sessions, w, r, "Unable to process request!", "/")
		return
	}
	userID := h.sessions.UserID(r)

	if r.Method == http.MethodGet {
		category, err := h.categoryService.GetOwnedCategory(r.Context(), userID, categoryID)
		if err != nil {
			flashCatalogError(h.sessions, w, r, err, "/")
			return
		}
		renderPage(h.views, h.sessions, w, r, "edit-category", categoryPageData{Category: category})
		return
	}

	category, err := h.categoryService.RenameCategory(r.Context(), userID, categoryID, r.FormValue("name"))
	if err != nil {
		flashCatalogError(h.sessions, w, r, err, "/")
		return
	}

	flashRedirect(h.sessions, w, r, "Category updated!", fmt.Sprintf("/catalog/category/%d/items/", category.ID))
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !requireLogin(h.sessions, w, r) {
		return
	}

	categoryID, err := utils.GetUintFromVars(r, "id")
	if err != nil {
		flashRedirect(h.sessions, w, r, "Unable to process request!", "/")
		return
	}
	userID := h.sessions.UserID(r)

	// GET renders the confirmation; only POST deletes.
	if r.Method == http.MethodGet {
		category, err := h.categoryService.GetOwnedCategory(r.Context(), userID, categoryID)
		if err != nil {
			flashCatalogError(h.sessions, w, r, err, "/")
			return
		}
		renderPage(h.views, h.sessions, w, r, "delete-category", categoryPageData{Category: category})
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		flashCatalogError(h.sessions, w, r, err, "/")
		return
	}

	flashRedirect(h.sessions, w, r, "Category deleted!", "/")
}

type itemsPageData struct {
	Category *models.Category
	Items    []models.Item
	Total    int
	IsOwner  bool
}

// ItemsInCategory is public: anyone can browse a category's items.
func (h *CategoryHandler) ItemsInCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := utils.GetUintFromVars(r, "id")
	if err != nil {
		flashRedirect(h.sessions, w, r, "Unable to process request!", "/")
		return
	}

	listing, err := h.itemService.ItemsInCategory(r.Context(), categoryID)
	if err != nil {
		flashCatalogError(h.sessions, w, r, err, "/")
		return
	}

	renderPage(h.views, h.sessions, w, r, "items", itemsPageData{
		Category: listing.Category,
		Items:    listing.Items,
		Total:    listing.Total,
		IsOwner:  listing.Category.UserID == h.sessions.UserID(r),
	})
}
