package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"itemcatalog/internal/models"
	"itemcatalog/internal/services"
	"itemcatalog/internal/session"
	"itemcatalog/internal/utils"
	"itemcatalog/internal/views"
)

type ItemHandler struct {
	itemService     services.ItemService
	categoryService services.CategoryService
	userService     services.UserService
	sessions        *session.Manager
	views           *views.Renderer
}

func NewItemHandler(itemService services.ItemService, categoryService services.CategoryService, userService services.UserService, sessions *session.Manager, v *views.Renderer) *ItemHandler {
	return &ItemHandler{
		itemService:     itemService,
		categoryService: categoryService,
		userService:     userService,
		sessions:        sessions,
		views:           v,
	}
}

type newItemPageData struct {
	Categories []models.Category
}

// NewItem creates an item under a category picked on the form. The form
// only offers the user's own categories.
func (h *ItemHandler) NewItem(w http.ResponseWriter, r *http.Request) {
	if !requireLogin(h.sessions, w, r) {
		return
	}
	userID := h.sessions.UserID(r)

	if r.Method == http.MethodGet {
		categories, err := h.categoryService.GetCategoriesByUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		renderPage(h.views, h.sessions, w, r, "new-item", newItemPageData{Categories: categories})
		return
	}

	categoryID, _ := strconv.ParseUint(r.FormValue("category"), 10, 32)
	_, err := h.itemService.AddItem(r.Context(), userID, r.FormValue("name"), r.FormValue("description"), uint(categoryID))
	if err != nil {
		flashCatalogError(h.sessions, w, r, err, "/catalog/item/new/")
		return
	}

	flashRedirect(h.sessions, w, r, "New item successfully created!", "/")
}

type newItemInCategoryPageData struct {
	Category *models.Category
}

// NewItemInCategory creates an item under the category named in the path.
func (h *ItemHandler) NewItemInCategory(w http.ResponseWriter, r *http.Request) {
	if !requireLogin(h.sessions, w, r) {
		return
	}

	categoryID, err := utils.GetUintFromVars(r, "id")
	if err != nil {
		flashRedirect(h.sessions, w, r, "Unable to process request!", "/")
		return
	}

	category, err := h.categoryService.GetCategoryByID(r.Context(), categoryID)
	if err != nil {
		flashCatalogError(h.sessions, w, r, err, "/")
		return
	}

	if r.Method == http.MethodGet {
		renderPage(h.views, h.sessions, w, r, "new-item-in-category", newItemInCategoryPageData{Category: category})
		return
	}

	_, err = h.itemService.AddItem(r.Context(), h.sessions.UserID(r), r.FormValue("name"), r.FormValue("description"), categoryID)
	if err != nil {
		flashCatalogError(h.sessions, w, r, err, fmt.Sprintf("/catalog/category/%d/item/new/", categoryID))
		return
	}

	flashRedirect(h.sessions, w, r, "New item successfully created!", fmt.Sprintf("/catalog/category/%d/items/", categoryID))
}

type viewItemPageData struct {
	Item     *models.Item
	Category *models.Category
	Owner    *models.User
	IsOwner  bool
}

// ViewItem is the public item detail page.
func (h *ItemHandler) ViewItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := utils.GetUintFromVars(r, "id")
	if err != nil {
		flashRedirect(h.sessions, w, r, "We are unable to process your request right now.", "/")
		return
	}

	item, err := h.itemService.GetItemByID(r.Context(), itemID)
	if err != nil {
		flashRedirect(h.sessions, w, r, "We are unable to process your request right now.", "/")
		return
	}

	// Category and owner are display-only; a failed lookup leaves the
	// section off the page rather than failing the view.
	category, _ := h.categoryService.GetCategoryByID(r.Context(), item.CategoryID)
	owner, _ := h.userService.GetUserByID(r.Context(), item.UserID)

	renderPage(h.views, h.sessions, w, r, "view-item", viewItemPageData{
		Item:     item,
		Category: category,
		Owner:    owner,
		IsOwner:  item.UserID == h.sessions.UserID(r),
	})
}

type editItemPageData struct {
	Item       *models.Item
	Categories []models.Category
}

func (h *ItemHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	if !requireLogin(h.sessions, w, r) {
		return
	}

	itemID, err := utils.GetUintFromVars(r, "id")
	if err != nil {
		flashRedirect(h.sessions, w, r, "Unable to process request!", "/")
		return
	}
	userID := h.sessions.UserID(r)

	if r.Method == http.MethodGet {
		item, err := h.itemService.GetOwnedItem(r.Context(), userID, itemID)
		if err != nil {
			flashCatalogError(h.sessions, w, r, err, "/")
			return
		}
		categories, err := h.categoryService.GetCategoriesByUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		renderPage(h.views, h.sessions, w, r, "update-item", editItemPageData{Item: item, Categories: categories})
		return
	}

	update := models.ItemUpdate{}
	if name := r.FormValue("name"); name != "" {
		update.Name = &name
	}
	if description := r.FormValue("description"); description != "" {
		update.Description = &description
	}
	if raw := r.FormValue("category"); raw != "" {
		if categoryID, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(categoryID)
			update.CategoryID = &id
		}
	}

	if _, err := h.itemService.UpdateItem(r.Context(), userID, itemID, update); err != nil {
		flashCatalogError(h.sessions, w, r, err, "/")
		return
	}

	flashRedirect(h.sessions, w, r, "Item successfully updated!", fmt.Sprintf("/catalog/item/%d/edit/", itemID))
}

type deleteItemPageData struct {
	Item *models.Item
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if !requireLogin(h.sessions, w, r) {
		return
	}

	itemID, err := utils.GetUintFromVars(r, "id")
	if err != nil {
		flashRedirect(h.sessions, w, r, "Unable to process request!", "/")
		return
	}
	userID := h.sessions.UserID(r)

	// GET renders the confirmation; only POST deletes.
	if r.Method == http.MethodGet {
		item, err := h.itemService.GetOwnedItem(r.Context(), userID, itemID)
		if err != nil {
			flashCatalogError(h.sessions, w, r, err, "/")
			return
		}
		renderPage(h.views, h.sessions, w, r, "delete-item", deleteItemPageData{Item: item})
		return
	}

	if err := h.itemService.DeleteItem(r.Context(), userID, itemID); err != nil {
		flashCatalogError(h.sessions, w, r, err, "/")
		return
	}

	flashRedirect(h.sessions, w, r, "Item deleted!", "/")
}
