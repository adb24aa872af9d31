package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"itemcatalog/internal/services"
	"itemcatalog/internal/utils"
)

// APIHandler serves the read-only JSON endpoints. No authentication and no
// pagination; error outcomes are payloads, not statuses, matching the
// consumers of the original API.
type APIHandler struct {
	itemService     services.ItemService
	categoryService services.CategoryService
}

func NewAPIHandler(itemService services.ItemService, categoryService services.CategoryService) *APIHandler {
	return &APIHandler{itemService: itemService, categoryService: categoryService}
}

// CatalogJSON returns every item, newest id first.
func (h *APIHandler) CatalogJSON(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.GetItemsNewestFirst(r.Context())
	if err != nil {
		utils.SendJSONError(w, "failed to fetch catalog", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"catalog": items})
}

// ItemJSON returns one item if it is filed under the given category.
func (h *APIHandler) ItemJSON(w http.ResponseWriter, r *http.Request) {
	categoryID, err := utils.GetUintFromVars(r, "cid")
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"error": "Item or Category does not exist!"})
		return
	}
	itemID, err := utils.GetUintFromVars(r, "iid")
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"error": "Item or Category does not exist!"})
		return
	}

	item, err := h.itemService.GetItemInCategory(r.Context(), categoryID, itemID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"error": "Item or Category does not exist!"})
	case errors.Is(err, services.ErrItemNotInCategory):
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{
			"error": fmt.Sprintf("Item %d does not belong to category %d.", itemID, categoryID),
		})
	case err != nil:
		utils.SendJSONError(w, "failed to fetch item", http.StatusInternalServerError)
	default:
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"item": item})
	}
}

// CategoriesJSON returns every category.
func (h *APIHandler) CategoriesJSON(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.GetCategories(r.Context())
	if err != nil {
		utils.SendJSONError(w, "failed to fetch categories", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
