package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dkozyrev/sneakershop/internal/model"
	"github.com/dkozyrev/sneakershop/internal/service"
)

const maxUploadBytes = 10 << 20

// Index renders the product grid with optional title search and the
// signed-in user's cart preview.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.PostFormValue("search")
	if query == "" {
		query = r.PostFormValue("query")
	}

	products, err := h.catalog.List(r.Context(), model.ProductFilter{Query: query})
	if err != nil {
		h.logger.Error("failed to list products", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Products": products,
		"Query":    query,
		"Cart":     []model.CartLine{},
	}

	if user, ok := h.currentUser(r); ok {
		data["User"] = user
		view, err := h.cart.Contents(r.Context(), user.ID)
		if err != nil {
			h.logger.Error("failed to load cart preview", "user_id", user.ID, "error", err.Error())
		} else {
			data["Cart"] = view.Lines
		}
	}

	h.render.Page(w, "index.html", data)
}

// AddProductForm renders the admin product creation page.
func (h *Handler) AddProductForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok || !user.IsAdmin {
		redirect(w, r, "/login")
		return
	}

	h.render.Page(w, "add_product.html", map[string]any{"User": user})
}

// AddProduct creates a catalog product with an optional image upload.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok || !user.IsAdmin {
		redirect(w, r, "/login")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.render.Page(w, "add_product.html", map[string]any{"User": user, "Error": "invalid form data"})
		return
	}

	priceCents, err := parsePriceCents(r.PostFormValue("price"))
	if err != nil {
		h.render.Page(w, "add_product.html", map[string]any{"User": user, "Error": "please enter a valid price"})
		return
	}

	input := service.AddProductInput{
		Title:      r.PostFormValue("title"),
		PriceCents: priceCents,
		ImageURL:   r.PostFormValue("image_url"),
	}

	if file, header, err := r.FormFile("image_file"); err == nil {
		defer file.Close()
		input.Image = &service.ImageUpload{Filename: header.Filename, Data: file}
	}

	if _, err := h.catalog.AddProduct(r.Context(), input); err != nil {
		h.logger.Error("failed to add product", "error", err.Error())
		h.render.Page(w, "add_product.html", map[string]any{"User": user, "Error": "failed to add product"})
		return
	}

	redirect(w, r, "/")
}

// DeleteProduct soft-deletes a product from the catalog.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok || !user.IsAdmin {
		redirect(w, r, "/login")
		return
	}

	productID, err := uuid.Parse(mux.Vars(r)["product_id"])
	if err != nil {
		redirect(w, r, "/")
		return
	}

	if err := h.catalog.Delete(r.Context(), productID); err != nil {
		h.logger.Error("failed to delete product", "product_id", productID, "error", err.Error())
	}

	redirect(w, r, "/")
}

// File streams a stored product image.
func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	obj, err := h.catalog.Image(r.Context(), filename)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Type", imageContentType(filename))
	if _, err := io.Copy(w, obj); err != nil {
		h.logger.Error("failed to stream product image", "filename", filename, "error", err.Error())
	}
}

func imageContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	default:
		return "image/jpeg"
	}
}
