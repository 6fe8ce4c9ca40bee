package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Cart renders the signed-in user's open order with totals.
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	view, err := h.cart.Contents(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to load cart", "user_id", user.ID, "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render.Page(w, "cart.html", view)
}

// AddToCart puts one unit of the product into the user's cart.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/login")
		return
	}

	productID, err := uuid.Parse(mux.Vars(r)["product_id"])
	if err != nil {
		redirect(w, r, "/")
		return
	}

	if err := h.cart.AddProduct(r.Context(), user.ID, productID); err != nil {
		h.logger.Error("failed to add product to cart",
			"user_id", user.ID, "product_id", productID, "error", err.Error())
	}

	redirect(w, r, "/")
}

// IncreaseQuantity bumps a cart line by one.
func (h *Handler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.cart.IncreaseQuantity)
}

// DecreaseQuantity lowers a cart line by one, removing it at zero.
func (h *Handler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.cart.DecreaseQuantity)
}

// RemoveLine deletes a cart line outright.
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.cart.RemoveLine)
}

func (h *Handler) mutateLine(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, lineID uuid.UUID) error) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/login")
		return
	}

	lineID, err := uuid.Parse(mux.Vars(r)["line_id"])
	if err != nil {
		redirect(w, r, "/cart")
		return
	}

	if err := op(r.Context(), user.ID, lineID); err != nil {
		h.logger.Error("failed to update cart line",
			"user_id", user.ID, "line_id", lineID, "error", err.Error())
	}

	redirect(w, r, "/cart")
}

// CloseOrder finalizes checkout: a cart with lines is closed and its
// confirmation email queued; an empty cart is left untouched.
func (h *Handler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/login")
		return
	}

	if _, _, err := h.cart.Checkout(r.Context(), user); err != nil {
		h.logger.Error("failed to close order", "user_id", user.ID, "error", err.Error())
	}

	redirect(w, r, "/")
}
