package handler

import (
	"net/http"
)

// ReviewForm renders the add-review page.
func (h *Handler) ReviewForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/login")
		return
	}

	h.render.Page(w, "review.html", map[string]any{"User": user})
}

// AddReview stores the signed-in user's review.
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/login")
		return
	}

	text := r.PostFormValue("text")
	if text != "" {
		if _, err := h.comments.Add(r.Context(), user.ID, text); err != nil {
			h.logger.Error("failed to add review", "user_id", user.ID, "error", err.Error())
		}
	}

	redirect(w, r, "/get-reviews")
}

// Reviews renders all reviews with author names; no sign-in required.
func (h *Handler) Reviews(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.List(r.Context(), 0, 120)
	if err != nil {
		h.logger.Error("failed to list reviews", "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{"Comments": comments}
	if user, ok := h.currentUser(r); ok {
		data["User"] = user
	}

	h.render.Page(w, "comments.html", data)
}
