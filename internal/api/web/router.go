package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dkozyrev/sneakershop/internal/api/web/handler"
	"github.com/dkozyrev/sneakershop/internal/api/web/middleware"
	"github.com/dkozyrev/sneakershop/internal/metrics"
)

// NewRouter assembles the shop's HTTP surface.
func NewRouter(
	h *handler.Handler,
	authenticate *middleware.Authenticate,
	logging *middleware.Logging,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(logging.Handle, authenticate.Handle)

	r.HandleFunc("/", h.Index).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/signup", h.SignupForm).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/login", h.LoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)
	r.HandleFunc("/activate/{user_id}", h.Activate).Methods(http.MethodGet)
	r.HandleFunc("/account_update", h.ProfileForm).Methods(http.MethodGet)
	r.HandleFunc("/account_update", h.ProfileUpdate).Methods(http.MethodPost)

	r.HandleFunc("/cart", h.Cart).Methods(http.MethodGet)
	r.HandleFunc("/shop/add/{product_id}", h.AddToCart).Methods(http.MethodPost)
	r.HandleFunc("/cart/increase_quantity/{line_id}", h.IncreaseQuantity).Methods(http.MethodPost)
	r.HandleFunc("/cart/decrease_quantity/{line_id}", h.DecreaseQuantity).Methods(http.MethodPost)
	r.HandleFunc("/cart/delete_product_from_cart/{line_id}", h.RemoveLine).Methods(http.MethodPost)
	r.HandleFunc("/close-order", h.CloseOrder).Methods(http.MethodPost)

	r.HandleFunc("/add-product", h.AddProductForm).Methods(http.MethodGet)
	r.HandleFunc("/add-product", h.AddProduct).Methods(http.MethodPost)
	r.HandleFunc("/delete-product/{product_id}", h.DeleteProduct).Methods(http.MethodPost)
	r.HandleFunc("/file/{filename}", h.File).Methods(http.MethodGet)

	r.HandleFunc("/add-review", h.ReviewForm).Methods(http.MethodGet)
	r.HandleFunc("/add-review", h.AddReview).Methods(http.MethodPost)
	r.HandleFunc("/get-reviews", h.Reviews).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}
