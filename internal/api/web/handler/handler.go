package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dkozyrev/sneakershop/internal/api/web/render"
	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/model"
	"github.com/dkozyrev/sneakershop/internal/service"
)

// Handler serves the server-rendered shop pages.
type Handler struct {
	auth     *service.Auth
	session  *service.Session
	catalog  *service.Catalog
	cart     *service.Cart
	comments *service.Comments
	ctxMgr   model.ContextManager
	render   *render.Renderer
	logger   *logger.Logger
}

func New(
	auth *service.Auth,
	session *service.Session,
	catalog *service.Catalog,
	cart *service.Cart,
	comments *service.Comments,
	ctxMgr model.ContextManager,
	render *render.Renderer,
	logger *logger.Logger,
) *Handler {
	return &Handler{
		auth:     auth,
		session:  session,
		catalog:  catalog,
		cart:     cart,
		comments: comments,
		ctxMgr:   ctxMgr,
		render:   render,
		logger:   logger,
	}
}

func (h *Handler) currentUser(r *http.Request) (model.User, bool) {
	return h.ctxMgr.GetUserFromContext(r.Context())
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// parsePriceCents converts a decimal price string like "99.90" into minor
// units. At most two fraction digits are honored.
func parsePriceCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var cents int64
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid price %q", s)
			}
			cents = cents*10 + int64(r-'0')
		}
	}

	return cents, nil
}
