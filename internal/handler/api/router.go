package api

import (
	"github.com/labstack/echo/v4"
)

// Router composes the API handlers into a single route registrar.
type Router struct {
	dashboard  *DashboardHandler
	social     *SocialHandler
	dispersion *DispersionHandler
}

func NewRouter(dashboard *DashboardHandler, social *SocialHandler, dispersion *DispersionHandler) *Router {
	return &Router{dashboard: dashboard, social: social, dispersion: dispersion}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	r.dashboard.RegisterRoutes(e)
	r.social.RegisterRoutes(e)
	r.dispersion.RegisterRoutes(e)
}
