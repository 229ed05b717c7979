package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/domain/user"
	"tourdesk/internal/handler/api"
	"tourdesk/internal/handler/middleware"
	"tourdesk/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	workflowHandler *api.WorkflowHandler,
	publicHandler *api.PublicHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, workflowHandler, publicHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	workflowHandler *api.WorkflowHandler,
	publicHandler *api.PublicHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Guest-facing, token-gated, no session required.
	public := engine.Group("/public/booking")
	{
		addRoutes(public, []route{
			{Method: http.MethodGet, Path: "/:token", Handler: publicHandler.GetPage},
			{Method: http.MethodGet, Path: "/:token/pdf", Handler: publicHandler.GetPDF},
			{Method: http.MethodGet, Path: "/:token/png", Handler: publicHandler.GetPNG},
		})
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodGet, Path: "/:id/activity", Handler: bookingHandler.ListActivity},
			})

			operator := authMiddleware.RequireRoleAtLeast(user.RoleOperator)
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "/:id/share-link", Handler: bookingHandler.IssueShareLink, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: workflowHandler.Transition(booking.EventConfirm), Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/create-quote", Handler: workflowHandler.Transition(booking.EventCreateQuote), Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/mark-paid", Handler: workflowHandler.Transition(booking.EventMarkPaid), Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/unmark-paid", Handler: workflowHandler.Transition(booking.EventUnmarkPaid), Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/generate-voucher", Handler: workflowHandler.Transition(booking.EventGenerateVoucher), Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: workflowHandler.Transition(booking.EventComplete), Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: workflowHandler.Transition(booking.EventCancel), Mw: []gin.HandlerFunc{operator}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
