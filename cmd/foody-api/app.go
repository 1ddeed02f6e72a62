package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/foody-app/foody-api/internal/announcement"
	"github.com/foody-app/foody-api/internal/auth"
	"github.com/foody-app/foody-api/internal/bill"
	"github.com/foody-app/foody-api/internal/cart"
	"github.com/foody-app/foody-api/internal/category"
	"github.com/foody-app/foody-api/internal/config"
	"github.com/foody-app/foody-api/internal/events"
	"github.com/foody-app/foody-api/internal/httpx"
	"github.com/foody-app/foody-api/internal/live"
	"github.com/foody-app/foody-api/internal/mail"
	"github.com/foody-app/foody-api/internal/memstore"
	"github.com/foody-app/foody-api/internal/order"
	"github.com/foody-app/foody-api/internal/product"
	"github.com/foody-app/foody-api/internal/review"
	"github.com/foody-app/foody-api/internal/stats"
	"github.com/foody-app/foody-api/internal/upload"
	"github.com/foody-app/foody-api/internal/user"

	_ "github.com/foody-app/foody-api/docs"
)

// stores groups one implementation of every repository.
type stores struct {
	users         user.Repository
	categories    category.Repository
	products      product.Repository
	carts         cart.Repository
	orders        order.Repository
	bills         bill.Repository
	reviews       review.Repository
	announcements announcement.Repository
	stats         stats.Store
}

func pgStores(pool *pgxpool.Pool) stores {
	return stores{
		users:      user.NewPGRepo(pool),
		categories: category.NewPGRepo(pool),
		products:   product.NewPGRepo(pool),
		carts:      cart.NewPGRepo(pool),
		orders:     order.NewPGRepo(pool),
		bills:      bill.NewPGRepo(pool),
		reviews:    review.NewPGRepo(pool),
		stats:      stats.NewPGStore(pool),
	}
}

func memStores(st *memstore.Store) stores {
	return stores{
		users:         st.Users(),
		categories:    st.Categories(),
		products:      st.Products(),
		carts:         st.Carts(),
		orders:        st.Orders(),
		bills:         st.Bills(),
		reviews:       st.Reviews(),
		announcements: st.Announcements(),
		stats:         st.Stats(),
	}
}

type app struct {
	cfg     config.Config
	tokens  *auth.Tokens
	uploads *upload.Store
	hub     *live.Hub

	users         *user.Service
	categories    *category.Service
	products      *product.Service
	carts         *cart.Service
	orders        *order.Service
	bills         *bill.Service
	reviews       *review.Service
	announcements *announcement.Service
	stats         *stats.Service
}

// newApp builds the services over s. Lifecycle events go to the hub and to pub.
func newApp(cfg config.Config, s stores, hub *live.Hub, pub events.Publisher, mailer mail.Mailer) *app {
	fanout := events.Multi{hub}
	if pub != nil {
		fanout = append(fanout, pub)
	}
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	carts := cart.NewService(s.carts, s.products)
	orders := order.NewService(s.orders, carts, fanout)
	return &app{
		cfg:           cfg,
		tokens:        tokens,
		uploads:       upload.NewStore(cfg.UploadDir),
		hub:           hub,
		users:         user.NewService(s.users, tokens, mailer, cfg.FrontendURL),
		categories:    category.NewService(s.categories),
		products:      product.NewService(s.products),
		carts:         carts,
		orders:        orders,
		bills:         bill.NewService(s.bills, s.orders, fanout),
		reviews:       review.NewService(s.reviews, orders, s.products),
		announcements: announcement.NewService(s.announcements),
		stats:         stats.NewService(s.stats),
	}
}

func (a *app) router() *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(), httpx.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = upload.MaxSize

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.Static(upload.PublicPrefix, a.cfg.UploadDir)

	authed := httpx.Authenticate(a.tokens, a.users)
	staff := httpx.RequireRoles(auth.RoleStaff, auth.RoleAdmin)
	admin := httpx.RequireRoles(auth.RoleAdmin)

	r.GET("/ws/orders", authed, staff, liveHandler(a.hub))

	api := r.Group("/api")

	au := api.Group("/auth")
	au.POST("/register", registerHandler(a))
	au.POST("/login", loginHandler(a))
	au.POST("/logout", logoutHandler(a))
	au.POST("/forgot-password", forgotPasswordHandler(a.users))
	au.POST("/reset-password/:token", resetPasswordHandler(a))
	au.GET("/me", authed, meHandler(a.users))
	au.PUT("/profile", authed, updateProfileHandler(a.users))
	au.PUT("/password", authed, changePasswordHandler(a.users))
	au.POST("/avatar", authed, avatarHandler(a.users, a.uploads))

	us := api.Group("/users", authed, admin)
	us.GET("", listUsersHandler(a.users))
	us.GET("/:id", getUserHandler(a.users))
	us.PUT("/:id", adminUpdateUserHandler(a.users))
	us.DELETE("/:id", deleteUserHandler(a.users))

	cg := api.Group("/categories")
	cg.GET("", listCategoriesHandler(a.categories, false))
	cg.GET("/all", authed, admin, listCategoriesHandler(a.categories, true))
	cg.GET("/:id", getCategoryHandler(a.categories))
	cg.POST("", authed, admin, createCategoryHandler(a.categories, a.uploads))
	cg.PUT("/:id", authed, admin, updateCategoryHandler(a.categories, a.uploads))
	cg.DELETE("/:id", authed, admin, deleteCategoryHandler(a.categories))

	pr := api.Group("/products")
	pr.GET("", listProductsHandler(a.products))
	pr.GET("/:id", getProductHandler(a.products))
	pr.POST("", authed, admin, createProductHandler(a.products, a.uploads))
	pr.PUT("/:id", authed, admin, updateProductHandler(a.products, a.uploads))
	pr.PATCH("/:id/availability", authed, staff, availabilityHandler(a.products))
	pr.DELETE("/:id", authed, admin, deleteProductHandler(a.products))

	ct := api.Group("/cart", authed)
	ct.GET("", getCartHandler(a.carts))
	ct.POST("/items", addCartItemHandler(a.carts))
	ct.PUT("/items/:productId", setCartItemHandler(a.carts))
	ct.DELETE("/items/:productId", removeCartItemHandler(a.carts))
	ct.DELETE("", clearCartHandler(a.carts))

	or := api.Group("/orders", authed)
	or.POST("", createOrderHandler(a.orders))
	or.GET("/my", myOrdersHandler(a.orders))
	or.GET("", staff, listOrdersHandler(a.orders))
	or.GET("/export", admin, exportOrdersHandler(a.orders))
	or.GET("/:id", getOrderHandler(a.orders))
	or.PUT("/:id/status", staff, updateOrderStatusHandler(a.orders))

	bl := api.Group("/bills", authed)
	bl.POST("/request", requestBillHandler(a.bills))
	bl.GET("/my", myBillsHandler(a.bills))
	bl.GET("/order/:orderId", billByOrderHandler(a.bills))
	bl.POST("/generate", staff, generateBillHandler(a.bills))
	bl.GET("", staff, listBillsHandler(a.bills))
	bl.GET("/pending", staff, pendingBillsHandler(a.bills))
	bl.GET("/:id", getBillHandler(a.bills))
	bl.PUT("/:id/pay", staff, payBillHandler(a.bills))

	rv := api.Group("/reviews")
	rv.GET("/product/:productId", productReviewsHandler(a.reviews))
	rv.POST("", authed, createReviewHandler(a.reviews))
	rv.GET("/my", authed, myReviewsHandler(a.reviews))
	rv.PUT("/:id", authed, updateReviewHandler(a.reviews))
	rv.DELETE("/:id", authed, deleteReviewHandler(a.reviews))

	an := api.Group("/announcements")
	an.GET("", publicAnnouncementsHandler(a.announcements))
	an.GET("/all", authed, admin, allAnnouncementsHandler(a.announcements))
	an.POST("", authed, admin, createAnnouncementHandler(a.announcements))
	an.PUT("/:id", authed, admin, updateAnnouncementHandler(a.announcements))
	an.DELETE("/:id", authed, admin, deleteAnnouncementHandler(a.announcements))

	api.GET("/stats/dashboard", authed, admin, dashboardHandler(a.stats))

	return r
}
