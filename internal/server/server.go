package server

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/radixtech/quotehub/internal/auth"
	authdomain "github.com/radixtech/quotehub/internal/auth/domain"
	"github.com/radixtech/quotehub/internal/auth/session"
	"github.com/radixtech/quotehub/internal/authorization"
	"github.com/radixtech/quotehub/internal/catalog"
	catalogdomain "github.com/radixtech/quotehub/internal/catalog/domain"
	"github.com/radixtech/quotehub/internal/catalog/imagelink"
	"github.com/radixtech/quotehub/internal/catalog/importer"
	"github.com/radixtech/quotehub/internal/config"
	"github.com/radixtech/quotehub/internal/dashboard"
	"github.com/radixtech/quotehub/internal/migration"
	obsmetrics "github.com/radixtech/quotehub/internal/observability/metrics"
	"github.com/radixtech/quotehub/internal/providers/email"
	"github.com/radixtech/quotehub/internal/providers/pdf"
	"github.com/radixtech/quotehub/internal/quote"
	quotedomain "github.com/radixtech/quotehub/internal/quote/domain"
	"github.com/radixtech/quotehub/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Requests larger than this are rejected before handlers run.
const maxRequestBody = 16 << 20

var Module = fx.Module("http.server",
	config.Module,
	db.Module,
	obsmetrics.Module,
	migration.Module,
	authorization.Module,
	auth.Module,
	catalog.Module,
	quote.Module,
	dashboard.Module,
	pdf.Module,
	email.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(httpMetrics.Middleware())
	r.Use(bodyLimit(maxRequestBody))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func bodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	authSvc      authdomain.Service
	sessions     *session.Manager
	authzSvc     authorization.Service
	catalogSvc   catalogdomain.Service
	importerSvc  *importer.Importer
	linker       *imagelink.Linker
	quoteSvc     quotedomain.Service
	dashboardSvc dashboard.Service
	pdfProvider  pdf.Provider
	emailSvc     email.Provider
	now          func() time.Time
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	AuthSvc      authdomain.Service
	Sessions     *session.Manager
	AuthzSvc     authorization.Service
	CatalogSvc   catalogdomain.Service
	ImporterSvc  *importer.Importer
	Linker       *imagelink.Linker
	QuoteSvc     quotedomain.Service
	DashboardSvc dashboard.Service
	PDFProvider  pdf.Provider
	EmailSvc     email.Provider
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("server"),
		authSvc:      p.AuthSvc,
		sessions:     p.Sessions,
		authzSvc:     p.AuthzSvc,
		catalogSvc:   p.CatalogSvc,
		importerSvc:  p.ImporterSvc,
		linker:       p.Linker,
		quoteSvc:     p.QuoteSvc,
		dashboardSvc: p.DashboardSvc,
		pdfProvider:  p.PDFProvider,
		emailSvc:     p.EmailSvc,
		now:          time.Now,
	}

	s.registerAuthRoutes()
	s.registerAPIRoutes()
	s.registerAdminRoutes()
	s.registerPageRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	a := s.engine.Group("/api/auth")

	a.POST("/register", s.Register)
	a.POST("/login", s.Login)
	a.POST("/logout", s.Logout)
	a.GET("/status", s.AuthStatus)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	api.GET("/products", s.ListProducts)
	api.GET("/packages", s.ListPackages)

	api.POST("/calculate", s.Calculate)
	api.POST("/save-quote", s.SaveQuote)
	api.GET("/load-quotes", s.LoadQuotes)
	api.GET("/load-quote/:id", s.LoadQuote)

	api.POST("/export-pdf", s.ExportPDF)
	api.GET("/user/quote-pdf/:id", s.UserQuotePDF)
	api.GET("/user/generate-contract/:id", s.UserGenerateContract)

	api.POST("/generate-email", s.GenerateEmail)
	api.POST("/send-email", s.SendEmail)

	api.POST("/upload-image/:model", s.UploadImage)
}

func (s *Server) registerAdminRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	manageCatalog := s.RequireCapability(authorization.ObjectCatalog, authorization.ActionCatalogManage)

	api.POST("/update-stock", manageCatalog, s.UpdateStock)
	api.POST("/upload-prices", s.RequireCapability(authorization.ObjectCatalog, authorization.ActionCatalogImport), s.UploadPrices)
	api.POST("/clear-catalog", manageCatalog, s.ClearCatalog)
	api.GET("/dashboard-stats", s.RequireCapability(authorization.ObjectDashboard, authorization.ActionDashboardView), s.DashboardStats)

	admin := api.Group("/admin")

	admin.POST("/product", manageCatalog, s.CreateProduct)
	admin.PUT("/product/:model", manageCatalog, s.UpdateProduct)
	admin.DELETE("/product/:model", manageCatalog, s.DeleteProduct)
	admin.POST("/bulk-link-images", manageCatalog, s.BulkLinkImages)

	manageUsers := s.RequireCapability(authorization.ObjectUser, authorization.ActionUserManage)
	admin.GET("/users", manageUsers, s.ListUsers)
	admin.POST("/user", manageUsers, s.CreateUser)
	admin.PUT("/user/:id", manageUsers, s.UpdateUser)
	admin.DELETE("/user/:id", manageUsers, s.DeleteUser)
	admin.POST("/user/approve/:id", manageUsers, s.ApproveUser)

	viewAll := s.RequireCapability(authorization.ObjectQuote, authorization.ActionQuoteViewAll)
	admin.GET("/all-quotes", viewAll, s.AllQuotes)
	admin.GET("/quote-pdf/:id", viewAll, s.AdminQuotePDF)
	admin.GET("/generate-contract/:id", viewAll, s.AdminGenerateContract)
	admin.POST("/quote/confirm/:id", s.RequireCapability(authorization.ObjectQuote, authorization.ActionQuoteConfirm), s.ConfirmQuote)
}

func (s *Server) registerPageRoutes() {
	public := s.cfg.PublicDir

	// Uploaded files include imported supplier price sheets, so the
	// directory is only served to signed-in users.
	s.engine.Group("/uploads", s.AuthRequired()).Static("/", s.cfg.UploadDir)
	s.engine.Static("/static", filepath.Join(public, "static"))

	s.engine.GET("/login", func(c *gin.Context) {
		c.File(filepath.Join(public, "login.html"))
	})
	s.engine.GET("/", s.PageAuthRequired(), func(c *gin.Context) {
		c.File(filepath.Join(public, "index.html"))
	})
	s.engine.GET("/admin", s.PageAuthRequired(), func(c *gin.Context) {
		c.File(filepath.Join(public, "admin.html"))
	})
	s.engine.GET("/dashboard", s.PageAuthRequired(), s.PageAdminRequired(), func(c *gin.Context) {
		c.File(filepath.Join(public, "dashboard.html"))
	})
}
