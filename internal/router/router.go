package router

import (
	"time"

	"github.com/Jizar07/cabradapeste-sub002/internal/config"
	"github.com/Jizar07/cabradapeste-sub002/internal/handler"
	"github.com/Jizar07/cabradapeste-sub002/internal/infra"
	"github.com/Jizar07/cabradapeste-sub002/internal/middleware"
	"github.com/Jizar07/cabradapeste-sub002/internal/repository"
	"github.com/Jizar07/cabradapeste-sub002/internal/service"
	"github.com/Jizar07/cabradapeste-sub002/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns the configured Gin engine plus the
// sync service, which main also drives from the periodic cron.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, feedCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) (*gin.Engine, service.SyncService) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	feed := infra.NewFeedProtegido(infra.NewFeedClient(cfg.FeedURL), feedCB)
	quantidades := infra.NewEstoqueQuantidades(rdb)
	vistos := infra.NewAlertasVistos(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	gerenteRepo := repository.NewGerenteRepository(db)
	lancamentoRepo := repository.NewLancamentoRepository(db)
	atividadeRepo := repository.NewAtividadeRepository(db)
	estoqueRepo := repository.NewEstoqueConfigRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	locks := service.NewGerenteLocks()
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	gerenteSvc := service.NewGerenteService(gerenteRepo)
	ledgerSvc := service.NewLedgerService(lancamentoRepo, gerenteRepo, locks, cfg.LimiarPassivoDecimal(), dispatcher, vistos)
	reconcileSvc := service.NewReconcileService(lancamentoRepo, atividadeRepo, gerenteRepo, locks, ledgerSvc)
	syncSvc := service.NewSyncService(feed, reconcileSvc)
	estoqueSvc := service.NewEstoqueService(estoqueRepo, quantidades, vistos)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	gerentesH := handler.NewGerenteHandler(gerenteSvc)
	ledgerH := handler.NewLedgerHandler(ledgerSvc, reconcileSvc, dispatcher, vistos)
	syncH := handler.NewSyncHandler(syncSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, feedCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operador, supervisor, administrador — declared per-endpoint
		todos := middleware.RequireRole("operador", "supervisor", "administrador")
		gestores := middleware.RequireRole("supervisor", "administrador")
		admin := middleware.RequireRole("administrador")

		ledger := v1.Group("/ledger", todos)
		{
			ledger.POST("/retiradas", ledgerH.RegistrarRetirada)
			ledger.POST("/depositos", ledgerH.RegistrarDeposito)
			ledger.POST("/pagamentos", ledgerH.RegistrarPagamento)
			ledger.POST("/estornos", ledgerH.Estornar)
			ledger.POST("/estornos/todos", ledgerH.EstornarTodos)
		}

		v1.GET("/gerentes", todos, gerentesH.Listar)
		v1.GET("/gerentes/:id", todos, gerentesH.Buscar)
		v1.GET("/gerentes/:id/passivo", todos, ledgerH.Passivo)
		v1.GET("/gerentes/:id/fluxo", todos, ledgerH.Fluxo)
		v1.POST("/gerentes/:id/relatorio", gestores, ledgerH.SolicitarRelatorio)
		// Liability reset rewrites nothing but corrects balances — admin only.
		v1.POST("/gerentes/:id/passivo/reset", admin, ledgerH.ResetarPassivo)
		v1.POST("/gerentes", gestores, gerentesH.Criar)
		v1.PUT("/gerentes/:id", gestores, gerentesH.Atualizar)
		v1.DELETE("/gerentes/:id", admin, gerentesH.Desativar)

		v1.POST("/sync", gestores, syncH.Sincronizar)

		v1.GET("/alertas/passivos", todos, ledgerH.AlertasPassivo)
		v1.POST("/alertas/vistos", todos, ledgerH.MarcarAlertaVisto)

		v1.GET("/estoque/configs", todos, estoqueH.ListarConfigs)
		v1.GET("/estoque/avisos", todos, estoqueH.Avisos)
		estoque := v1.Group("/estoque/configs", admin)
		{
			estoque.POST("", estoqueH.CriarConfig)
			estoque.PUT("/:id", estoqueH.AtualizarConfig)
			estoque.DELETE("/:id", estoqueH.RemoverConfig)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CriarUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.AtualizarUsuario)
			usuarios.DELETE("/:id", authH.DesativarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, syncSvc
}
