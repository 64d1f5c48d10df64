package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/lrplaceres/punto-venta/internal/config"
	"github.com/lrplaceres/punto-venta/internal/handler"
	"github.com/lrplaceres/punto-venta/internal/middleware"
	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
	"github.com/lrplaceres/punto-venta/internal/service"
	"github.com/lrplaceres/punto-venta/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	negocioRepo := repository.NewNegocioRepository(db)
	puntoRepo := repository.NewPuntoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	distribucionRepo := repository.NewDistribucionRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)

	// Worker dispatcher — injected into services that enqueue audit jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, dispatcher)
	dependienteSvc := service.NewDependienteService(usuarioRepo, puntoRepo, dispatcher)
	negocioSvc := service.NewNegocioService(negocioRepo, dispatcher)
	puntoSvc := service.NewPuntoService(puntoRepo, negocioRepo, dispatcher)
	productoSvc := service.NewProductoService(productoRepo, negocioRepo, dispatcher)
	inventarioSvc := service.NewInventarioService(inventarioRepo, negocioRepo, productoRepo, dispatcher)
	distribucionSvc := service.NewDistribucionService(distribucionRepo, inventarioRepo, puntoRepo, negocioRepo, ventaRepo, dispatcher)
	ventaSvc := service.NewVentaService(ventaRepo, distribucionRepo, dispatcher)
	facturaSvc := service.NewFacturaService(facturaRepo, ventaRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	dependientesH := handler.NewDependientesHandler(dependienteSvc)
	negociosH := handler.NewNegociosHandler(negocioSvc)
	puntosH := handler.NewPuntosHandler(puntoSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	inventariosH := handler.NewInventariosHandler(inventarioSvc)
	distribucionesH := handler.NewDistribucionesHandler(distribucionSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/token", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes. Role sets per endpoint mirror the front office:
	// superadmin administers usuarios y negocios, propietario opera su
	// negocio, dependiente vende desde su punto.
	auth := r.Group("/", middleware.JWTAuth(cfg.JWTSecret, usuarioRepo))
	{
		superadmin := middleware.RequireRol(model.RolSuperadmin)
		propietario := middleware.RequireRol(model.RolPropietario)
		dependiente := middleware.RequireRol(model.RolDependiente)
		vendedores := middleware.RequireRol(model.RolPropietario, model.RolDependiente)

		auth.GET("/users/me", authH.Me)
		auth.PUT("/user-cambiar-contrasenna", usuariosH.CambiarPassword)

		// Usuarios — superadmin
		auth.POST("/user", superadmin, usuariosH.Crear)
		auth.GET("/users", superadmin, usuariosH.Listar)
		auth.GET("/user/:id", superadmin, usuariosH.Obtener)
		auth.PUT("/user/:id", superadmin, usuariosH.Actualizar)
		auth.DELETE("/user/:id", superadmin, usuariosH.Eliminar)
		auth.GET("/usuarios-contador/:fecha_inicio/:fecha_fin", superadmin, usuariosH.Contador)

		// Dependientes — propietario
		auth.POST("/dependiente", propietario, dependientesH.Crear)
		auth.GET("/dependientes", propietario, dependientesH.Listar)
		auth.GET("/dependiente/:id", propietario, dependientesH.Obtener)
		auth.PUT("/dependiente/:id", propietario, dependientesH.Actualizar)
		auth.PUT("/dependiente-bloquear/:id", propietario, dependientesH.Bloquear)
		auth.PUT("/dependiente-desbloquear/:id", propietario, dependientesH.Desbloquear)
		auth.PUT("/dependiente-cambiar-contrasenna-propietario/:id", propietario, dependientesH.CambiarPassword)

		// Negocios — superadmin administra, propietario lee los suyos
		auth.POST("/negocio", superadmin, negociosH.Crear)
		auth.GET("/negocio", superadmin, negociosH.ListarTodos)
		auth.GET("/negocio/:id", superadmin, negociosH.Obtener)
		auth.PUT("/negocio/:id", superadmin, negociosH.Actualizar)
		auth.DELETE("/negocio/:id", superadmin, negociosH.Eliminar)
		auth.GET("/negocios/", propietario, negociosH.ListarPropios)
		auth.GET("/negocios-contador/:fecha_inicio/:fecha_fin", superadmin, negociosH.Contador)

		// Puntos — propietario
		auth.POST("/punto", propietario, puntosH.Crear)
		auth.GET("/punto/:id", propietario, puntosH.Obtener)
		auth.PUT("/punto/:id", propietario, puntosH.Actualizar)
		auth.DELETE("/punto/:id", propietario, puntosH.Eliminar)
		auth.GET("/puntos/", propietario, puntosH.ListarPropios)
		auth.GET("/puntos-negocio/:id", propietario, puntosH.ListarPorNegocio)
		auth.GET("/puntos-contador/:fecha_inicio/:fecha_fin", superadmin, puntosH.Contador)

		// Productos — propietario
		auth.POST("/producto", propietario, productosH.Crear)
		auth.GET("/producto/:id", propietario, productosH.Obtener)
		auth.PUT("/producto/:id", propietario, productosH.Actualizar)
		auth.DELETE("/producto/:id", propietario, productosH.Eliminar)
		auth.GET("/productos/", propietario, productosH.ListarPropios)
		auth.GET("/productos-negocio/:id", propietario, productosH.ListarPorNegocio)
		auth.GET("/productos-contador/:fecha_inicio/:fecha_fin", superadmin, productosH.Contador)

		// Inventarios — propietario
		auth.POST("/inventario", propietario, inventariosH.Crear)
		auth.GET("/inventario/:id", propietario, inventariosH.Obtener)
		auth.PUT("/inventario/:id", propietario, inventariosH.Actualizar)
		auth.DELETE("/inventario/:id", propietario, inventariosH.Eliminar)
		auth.GET("/inventarios/", propietario, inventariosH.ListarPropios)
		auth.GET("/inventarios-a-distribuir/", propietario, inventariosH.ADistribuir)
		auth.GET("/inventarios-costos-brutos/:fecha_inicio/:fecha_fin", propietario, inventariosH.CostosBrutos)
		auth.GET("/inventarios-exportar", propietario, inventariosH.Exportar)
		auth.GET("/inventarios-contador/:fecha_inicio/:fecha_fin", superadmin, inventariosH.Contador)

		// Distribuciones — propietario, vistas del dependiente por su punto
		auth.POST("/distribucion", propietario, distribucionesH.Crear)
		auth.GET("/distribucion/:id", propietario, distribucionesH.Obtener)
		auth.PUT("/distribucion/:id", propietario, distribucionesH.Actualizar)
		auth.DELETE("/distribucion/:id", propietario, distribucionesH.Eliminar)
		auth.GET("/distribuciones/", propietario, distribucionesH.ListarPropios)
		auth.GET("/distribuciones-venta/", propietario, distribucionesH.DisponiblesVenta)
		auth.GET("/distribuciones-venta-punto/", dependiente, distribucionesH.DisponiblesVentaPunto)
		auth.GET("/distribuciones-venta-punto-existencia/", dependiente, distribucionesH.ExistenciaPunto)
		auth.GET("/distribuciones-venta-resumen/:punto", propietario, distribucionesH.Resumen)
		auth.GET("/distribuciones-periodo/:fecha_inicio/:fecha_fin", propietario, distribucionesH.Periodo)
		auth.GET("/distribuciones-venta-cuadre/:fecha_inicio/:fecha_fin/:punto", propietario, distribucionesH.Cuadre)
		auth.GET("/distribuciones-venta-cuadre-dependiente/:fecha_inicio/:fecha_fin", dependiente, distribucionesH.CuadreDependiente)
		auth.GET("/distribuciones-contador/:fecha_inicio/:fecha_fin", superadmin, distribucionesH.Contador)

		// Ventas — propietario y dependiente
		auth.POST("/venta", vendedores, ventasH.Crear)
		auth.GET("/venta/:id", propietario, ventasH.Obtener)
		auth.PUT("/venta/:id", vendedores, ventasH.Actualizar)
		auth.DELETE("/venta/:id", vendedores, ventasH.Eliminar)
		auth.GET("/ventas", propietario, ventasH.ListarPropias)
		auth.GET("/ventas-punto", dependiente, ventasH.ListarPunto)
		auth.GET("/ventas-periodo/:fecha_inicio/:fecha_fin", propietario, ventasH.Periodo)
		auth.GET("/ventas-brutas-periodo/:fecha_inicio/:fecha_fin", propietario, ventasH.BrutasPeriodo)
		auth.GET("/ventas-utilidades-periodo/:fecha_inicio/:fecha_fin", propietario, ventasH.UtilidadesPeriodo)
		auth.GET("/ventas-contador/:fecha_inicio/:fecha_fin", superadmin, ventasH.Contador)

		// Facturas — propietario y dependiente
		auth.POST("/factura", vendedores, facturasH.Crear)
		auth.GET("/factura/:id", propietario, facturasH.Obtener)
		auth.GET("/factura/:id/pdf", propietario, facturasH.PDF)
		auth.GET("/facturas", propietario, facturasH.Listar)
		auth.DELETE("/factura/:id", vendedores, facturasH.Eliminar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
