package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cafevaldore/tienda-api/internal/application/auth"
	"github.com/cafevaldore/tienda-api/internal/application/cart"
	"github.com/cafevaldore/tienda-api/internal/application/catalog"
	"github.com/cafevaldore/tienda-api/internal/application/chat"
	"github.com/cafevaldore/tienda-api/internal/application/contact"
	"github.com/cafevaldore/tienda-api/internal/application/inventory"
	"github.com/cafevaldore/tienda-api/internal/application/orders"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	CatalogUC    *catalog.UseCase
	CartUC       *cart.UseCase
	OrderUC      *orders.UseCase
	InventoryUC  *inventory.AdminUseCase
	ReportPDF    inventory.ReportPDFGenerator
	ChatUC       *chat.UseCase
	ContactUC    *contact.UseCase
	JWTSecret    string
	AssetVersion string
	Assets       []string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Meta (público)
	metaHandler := NewMetaHandler(deps.AssetVersion, deps.Assets)
	api.Get("/version", metaHandler.Version)
	api.Get("/health", metaHandler.Health)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo (público)
	productHandler := NewProductHandler(deps.CatalogUC)
	api.Get("/productos", productHandler.List)
	api.Get("/productos/:id", productHandler.GetByID)

	// Contacto (público el envío)
	contactHandler := NewContactHandler(deps.ContactUC)
	api.Post("/contacto", contactHandler.Submit)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cuenta
	protected.Get("/auth/perfil", authHandler.Profile)
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Carrito
	cartHandler := NewCartHandler(deps.CartUC)
	carrito := protected.Group("/carrito")
	carrito.Get("/", cartHandler.Get)
	carrito.Post("/", cartHandler.Add)
	carrito.Put("/cantidad", cartHandler.ChangeQuantity)
	carrito.Delete("/:producto", cartHandler.Remove)
	carrito.Delete("/", cartHandler.Clear)

	// Pedidos del cliente
	orderHandler := NewOrderHandler(deps.OrderUC)
	protected.Post("/pedidos", orderHandler.Create)
	protected.Get("/pedidos", orderHandler.ListMine)

	// Chat del cliente
	chatHandler := NewChatHandler(deps.ChatUC)
	chatGroup := protected.Group("/chat")
	chatGroup.Post("/mensajes", chatHandler.Send)
	chatGroup.Get("/mensajes", chatHandler.Messages)
	chatGroup.Get("/sin-leer", chatHandler.Unread)

	// Panel admin (requiere rol admin en el token)
	admin := protected.Group("/admin", RequireAdmin())

	admin.Post("/productos", productHandler.Create)
	admin.Put("/productos/:id", productHandler.Update)
	admin.Delete("/productos/:id", productHandler.Delete)

	admin.Get("/pedidos", orderHandler.List)
	admin.Put("/pedidos/:id/estado", orderHandler.ChangeStatus)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReportPDF)
	inv := admin.Group("/inventario")
	inv.Get("/", inventoryHandler.List)
	inv.Get("/movimientos", inventoryHandler.Movements)
	inv.Get("/reporte", inventoryHandler.Report)
	inv.Get("/reporte.pdf", inventoryHandler.ExportPDF)
	inv.Get("/exportar", inventoryHandler.ExportCSV)
	inv.Put("/:id/stock", inventoryHandler.UpdateStock)
	inv.Post("/:id/ajuste", inventoryHandler.AdjustStock)
	inv.Put("/:id/activo", inventoryHandler.ToggleActive)

	admin.Get("/chat/conversaciones", chatHandler.Conversations)
	admin.Get("/chat/conversaciones/:id/mensajes", chatHandler.ConversationMessages)
	admin.Post("/chat/conversaciones/:id/mensajes", chatHandler.Reply)

	admin.Get("/contacto", contactHandler.List)
	admin.Put("/contacto/:id/leido", contactHandler.MarkRead)
}
