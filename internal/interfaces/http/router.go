package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-api/internal/application/auth"
	"github.com/tu-usuario/backoffice-api/internal/application/inventory"
	"github.com/tu-usuario/backoffice-api/internal/application/proposal"
	"github.com/tu-usuario/backoffice-api/internal/application/revshare"
	"github.com/tu-usuario/backoffice-api/internal/application/usecase"
)

// Páginas del backoffice sobre las que se evalúa visibilidad por rol.
const (
	PageClients   = "clients"
	PagePartners  = "partners"
	PageItems     = "items"
	PageSites     = "sites"
	PageInventory = "inventory"
	PageProposals = "proposals"
)

// FeatureReorderAgreements botón de reordenar la cascada en la página de clientes.
const FeatureReorderAgreements = "reorder_agreements"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC      *usecase.ClientUseCase
	PartnerUC     *usecase.PartnerUseCase
	ItemUC        *usecase.ItemUseCase
	SiteUC        *usecase.SiteUseCase
	LedgerUC      *inventory.LedgerUseCase
	RevshareUC    *revshare.UseCase
	ProposalUC    *proposal.UseCase
	AuthUC        *auth.AuthUseCase
	PermissionSvc *usecase.PermissionService
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Firma y declinación de propuestas (público: el token es la credencial)
	proposalHandler := NewProposalHandler(deps.ProposalUC)
	api.Post("/proposals/sign/:token", proposalHandler.Sign)
	api.Post("/proposals/decline/:token", proposalHandler.Decline)

	// Rutas protegidas (requieren Bearer Token + página visible para el rol)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clients: CRUD, gastos, cascada y acuerdos de revenue share
	clients := protected.Group("/clients", RequirePage(PageClients, deps.PermissionSvc))
	clientHandler := NewClientHandler(deps.ClientUC, deps.RevshareUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Post("/:id/expenses", clientHandler.AddExpense)
	clients.Get("/:id/expenses", clientHandler.ListExpenses)
	clients.Get("/:id/waterfall", clientHandler.Waterfall)

	revshareHandler := NewRevshareHandler(deps.RevshareUC)
	clients.Post("/:id/revenue-shares", revshareHandler.Create)
	clients.Get("/:id/revenue-shares", revshareHandler.List)
	clients.Post("/:id/revenue-shares/reorder",
		RequireFeature(PageClients, FeatureReorderAgreements, deps.PermissionSvc),
		revshareHandler.Reorder)

	clients.Get("/:id/proposals", proposalHandler.ListByClient)

	// Operaciones sobre recursos hijos direccionados por su propio ID
	protected.Delete("/expenses/:expenseId", RequirePage(PageClients, deps.PermissionSvc), clientHandler.DeleteExpense)
	protected.Put("/revenue-shares/:agreementId", RequirePage(PageClients, deps.PermissionSvc), revshareHandler.Update)
	protected.Delete("/revenue-shares/:agreementId", RequirePage(PageClients, deps.PermissionSvc), revshareHandler.Delete)

	// Partners
	partners := protected.Group("/partners", RequirePage(PagePartners, deps.PermissionSvc))
	partnerHandler := NewPartnerHandler(deps.PartnerUC, deps.RevshareUC)
	partners.Post("/", partnerHandler.Create)
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id", partnerHandler.GetByID)
	partners.Put("/:id", partnerHandler.Update)
	partners.Delete("/:id", partnerHandler.Delete)
	partners.Get("/:id/summary", partnerHandler.Summary)

	// Items (catálogo; stock e historial vienen del ledger)
	items := protected.Group("/items", RequirePage(PageItems, deps.PermissionSvc))
	itemHandler := NewItemHandler(deps.ItemUC)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.LowStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/stock", inventoryHandler.ItemStock)
	items.Get("/:id/transactions", inventoryHandler.HistoryByItem)

	// Sites
	sites := protected.Group("/sites", RequirePage(PageSites, deps.PermissionSvc))
	siteHandler := NewSiteHandler(deps.SiteUC, deps.LedgerUC)
	sites.Post("/", siteHandler.Create)
	sites.Get("/", siteHandler.List)
	sites.Get("/:id", siteHandler.GetByID)
	sites.Put("/:id", siteHandler.Update)
	sites.Delete("/:id", siteHandler.Delete)
	sites.Post("/:id/empty", siteHandler.Empty)
	sites.Get("/:id/transactions", inventoryHandler.HistoryBySite)

	// Inventory ledger (movimientos de stock)
	invGroup := protected.Group("/inventory", RequirePage(PageInventory, deps.PermissionSvc))
	invGroup.Post("/check-in", inventoryHandler.CheckIn)
	invGroup.Post("/check-out", inventoryHandler.CheckOut)
	invGroup.Post("/transfer", inventoryHandler.Transfer)

	// Proposals (protegido; firma/declinación quedaron arriba como públicas)
	proposals := protected.Group("/proposals", RequirePage(PageProposals, deps.PermissionSvc))
	proposals.Post("/", proposalHandler.Create)
	proposals.Get("/", proposalHandler.List)
	proposals.Get("/:id", proposalHandler.GetByID)
	proposals.Post("/:id/send", proposalHandler.Send)
}
