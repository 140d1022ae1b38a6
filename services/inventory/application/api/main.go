package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/auth"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/handlers"
	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/application/services"
)

// InventoryRoutes registers inventory endpoints on the provided chi router.
// The router must already authenticate requests; writes are limited to staff.
func InventoryRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", handlers.NewListInventoryHandler(svcs).Execute)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.StaffRoles...))
			r.Get("/low-stock", handlers.NewLowStockHandler(svcs).Execute)
			r.Post("/", handlers.NewPostInventoryHandler(svcs).Execute)
			r.Patch("/{id}", handlers.NewPatchInventoryHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteInventoryHandler(svcs).Execute)
		})

		r.Get("/{id}", handlers.NewGetInventoryHandler(svcs).Execute)
	})
}
