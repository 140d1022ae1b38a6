package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/auth"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/handlers"
	appsvcs "github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/application/services"
)

// OrderRoutes registers order and issuance endpoints on the provided chi router.
// The router must already authenticate requests; decisions are limited to staff.
func OrderRoutes(r chi.Router, svcs *appsvcs.Services) {
	place := handlers.NewPostOrderHandler(svcs)
	read := handlers.NewGetOrdersHandler(svcs)
	decide := handlers.NewDecideOrderHandler(svcs)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", place.Execute)
		r.Post("/stock", place.ExecuteFromStock)
		r.Get("/me", read.Mine)
		r.Get("/{id}", read.One)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.StaffRoles...))
			r.Get("/", read.All)
			r.Post("/{id}/approve", decide.Approve)
			r.Post("/{id}/reject", decide.Reject)
			r.Post("/{id}/complete", decide.Complete)
		})
	})

	r.Get("/issuances/me", read.MyIssuances)
}
