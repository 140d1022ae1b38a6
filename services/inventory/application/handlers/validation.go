package handlers

import (
	pkgvalidator "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/validator"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

const caliberMessage = "Must be 1 to 50 characters without control characters"

func init() {
	pkgvalidator.RegisterString("caliber", caliberMessage, models.ValidCaliber)
}
