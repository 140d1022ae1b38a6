package handlers

import (
	pkgvalidator "github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/validator"
	invmodels "github.com/mayesha-3/Ammo-Inventory-Management-System/services/inventory/domain/models"
)

func init() {
	pkgvalidator.RegisterString("caliber", "Must be 1 to 50 characters without control characters", invmodels.ValidCaliber)
}
