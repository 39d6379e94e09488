package cartRepo

import "festivo/models"

// CartRepository defines data access for user carts. A user owns at most one
// cart; GetByUser returns nil without error when none exists yet.
type CartRepository interface {
	GetByUser(userID string) (*models.Cart, error)
	// Save upserts the cart keyed by its user.
	Save(cart *models.Cart) error
	Delete(userID string) error
}
