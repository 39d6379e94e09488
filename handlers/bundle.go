package handlers

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	Users    *UserHandler
	Catalog  *CatalogHandler
	Bookings *BookingHandler
}
