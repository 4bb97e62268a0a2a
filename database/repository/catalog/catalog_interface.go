package catalogRepo

import "glowtheory/models"

// CatalogRepository defines read access to the salon catalog and schedule
// constraints. The booking flow never writes these collections.
type CatalogRepository interface {
	// GetServiceByID retrieves a service by its unique ID.
	GetServiceByID(id string) (*models.Service, error)
	// GetActiveServices retrieves all active services.
	GetActiveServices() ([]models.Service, error)
	// GetStylistByID retrieves a stylist by its unique ID.
	GetStylistByID(id string) (*models.Stylist, error)
	// GetStylistsForService retrieves the stylists qualified for a service.
	GetStylistsForService(serviceID string) ([]models.Stylist, error)
	// GetBreaks retrieves a stylist's breaks on a date.
	GetBreaks(stylistID, date string) ([]models.Break, error)
	// GetUnavailability retrieves a stylist's unavailability windows on a date.
	GetUnavailability(stylistID, date string) ([]models.Unavailability, error)
}
