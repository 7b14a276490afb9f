package venue_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"datenight/internal/config"
	"datenight/internal/repositories"
	"datenight/internal/services"
)

var Module = fx.Provide(
	provideVenueRepo, provideVenueService)

func provideVenueRepo(db *gorm.DB) repositories.VenueRepository {
	return repositories.NewVenueRepository(db)
}

func provideVenueService(venueRepo repositories.VenueRepository, cfg config.CatalogConfig) services.VenueServiceInterface {
	return services.NewVenueService(venueRepo, cfg)
}
