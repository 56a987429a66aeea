package di

import (
	mediaService "bookable/internal/domains/media/service"
	serviceManager "bookable/internal/domains/service/manager"
)

// ProvideImageResolver lets the service manager resolve image URLs through
// the media domain without depending on it directly.
func ProvideImageResolver(media mediaService.Media) serviceManager.ImageResolver {
	return media
}
