package di

import (
	"sid/internal/importer/interfaces"
	"sid/internal/services"
)

// provideRunner narrows the import service to the slice the scheduler needs.
func provideRunner(service services.ImportServiceInterface) interfaces.RunnerInterface {
	return service
}
