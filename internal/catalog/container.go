package catalog

import "gorm.io/gorm"

type CatalogContainer struct {
	Repo    CatalogRepository
	Service CatalogService
	Handler *Handler
}

func NewCatalogContainer(db *gorm.DB) *CatalogContainer {
	repo := NewRepository(db)
	service := NewService(db, repo)
	handler := NewHandler(service)

	return &CatalogContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
