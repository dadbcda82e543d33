package handlers

import (
	"context"
	"net/http"
	"time"

	"bmbat/go_backend/internal/app/config"
	"bmbat/go_backend/internal/app/http/handlers/gen"
	"bmbat/go_backend/internal/domain/branding"
	"bmbat/go_backend/internal/domain/document"
	pdfgen "bmbat/go_backend/internal/domain/document/pdf/gofpdf"
)

// Store is the repository boundary: whole-list replace semantics, keyed
// lookups done by the caller filtering on id.
type Store interface {
	Load(ctx context.Context) ([]document.Document, error)
	SaveAll(ctx context.Context, docs []document.Document) error
	LoadBranding(ctx context.Context) (branding.Branding, error)
	SaveBranding(ctx context.Context, b branding.Branding) error
}

type Handlers struct {
	Store Store
	Cfg   config.Config
	Gen   *gen.Service
	PDF   *pdfgen.Generator
}

func New(store Store, cfg config.Config) *Handlers {
	return &Handlers{
		Store: store,
		Cfg:   cfg,
		Gen:   gen.New(cfg, &http.Client{Timeout: 60 * time.Second}),
		PDF:   pdfgen.New(),
	}
}
