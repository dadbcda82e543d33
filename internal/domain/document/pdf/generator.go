package pdf

import (
	"bmbat/go_backend/internal/domain/branding"
	"bmbat/go_backend/internal/domain/document"
)

type Generator interface {
	Generate(d document.Document, b branding.Branding) ([]byte, error)
}
