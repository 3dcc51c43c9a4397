// pkg/render/publish.go

package render

import (
	"context"

	"github.com/arbeit-tech/billing-service/pkg/document"
)

// Artifact is a rendered document written to the FileStore.
type Artifact struct {
	Kind   document.Kind
	ID     string
	Path   string
	Output *Output
}

// Publisher loads a stored document, renders it and saves the PDF.
type Publisher struct {
	src      Source
	renderer *Renderer
	files    *FileStore
}

// NewPublisher renders documents loaded from src into files.
func NewPublisher(src Source, renderer *Renderer, files *FileStore) *Publisher {
	return &Publisher{src: src, renderer: renderer, files: files}
}

// Publish renders the document of kind with business id and stores it,
// replacing any earlier artifact for the same id.
func (p *Publisher) Publish(ctx context.Context, kind document.Kind, id string) (*Artifact, error) {
	doc, err := Load(ctx, p.src, kind, id)
	if err != nil {
		return nil, err
	}

	out, err := p.renderer.Render(doc)
	if err != nil {
		return nil, err
	}

	path, err := p.files.Save(ctx, kind, id, out.Bytes)
	if err != nil {
		return nil, err
	}
	return &Artifact{Kind: kind, ID: id, Path: path, Output: out}, nil
}

// Files returns the store artifacts are written to.
func (p *Publisher) Files() *FileStore {
	return p.files
}
