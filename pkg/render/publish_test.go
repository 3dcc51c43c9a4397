// pkg/render/publish_test.go

package render_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/render"
	"github.com/arbeit-tech/billing-service/pkg/store"
)

func Test_Publish_RendersAndStoresInvoice(t *testing.T) {
	// setup
	ctx := context.Background()
	mem := store.NewMemory()
	files := render.NewFileStore(t.TempDir())
	pub := render.NewPublisher(mem, render.NewRenderer(), files)

	// arrange
	require.NoError(t, mem.CreateInvoice(ctx, storedInvoice()))

	// act
	art, err := pub.Publish(ctx, document.KindInvoice, "AT-I-202403001")

	// assert
	require.NoError(t, err)
	assert.Equal(t, files.Path(document.KindInvoice, "AT-I-202403001"), art.Path)
	data, err := os.ReadFile(art.Path)
	require.NoError(t, err)
	assert.Equal(t, art.Output.Bytes, data)
}

func Test_Publish_When_DocumentMissing_WritesNothing(t *testing.T) {
	ctx := context.Background()
	files := render.NewFileStore(t.TempDir())
	pub := render.NewPublisher(store.NewMemory(), render.NewRenderer(), files)

	_, err := pub.Publish(ctx, document.KindQuotation, "AT-Q-202403001")

	assert.ErrorIs(t, err, document.ErrNotFound)
	assert.NoFileExists(t, files.Path(document.KindQuotation, "AT-Q-202403001"))
}
