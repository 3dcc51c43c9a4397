// pkg/render/inspect.go

package render

import (
	"bytes"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Inspection never needs pdfcpu's user config directory.
	api.DisableConfigDir()
}

// PageCount validates a PDF and returns its number of pages.
func PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, &RenderError{Op: "inspect", Err: err}
	}
	return n, nil
}

// Inspect reports the page count of the PDF stored at path.
func Inspect(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &RenderError{Op: "inspect", Path: path, Err: err}
	}
	n, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, &RenderError{Op: "inspect", Path: path, Err: err}
	}
	return n, nil
}
