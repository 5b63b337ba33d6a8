package handlers

import (
	"net/http"

	"github.com/diewo77/docrender/internal/document"
	"github.com/diewo77/docrender/internal/httpx"
	"github.com/diewo77/docrender/internal/theme"
	"github.com/invopop/jsonschema"
)

// SchemaHandler publishes the JSON Schema of the render inputs.
type SchemaHandler struct {
	document *jsonschema.Schema
	design   *jsonschema.Schema
}

func NewSchemaHandler() *SchemaHandler {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	return &SchemaHandler{
		document: r.Reflect(&document.Data{}),
		design:   r.Reflect(&theme.DesignSettings{}),
	}
}

// Document handles GET /schema/document.
func (h *SchemaHandler) Document(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.document)
}

// Design handles GET /schema/design.
func (h *SchemaHandler) Design(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.design)
}
