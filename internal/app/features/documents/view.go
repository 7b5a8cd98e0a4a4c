// internal/app/features/documents/view.go
package documents

import (
	"fmt"
	"net/http"

	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
)

// HandleGet returns the document the gate loaded and authorized for
// view.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, http.StatusOK, doc)
}

// HandleDownload serves the document body as a file attachment. The gate
// has already authorized the download action.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	doc, ok := gates.DocumentFrom(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", doc.ID.Hex()+".html"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc.Body))
}
