package server

import (
	"fmt"
	"net/http"

	"planifer-miam/internal/auth"
	"planifer-miam/internal/shopping"
)

func (s *Server) handleGenerateShoppingList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	rng, err := shopping.ParseRange(r.URL.Query().Get("startDate"), s.now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate, expected YYYY-MM-DD")
		return
	}

	lines, err := s.deps.Shopping.Generate(r.Context(), userID, rng)
	if err != nil {
		s.log.Error("shopping list generation failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to generate shopping list")
		return
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.ListGenerated()
	}
	writeJSON(w, http.StatusOK, lines)
}

func (s *Server) handleDownloadShoppingList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	rng, err := shopping.ParseRange(r.URL.Query().Get("startDate"), s.now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate, expected YYYY-MM-DD")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}
	if format != "pdf" && format != "xlsx" {
		writeError(w, http.StatusBadRequest, "unknown format, expected pdf or xlsx")
		return
	}

	lines, err := s.deps.Shopping.Generate(r.Context(), userID, rng)
	if err != nil {
		s.log.Error("shopping list generation failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to generate shopping list")
		return
	}

	var document []byte
	var contentType, filename string
	switch format {
	case "pdf":
		document, err = shopping.RenderPDF(lines, rng)
		contentType = "application/pdf"
		filename = shopping.PDFFilename
	case "xlsx":
		document, err = shopping.RenderXLSX(lines, rng)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = shopping.XLSXFilename
	}
	if err != nil {
		s.log.Error("shopping list rendering failed", "format", format, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to render shopping list")
		return
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.ListGenerated()
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}
