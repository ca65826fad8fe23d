package server

import (
	"encoding/json"
	"net/http"

	"github.com/bestgames/bestgames/internal/utils"
	"github.com/bestgames/bestgames/pkg/catalog"
	"github.com/bestgames/bestgames/pkg/web"
	g "maragu.dev/gomponents"
)

// view runs the filter and sort engine for one request.
func (s *Server) view(r *http.Request) web.CatalogView {
	games, loadErr := s.Store.Snapshot()
	crit, err := ParseCriteria(r.URL.Query())
	if err != nil {
		utils.Log.Warnf("%s: %v", r.URL.Path, err)
	}
	return web.CatalogView{
		Criteria: crit,
		Stores:   catalog.StoreNames(games),
		Games:    catalog.Apply(games, crit),
		Total:    len(games),
		LoadErr:  loadErr,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	v := s.view(r)

	var node g.Node
	if r.Header.Get("HX-Request") == "true" {
		node = web.GridFragment(v)
	} else {
		node = web.CatalogPage(v)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "HX-Request")
	if err := node.Render(w); err != nil {
		utils.Log.Errorf("rendering catalog: %v", err)
	}
}

type gamesResponse struct {
	Total int            `json:"total"`
	Count int            `json:"count"`
	Games []catalog.Game `json:"games"`
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	v := s.view(r)
	if v.LoadErr != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": catalog.LoadErrorMessage})
		return
	}
	writeJSON(w, http.StatusOK, gamesResponse{Total: v.Total, Count: len(v.Games), Games: v.Games})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, s.Store.Path())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	games, err := s.Store.Snapshot()
	status, code := "ok", http.StatusOK
	if err != nil {
		status, code = "catalog unavailable", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{"status": status, "games": len(games)})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Log.Errorf("encoding response: %v", err)
	}
}
