package api

import (
	"errors"
	"net/http"

	"github.com/dgallion1/tracemesh/internal/meshstore"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListMeshes(w http.ResponseWriter, r *http.Request) {
	list, err := s.orchestrator.Store().ListMeshes(r.Context())
	if err != nil {
		jsonError(w, "failed to list meshes: "+err.Error(), http.StatusBadGateway)
		return
	}
	if list == nil {
		list = []meshstore.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"meshes": list})
}

func (s *Server) handleGetMesh(w http.ResponseWriter, r *http.Request) {
	rec, err := s.orchestrator.Store().GetMesh(r.Context(), chi.URLParam(r, "meshID"))
	if err != nil {
		jsonError(w, "failed to read mesh: "+err.Error(), http.StatusBadGateway)
		return
	}
	if rec == nil {
		jsonError(w, "mesh not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteMesh(w http.ResponseWriter, r *http.Request) {
	meshID := chi.URLParam(r, "meshID")
	err := s.orchestrator.Store().DeleteMesh(r.Context(), meshID)
	switch {
	case errors.Is(err, meshstore.ErrNotFound):
		jsonError(w, "mesh not found", http.StatusNotFound)
	case err != nil:
		jsonError(w, "failed to delete mesh: "+err.Error(), http.StatusBadGateway)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"mesh_id": meshID, "deleted": true})
	}
}
