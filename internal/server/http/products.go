package httpserver

import (
	"encoding/json"
	"net/http"
)

type createReq struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	p, err := s.rt.Inventory().AddProduct(req.Name, req.Quantity)
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	p, err := s.rt.Inventory().GetProduct(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, p)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	products := s.rt.Inventory().ListProducts(parseOffset(q.Get("offset")), parseLimit(q.Get("limit")))
	writeJSON(w, map[string]any{"products": products, "count": len(products)})
}

type updateReq struct {
	ID    string `json:"id"`
	Delta int64  `json:"delta"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req updateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	p, err := s.rt.Inventory().UpdateStock(req.ID, req.Delta)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, p)
}

type removeReq struct {
	ID string `json:"id"`
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req removeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	removed, err := s.rt.Inventory().RemoveProduct(req.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"removed": removed})
}
