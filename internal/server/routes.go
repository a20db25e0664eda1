package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yukiacerium/socialmem/internal/engine"
	"github.com/yukiacerium/socialmem/internal/extract"
	"github.com/yukiacerium/socialmem/internal/social"
)

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// queryTypes parses a comma-separated type filter. Unknown names are a
// caller error.
func queryTypes(r *http.Request, key string) ([]social.MemoryType, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}

	var types []social.MemoryType
	for _, part := range strings.Split(raw, ",") {
		t := social.MemoryType(strings.TrimSpace(part))
		if !t.Valid() {
			return nil, false
		}
		types = append(types, t)
	}
	return types, true
}

func (s *Server) handleAffectionState(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.AffectionState(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Change      int    `json:"change_amount"`
		EventType   string `json:"event_type"`
		Description string `json:"description"`
		Context     string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description required")
		return
	}
	typ := social.EventType(req.EventType)
	if req.EventType != "" && !typ.Valid() {
		writeError(w, http.StatusBadRequest, "unknown event_type")
		return
	}

	result, err := s.engine.RecordAffectionEvent(r.Context(), chi.URLParam(r, "userID"), engine.EventInput{
		Change:      req.Change,
		Type:        typ,
		Description: req.Description,
		Context:     req.Context,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	events, err := s.engine.InteractionHistory(r.Context(), chi.URLParam(r, "userID"), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(events),
		"events": events,
	})
}

func (s *Server) handleBondInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.engine.BondInfo(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleRecordMemory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemoryType string   `json:"memory_type"`
		Content    string   `json:"content"`
		Importance *int     `json:"importance"`
		Tags       []string `json:"tags"`
		Source     string   `json:"source_context_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content required")
		return
	}
	typ := social.MemoryType(req.MemoryType)
	if req.MemoryType != "" && !typ.Valid() {
		writeError(w, http.StatusBadRequest, "unknown memory_type")
		return
	}

	importance := 5
	if req.Importance != nil {
		importance = *req.Importance
	}

	result, err := s.engine.RecordMemory(r.Context(), chi.URLParam(r, "userID"), engine.MemoryInput{
		Type:          typ,
		Content:       req.Content,
		Importance:    importance,
		SourceContext: req.Source,
		Tags:          req.Tags,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleQueryMemories(w http.ResponseWriter, r *http.Request) {
	types, ok := queryTypes(r, "type")
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown memory type in filter")
		return
	}

	memories, err := s.engine.QueryMemories(r.Context(), chi.URLParam(r, "userID"), engine.MemoryQuery{
		Types:         types,
		MinImportance: queryInt(r, "min_importance", 0),
		Limit:         queryInt(r, "limit", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(memories),
		"memories": memories,
	})
}

func (s *Server) handleSearchMemories(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "q parameter required")
		return
	}
	types, ok := queryTypes(r, "type")
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown memory type in filter")
		return
	}

	memories, err := s.engine.SearchMemories(r.Context(), chi.URLParam(r, "userID"), keyword, types, queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":    keyword,
		"count":    len(memories),
		"memories": memories,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.UserSummary(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleProfileText(w http.ResponseWriter, r *http.Request) {
	text, err := s.engine.UserProfileText(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeText(w, text)
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	text, err := s.engine.RenderContext(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeText(w, text)
}

// handleInboundMessage feeds one inbound message through the auto-extract
// matcher. A non-matching message is a normal outcome, not an error.
func (s *Server) handleInboundMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
		Source  string `json:"source_context_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	cand, ok := extract.Match(req.Content)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"extracted": false})
		return
	}

	result, err := s.engine.RecordMemory(r.Context(), chi.URLParam(r, "userID"), engine.MemoryInput{
		Type:          cand.Type,
		Content:       cand.Content,
		Importance:    cand.Importance,
		SourceContext: req.Source,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"extracted":   true,
		"memory_id":   result.MemoryID,
		"memory_type": string(cand.Type),
		"outcome":     result.Outcome,
	})
}
