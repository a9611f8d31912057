// Package apitest runs an in-process fake of the gamecard and rating APIs for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

// Server messages, as sent by the real backend.
const (
	MsgNotFound      = "Finner ikke bli-kjent lek med den ID-en"
	MsgTitleNotFound = "Finner ikke bli-kjent lek med den tittelen"
	MsgConflict      = "Bli-kjent lek med den tittelen finnes allerede"
	MsgCreated       = "Bli-kjent lek lagt til!"
	MsgUpdated       = "Bli-kjent lek oppdatert!"
	MsgDeleted       = "Bli-kjent lek slettet!"
	MsgForbidden     = "Du må være logget inn"
)

// Server is a fake backend. All methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	games   map[string]map[string]any
	ratings map[string][]catalog.Rating
	hits    map[string]int
	nextID  int
	token   string
	gate    chan struct{}
}

// New starts a fake server. Close it with Server.Close.
func New() *Server {
	s := &Server{
		games:   make(map[string]map[string]any),
		ratings: make(map[string][]catalog.Rating),
		hits:    make(map[string]int),
		nextID:  1,
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.count)

	r.Route("/api/gamecard", func(r chi.Router) {
		r.Get("/get/id/{id}", s.handleGetByID)
		r.Get("/get/title/{title}", s.handleGetByTitle)
		r.Get("/get/all", s.handleGetAll)
		r.Post("/get/categories", s.handleFilter)

		r.Group(func(r chi.Router) {
			r.Use(s.requireToken)
			r.Put("/create", s.handleCreate)
			r.Put("/update", s.handleUpdate)
			r.Delete("/delete/id/{id}", s.handleDeleteByID)
			r.Delete("/delete/title/{title}", s.handleDeleteByTitle)
		})
	})
	r.Get("/api/rating/get/gamecard/{id}", s.handleRatings)
	return r
}

// GameCardURL is the gamecard API root to hand to api.New.
func (s *Server) GameCardURL() string {
	return s.URL + "/api/gamecard"
}

// RatingURL is the rating API root.
func (s *Server) RatingURL() string {
	return s.URL + "/api/rating"
}

// AddGame stores a raw game payload under id. The payload is returned verbatim
// by /get/id, so optional fields can be left out.
func (s *Server) AddGame(id string, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = payload
}

// SetRatings sets the ratings returned for a game.
func (s *Server) SetRatings(id string, ratings []catalog.Rating) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[id] = ratings
}

// RequireToken makes every write require "Bearer token".
func (s *Server) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Hold blocks every request until the returned release func is called.
func (s *Server) Hold() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.gate = nil
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		gate := s.gate
		s.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleGetByID(w http.ResponseWriter, r *http.Request) {
	id := param(r, "id")
	s.mu.Lock()
	game, ok := s.games[id]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, catalog.MessageResponse{Message: MsgNotFound})
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleGetAll(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.list(nil))
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var filter catalog.CategoryFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		writeJSON(w, http.StatusBadRequest, catalog.MessageResponse{Message: "invalid body"})
		return
	}
	writeJSON(w, http.StatusOK, s.list(filter.Categories))
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			writeJSON(w, http.StatusUnauthorized, catalog.MessageResponse{Message: MsgForbidden})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleGetByTitle(w http.ResponseWriter, r *http.Request) {
	title := param(r, "title")
	s.mu.Lock()
	id, ok := s.findByTitle(title)
	var entry map[string]any
	if ok {
		entry = s.withID(id)
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, catalog.MessageResponse{Message: MsgTitleNotFound})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req catalog.NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, catalog.MessageResponse{Message: "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.findByTitle(req.Title); taken {
		writeJSON(w, http.StatusConflict, catalog.MessageResponse{Message: MsgConflict})
		return
	}
	for {
		if _, taken := s.games[strconv.Itoa(s.nextID)]; !taken {
			break
		}
		s.nextID++
	}
	s.games[strconv.Itoa(s.nextID)] = map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"rules":       req.Rules,
		"categories":  req.Categories,
	}
	writeJSON(w, http.StatusOK, catalog.MessageResponse{Message: MsgCreated})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req catalog.UpdateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, catalog.MessageResponse{Message: "invalid body"})
		return
	}
	id := req.ID.String()

	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, catalog.MessageResponse{Message: MsgNotFound})
		return
	}
	if other, taken := s.findByTitle(req.Title); taken && other != id {
		writeJSON(w, http.StatusConflict, catalog.MessageResponse{Message: MsgConflict})
		return
	}
	game["title"] = req.Title
	game["description"] = req.Description
	game["rules"] = req.Rules
	game["categories"] = req.Categories
	writeJSON(w, http.StatusOK, catalog.MessageResponse{Message: MsgUpdated})
}

func (s *Server) handleDeleteByID(w http.ResponseWriter, r *http.Request) {
	id := param(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		writeJSON(w, http.StatusNotFound, catalog.MessageResponse{Message: MsgNotFound})
		return
	}
	s.deleteLocked(id)
	writeJSON(w, http.StatusOK, catalog.MessageResponse{Message: MsgDeleted})
}

func (s *Server) handleDeleteByTitle(w http.ResponseWriter, r *http.Request) {
	title := param(r, "title")
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.findByTitle(title)
	if !ok {
		writeJSON(w, http.StatusNotFound, catalog.MessageResponse{Message: MsgTitleNotFound})
		return
	}
	s.deleteLocked(id)
	writeJSON(w, http.StatusOK, catalog.MessageResponse{Message: MsgDeleted})
}

// findByTitle returns the id of the game titled title. Callers hold s.mu.
func (s *Server) findByTitle(title string) (string, bool) {
	for id, g := range s.games {
		if g["title"] == title {
			return id, true
		}
	}
	return "", false
}

// deleteLocked removes a game and its ratings. Callers hold s.mu.
func (s *Server) deleteLocked(id string) {
	delete(s.games, id)
	delete(s.ratings, id)
}

// withID copies a stored game and adds its id. Callers hold s.mu.
func (s *Server) withID(id string) map[string]any {
	entry := map[string]any{"id": numericID(id)}
	for k, v := range s.games[id] {
		entry[k] = v
	}
	return entry
}

// Game returns a copy of the stored payload for id.
func (s *Server) Game(id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out, true
}

func (s *Server) handleRatings(w http.ResponseWriter, r *http.Request) {
	id := param(r, "id")
	s.mu.Lock()
	ratings := s.ratings[id]
	s.mu.Unlock()
	if ratings == nil {
		ratings = []catalog.Rating{}
	}
	writeJSON(w, http.StatusOK, ratings)
}

// list returns games with their ids, optionally filtered by category.
func (s *Server) list(categories []string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []map[string]any{}
	for _, id := range ids {
		game := s.games[id]
		if len(categories) > 0 && !hasAny(game["categories"], categories) {
			continue
		}
		out = append(out, s.withID(id))
	}
	return out
}

func hasAny(raw any, wanted []string) bool {
	var have []string
	switch v := raw.(type) {
	case []string:
		have = v
	case []any:
		for _, c := range v {
			if s, ok := c.(string); ok {
				have = append(have, s)
			}
		}
	}
	for _, h := range have {
		for _, w := range wanted {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// numericID mirrors the backend, which serialises ids as numbers.
func numericID(id string) any {
	if n, err := strconv.Atoi(id); err == nil {
		return n
	}
	return id
}

// param returns a decoded URL parameter. chi matches on the raw path, so
// escaped titles arrive still escaped.
func param(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
