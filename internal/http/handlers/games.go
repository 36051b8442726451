package handlers

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
	"github.com/preston-bernstein/game-library-service/internal/logging"
	"github.com/preston-bernstein/game-library-service/internal/uploads"
)

const (
	imageField = "image"
	// formOverhead is the room left for text fields beyond the image limit.
	formOverhead = 1 << 20
)

// GameService is the catalog surface the HTTP layer needs.
type GameService interface {
	FeaturedGames(ctx context.Context) ([]domaingames.Game, error)
	Search(ctx context.Context, q domaingames.Query) ([]domaingames.Game, error)
	GameByID(ctx context.Context, id int64) (domaingames.Game, error)
	CreateGame(ctx context.Context, in domaingames.NewGame) (domaingames.Game, error)
	UpdateGame(ctx context.Context, id int64, p domaingames.Patch) (domaingames.Game, error)
	DeleteGame(ctx context.Context, id int64) (bool, error)
}

// ImageStore persists uploaded cover images.
type ImageStore interface {
	Save(ctx context.Context, field string, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string) error
	MaxBytes() int64
}

// GamesHandler wires the /api/games routes to the catalog service.
type GamesHandler struct {
	svc    GameService
	images ImageStore
	logger *slog.Logger
}

// NewGamesHandler constructs a GamesHandler.
func NewGamesHandler(svc GameService, images ImageStore, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{svc: svc, images: images, logger: logger}
}

// List returns every game, or those matching the search and category params.
func (h *GamesHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	q := domaingames.NewQuery(r.URL.Query().Get("search"), r.URL.Query().Get("category"))
	list, err := h.svc.Search(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list), logger)
}

// Featured returns the featured games.
func (h *GamesHandler) Featured(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	list, err := h.svc.FeaturedGames(r.Context())
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list), logger)
}

// Get returns a single game. Ids that do not parse are reported as not found.
func (h *GamesHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := domaingames.ParseID(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusNotFound, msgGameNotFound, logger)
		return
	}
	game, err := h.svc.GameByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, game, logger)
}

// Create stores the uploaded image and creates a game from the form fields.
// The image is removed again when the game cannot be created.
func (h *GamesHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.parseForm(w, r, logger) {
		return
	}
	fh := formFile(r, imageField)
	if fh == nil {
		writeServiceError(w, r, uploads.ErrMissingFile, logger)
		return
	}
	imageURL, err := h.images.Save(r.Context(), imageField, fh)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}

	in := domaingames.NewGame{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
		ImageURL:    imageURL,
		DownloadURL: r.PostFormValue("downloadUrl"),
		FileSize:    r.PostFormValue("fileSize"),
		ReleaseDate: r.PostFormValue("releaseDate"),
		Featured:    r.PostFormValue("featured") == "true",
	}
	game, err := h.svc.CreateGame(r.Context(), in)
	if err != nil {
		h.discardImage(r.Context(), imageURL, logger)
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusCreated, game, logger)
}

// Update applies the fields present in the form. A new image replaces the
// stored image URL. An unknown id is 404 before the body is read.
func (h *GamesHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := domaingames.ParseID(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusNotFound, msgGameNotFound, logger)
		return
	}
	if _, err := h.svc.GameByID(r.Context(), id); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	if !h.parseForm(w, r, logger) {
		return
	}

	patch := patchFromForm(r)
	var imageURL string
	if fh := formFile(r, imageField); fh != nil {
		url, err := h.images.Save(r.Context(), imageField, fh)
		if err != nil {
			writeServiceError(w, r, err, logger)
			return
		}
		imageURL = url
		patch.ImageURL = domaingames.Some(url)
	}

	game, err := h.svc.UpdateGame(r.Context(), id, patch)
	if err != nil {
		if imageURL != "" {
			h.discardImage(r.Context(), imageURL, logger)
		}
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, game, logger)
}

// Delete removes a game.
func (h *GamesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := domaingames.ParseID(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusNotFound, msgGameNotFound, logger)
		return
	}
	deleted, err := h.svc.DeleteGame(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	if !deleted {
		writeError(w, r, http.StatusNotFound, msgGameNotFound, logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// parseForm reads a multipart (or urlencoded) body capped just above the
// image limit. It writes the error response and returns false on failure.
func (h *GamesHandler) parseForm(w http.ResponseWriter, r *http.Request, logger *slog.Logger) bool {
	limit := h.images.MaxBytes() + formOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	err := r.ParseMultipartForm(limit)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeServiceError(w, r, uploads.ErrTooLarge, logger)
		return false
	}
	writeError(w, r, http.StatusBadRequest, msgInvalidForm, logger)
	return false
}

func (h *GamesHandler) discardImage(ctx context.Context, url string, logger *slog.Logger) {
	if err := h.images.Delete(context.WithoutCancel(ctx), url); err != nil {
		logging.Warn(logger, "failed to remove orphaned image",
			slog.String(logging.FieldImage, url),
			logging.FieldError, err,
		)
	}
}

func patchFromForm(r *http.Request) domaingames.Patch {
	var p domaingames.Patch
	text := map[string]*domaingames.Field[string]{
		"title":       &p.Title,
		"description": &p.Description,
		"category":    &p.Category,
		"downloadUrl": &p.DownloadURL,
		"fileSize":    &p.FileSize,
		"releaseDate": &p.ReleaseDate,
	}
	for name, field := range text {
		if vs, ok := r.PostForm[name]; ok && len(vs) > 0 {
			*field = domaingames.Some(vs[0])
		}
	}
	if vs, ok := r.PostForm["featured"]; ok && len(vs) > 0 {
		p.Featured = domaingames.Some(vs[0] == "true")
	}
	return p
}

func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func nonNil(list []domaingames.Game) []domaingames.Game {
	if list == nil {
		return []domaingames.Game{}
	}
	return list
}
