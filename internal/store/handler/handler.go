package storehandler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/MicaelTR/ConectaVizinhos/internal/apperror"
	jwtauth "github.com/MicaelTR/ConectaVizinhos/internal/auth/jwt"
	"github.com/MicaelTR/ConectaVizinhos/internal/handlers"
	"github.com/MicaelTR/ConectaVizinhos/internal/image"
	"github.com/MicaelTR/ConectaVizinhos/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = validator.New()

// maxUploadSize bounds the multipart memory buffer for store images.
const maxUploadSize = 10 << 20

//go:generate mockgen -source=handler.go -destination=mocks/mock.go -package=mockstorehandler
type Service interface {
	ListPublic(ctx context.Context, filter store.Filter) ([]store.View, error)
	GetPublic(ctx context.Context, id store.ID) (*store.View, error)
	GetProducts(id store.ID) []store.Product
	GetImage(ctx context.Context, id uuid.UUID) (*image.File, error)
	GetOwn(ctx context.Context, ownerID int) ([]store.View, error)

	CreateStore(ctx context.Context, data store.Store, logo, banner *store.ImageUpload) (*store.Store, error)
	UpdateStore(ctx context.Context, storeID uuid.UUID, ownerID int, patch store.Patch, logo, banner *store.ImageUpload) (*store.Store, error)
	DeleteStore(ctx context.Context, storeID uuid.UUID, ownerID int) error
}

type handler struct {
	service        Service
	authMiddleware func(http.Handler) http.Handler
	urls           store.ImageURLs
	logger         *zap.Logger
}

func New(
	service Service,
	authMiddleware func(http.Handler) http.Handler,
	urls store.ImageURLs,
	logger *zap.Logger,
) handlers.Handler {
	return &handler{
		service:        service,
		authMiddleware: authMiddleware,
		urls:           urls,
		logger:         logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Route("/lojas", func(lojasRouter chi.Router) {
		lojasRouter.Get("/", apperror.Middleware(h.listHandler))
		lojasRouter.Get("/imagem/{id}", apperror.Middleware(h.imageHandler))
		lojasRouter.Get("/{id}", apperror.Middleware(h.getHandler))
		lojasRouter.Get("/{id}/produtos", apperror.Middleware(h.productsHandler))

		lojasRouter.Group(func(privateRouter chi.Router) {
			privateRouter.Use(h.authMiddleware)

			privateRouter.Post("/cadastrar", apperror.Middleware(h.createHandler))
			privateRouter.Get("/minhas", apperror.Middleware(h.mineHandler))
			privateRouter.Put("/{id}", apperror.Middleware(h.updateHandler))
			privateRouter.Delete("/{id}", apperror.Middleware(h.deleteHandler))
		})
	})
}

func (h *handler) listHandler(w http.ResponseWriter, r *http.Request) error {
	filter := store.Filter{
		Category: r.URL.Query().Get("categoria"),
		Name:     r.URL.Query().Get("nome"),
	}

	stores, err := h.service.ListPublic(r.Context(), filter)
	if err != nil {
		return err
	}

	render.JSON(w, r, stores)

	return nil
}

func (h *handler) getHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := store.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return apperror.ErrNotFound
	}

	view, err := h.service.GetPublic(r.Context(), id)
	if err != nil {
		return err
	}

	render.JSON(w, r, view)

	return nil
}

func (h *handler) productsHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := store.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		// unknown stores answer with an empty shelf, not an error
		render.JSON(w, r, []store.Product{})
		return nil
	}

	render.JSON(w, r, h.service.GetProducts(id))

	return nil
}

func (h *handler) imageHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return apperror.ErrNotFound
	}

	file, err := h.service.GetImage(r.Context(), id)
	if err != nil {
		return err
	}
	defer file.Reader.Close()

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))

	if _, err := io.Copy(w, file.Reader); err != nil {
		h.logger.Error("error when streaming image", zap.Error(err))
	}

	return nil
}

func (h *handler) createHandler(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return apperror.ErrDecodeBody
	}

	dto := StoreRequest{
		Name:        r.FormValue("nome"),
		Category:    r.FormValue("categoria"),
		Description: r.FormValue("descricao"),
		Address:     r.FormValue("endereco"),
		Phone:       r.FormValue("telefone"),
		HasDelivery: parseFlag(r.FormValue("motoboy")),
		OpensAt:     r.FormValue("abre"),
		ClosesAt:    r.FormValue("fecha"),
	}

	if err := validate.Struct(dto); err != nil {
		return apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	lat, err := parseCoordinate(r.FormValue("lat"))
	if err != nil {
		return apperror.NewAppError("field lat should be a number")
	}
	lon, err := parseCoordinate(r.FormValue("lon"))
	if err != nil {
		return apperror.NewAppError("field lon should be a number")
	}
	dto.Latitude = lat
	dto.Longitude = lon

	logo, closeLogo, err := formUpload(r, "logo")
	if err != nil {
		return apperror.NewAppError("failed to read logo upload")
	}
	defer closeLogo()

	banner, closeBanner, err := formUpload(r, "banner")
	if err != nil {
		return apperror.NewAppError("failed to read banner upload")
	}
	defer closeBanner()

	userID := r.Context().Value(jwtauth.UserIDContextKey{}).(int)

	createdStore, err := h.service.CreateStore(r.Context(), *dto.ToDomain(userID), logo, banner)
	if err != nil {
		return err
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, store.NewView(*createdStore, h.urls))

	return nil
}

func (h *handler) mineHandler(w http.ResponseWriter, r *http.Request) error {
	userID := r.Context().Value(jwtauth.UserIDContextKey{}).(int)

	stores, err := h.service.GetOwn(r.Context(), userID)
	if err != nil {
		return err
	}

	render.JSON(w, r, stores)

	return nil
}

func (h *handler) updateHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := store.ParseID(chi.URLParam(r, "id"))
	if err != nil || id.IsSeed() {
		// the seed catalog is read-only
		return apperror.ErrNotFound
	}

	patch, logo, banner, cleanup, err := decodePatch(r, h.logger)
	if err != nil {
		return err
	}
	defer cleanup()

	userID := r.Context().Value(jwtauth.UserIDContextKey{}).(int)

	updatedStore, err := h.service.UpdateStore(r.Context(), id.Record(), userID, patch, logo, banner)
	if err != nil {
		return err
	}

	render.JSON(w, r, store.NewView(*updatedStore, h.urls))

	return nil
}

func (h *handler) deleteHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := store.ParseID(chi.URLParam(r, "id"))
	if err != nil || id.IsSeed() {
		return apperror.ErrNotFound
	}

	userID := r.Context().Value(jwtauth.UserIDContextKey{}).(int)

	if err := h.service.DeleteStore(r.Context(), id.Record(), userID); err != nil {
		return err
	}

	render.JSON(w, r, MessageResponse{Message: "Loja removida com sucesso."})

	return nil
}

// formUpload pulls an optional file out of the multipart form. The
// returned closer is a no-op when the field is absent.
func formUpload(r *http.Request, field string) (*store.ImageUpload, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &store.ImageUpload{
		Reader:      file,
		Size:        header.Size,
		ContentType: contentType,
	}, func() { file.Close() }, nil
}

func parseFlag(value string) bool {
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed
	}
	// HTML checkboxes submit "on"
	return value == "on"
}

func parseCoordinate(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
