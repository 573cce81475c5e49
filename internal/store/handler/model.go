package storehandler

import (
	"net/http"
	"strings"

	"github.com/MicaelTR/ConectaVizinhos/internal/apperror"
	"github.com/MicaelTR/ConectaVizinhos/internal/store"
	"github.com/MicaelTR/ConectaVizinhos/pkg/types"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type StoreRequest struct {
	Name        string `json:"nome" validate:"required"`
	Category    string `json:"categoria" validate:"required"`
	Description string `json:"descricao"`
	Address     string `json:"endereco"`
	Phone       string `json:"telefone"`
	HasDelivery bool   `json:"motoboy"`
	Latitude    *float64
	Longitude   *float64
	OpensAt     string `json:"abre"`
	ClosesAt    string `json:"fecha"`
}

func (sr *StoreRequest) ToDomain(userID int) *store.Store {
	return &store.Store{
		OwnerID:     userID,
		Name:        sr.Name,
		Category:    sr.Category,
		Description: optional(sr.Description),
		Address:     optional(sr.Address),
		Phone:       optional(sr.Phone),
		HasDelivery: sr.HasDelivery,
		Latitude:    sr.Latitude,
		Longitude:   sr.Longitude,
		OpensAt:     optional(sr.OpensAt),
		ClosesAt:    optional(sr.ClosesAt),
	}
}

// UpdateRequest is the JSON patch body. Nil fields are not touched.
// The flexible types also accept the string values browser form
// serializers produce.
type UpdateRequest struct {
	Name        *string              `json:"nome" validate:"omitempty,min=1"`
	Category    *string              `json:"categoria" validate:"omitempty,min=1"`
	Description *string              `json:"descricao"`
	Address     *string              `json:"endereco"`
	Phone       *string              `json:"telefone"`
	HasDelivery *types.BoolOrString  `json:"motoboy"`
	Latitude    *types.FloatOrString `json:"lat"`
	Longitude   *types.FloatOrString `json:"lon"`
	OpensAt     *string              `json:"abre"`
	ClosesAt    *string              `json:"fecha"`
}

func (ur *UpdateRequest) ToPatch() store.Patch {
	patch := store.Patch{
		Name:        ur.Name,
		Category:    ur.Category,
		Description: ur.Description,
		Address:     ur.Address,
		Phone:       ur.Phone,
		OpensAt:     ur.OpensAt,
		ClosesAt:    ur.ClosesAt,
	}

	if ur.HasDelivery != nil {
		v := bool(*ur.HasDelivery)
		patch.HasDelivery = &v
	}
	if ur.Latitude != nil {
		v := float64(*ur.Latitude)
		patch.Latitude = &v
	}
	if ur.Longitude != nil {
		v := float64(*ur.Longitude)
		patch.Longitude = &v
	}

	return patch
}

type MessageResponse struct {
	Message string `json:"message"`
}

// decodePatch reads an update request from either a multipart form or a
// JSON body. The returned cleanup closes any opened upload files.
func decodePatch(r *http.Request, logger *zap.Logger) (store.Patch, *store.ImageUpload, *store.ImageUpload, func(), error) {
	noop := func() {}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return decodeMultipartPatch(r, logger)
	}

	var dto UpdateRequest
	if err := render.DecodeJSON(r.Body, &dto); err != nil {
		logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return store.Patch{}, nil, nil, noop, apperror.ErrDecodeBody
	}

	if err := validate.Struct(dto); err != nil {
		return store.Patch{}, nil, nil, noop, apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	return dto.ToPatch(), nil, nil, noop, nil
}

func decodeMultipartPatch(r *http.Request, logger *zap.Logger) (store.Patch, *store.ImageUpload, *store.ImageUpload, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return store.Patch{}, nil, nil, noop, apperror.ErrDecodeBody
	}

	var dto UpdateRequest

	if v, ok := formField(r, "nome"); ok {
		dto.Name = &v
	}
	if v, ok := formField(r, "categoria"); ok {
		dto.Category = &v
	}
	if v, ok := formField(r, "descricao"); ok {
		dto.Description = &v
	}
	if v, ok := formField(r, "endereco"); ok {
		dto.Address = &v
	}
	if v, ok := formField(r, "telefone"); ok {
		dto.Phone = &v
	}
	if v, ok := formField(r, "abre"); ok {
		dto.OpensAt = &v
	}
	if v, ok := formField(r, "fecha"); ok {
		dto.ClosesAt = &v
	}
	if v, ok := formField(r, "motoboy"); ok {
		flag := types.BoolOrString(parseFlag(v))
		dto.HasDelivery = &flag
	}
	if v, ok := formField(r, "lat"); ok {
		parsed, err := parseCoordinate(v)
		if err != nil {
			return store.Patch{}, nil, nil, noop, apperror.NewAppError("field lat should be a number")
		}
		if parsed != nil {
			f := types.FloatOrString(*parsed)
			dto.Latitude = &f
		}
	}
	if v, ok := formField(r, "lon"); ok {
		parsed, err := parseCoordinate(v)
		if err != nil {
			return store.Patch{}, nil, nil, noop, apperror.NewAppError("field lon should be a number")
		}
		if parsed != nil {
			f := types.FloatOrString(*parsed)
			dto.Longitude = &f
		}
	}

	if err := validate.Struct(dto); err != nil {
		return store.Patch{}, nil, nil, noop, apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	logo, closeLogo, err := formUpload(r, "logo")
	if err != nil {
		return store.Patch{}, nil, nil, noop, apperror.NewAppError("failed to read logo upload")
	}

	banner, closeBanner, err := formUpload(r, "banner")
	if err != nil {
		closeLogo()
		return store.Patch{}, nil, nil, noop, apperror.NewAppError("failed to read banner upload")
	}

	cleanup := func() {
		closeLogo()
		closeBanner()
	}

	return dto.ToPatch(), logo, banner, cleanup, nil
}

func formField(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
