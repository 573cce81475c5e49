package storehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MicaelTR/ConectaVizinhos/internal/apperror"
	jwtauth "github.com/MicaelTR/ConectaVizinhos/internal/auth/jwt"
	"github.com/MicaelTR/ConectaVizinhos/internal/image"
	"github.com/MicaelTR/ConectaVizinhos/internal/store"
	mockstorehandler "github.com/MicaelTR/ConectaVizinhos/internal/store/handler/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
)

const testUserID = 7

var ErrUnexpected = errors.New("unexpected error")

var testURLs = store.ImageURLs{
	Base:              "http://localhost:3000",
	LogoPlaceholder:   "https://placeholder/logo.png",
	BannerPlaceholder: "https://placeholder/banner.png",
}

func testAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), jwtauth.UserIDContextKey{}, testUserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestRouter(service Service) chi.Router {
	router := chi.NewRouter()
	New(service, testAuthMiddleware, testURLs, zap.NewNop()).Register(router)
	return router
}

func TestHandler_listHandler(t *testing.T) {
	type mockBehavior func(s *mockstorehandler.MockService)

	testTable := []struct {
		name               string
		target             string
		mockBehavior       mockBehavior
		expectedStatusCode int
		expectedNames      []string
	}{
		{
			name:   "OK",
			target: "/lojas",
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().ListPublic(gomock.Any(), store.Filter{}).Return([]store.View{
					{ID: "1", Name: "Padaria do João"},
				}, nil)
			},
			expectedStatusCode: 200,
			expectedNames:      []string{"Padaria do João"},
		},
		{
			name:   "Filters pass through",
			target: "/lojas?categoria=mercado&nome=ana",
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().ListPublic(gomock.Any(), store.Filter{Category: "mercado", Name: "ana"}).
					Return([]store.View{{ID: "2", Name: "Mercadinho da Ana"}}, nil)
			},
			expectedStatusCode: 200,
			expectedNames:      []string{"Mercadinho da Ana"},
		},
		{
			name:   "Service unexpected failure",
			target: "/lojas",
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().ListPublic(gomock.Any(), store.Filter{}).Return(nil, ErrUnexpected)
			},
			expectedStatusCode: 500,
		},
	}

	for _, tc := range testTable {
		t.Run(tc.name, func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()

			service := mockstorehandler.NewMockService(c)
			tc.mockBehavior(service)

			router := newTestRouter(service)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)

			if tc.expectedNames != nil {
				var views []store.View
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
				require.Len(t, views, len(tc.expectedNames))
				for i, name := range tc.expectedNames {
					assert.Equal(t, name, views[i].Name)
				}
			}
		})
	}
}

func TestHandler_getHandler(t *testing.T) {
	recordID := uuid.New()

	type mockBehavior func(s *mockstorehandler.MockService)

	testTable := []struct {
		name               string
		target             string
		mockBehavior       mockBehavior
		expectedStatusCode int
	}{
		{
			name:   "OK persisted",
			target: "/lojas/" + recordID.String(),
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().GetPublic(gomock.Any(), store.RecordID(recordID)).
					Return(&store.View{ID: recordID.String()}, nil)
			},
			expectedStatusCode: 200,
		},
		{
			name:   "OK seed",
			target: "/lojas/1",
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().GetPublic(gomock.Any(), store.SeedID(1)).
					Return(&store.View{ID: "1"}, nil)
			},
			expectedStatusCode: 200,
		},
		{
			name:               "Malformed id",
			target:             "/lojas/not-an-id",
			mockBehavior:       func(s *mockstorehandler.MockService) {},
			expectedStatusCode: 404,
		},
		{
			name:   "Unknown store",
			target: "/lojas/" + recordID.String(),
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().GetPublic(gomock.Any(), store.RecordID(recordID)).
					Return(nil, apperror.ErrNotFound)
			},
			expectedStatusCode: 404,
		},
	}

	for _, tc := range testTable {
		t.Run(tc.name, func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()

			service := mockstorehandler.NewMockService(c)
			tc.mockBehavior(service)

			router := newTestRouter(service)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)
		})
	}
}

func TestHandler_productsHandler(t *testing.T) {
	type mockBehavior func(s *mockstorehandler.MockService)

	testTable := []struct {
		name          string
		target        string
		mockBehavior  mockBehavior
		expectedCount int
	}{
		{
			name:   "Seed store with products",
			target: "/lojas/1/produtos",
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().GetProducts(store.SeedID(1)).Return([]store.Product{
					{Name: "Pão Francês", Price: 0.80},
					{Name: "Bolo de Chocolate", Price: 25.00},
				})
			},
			expectedCount: 2,
		},
		{
			name:          "Malformed id answers an empty shelf",
			target:        "/lojas/not-an-id/produtos",
			mockBehavior:  func(s *mockstorehandler.MockService) {},
			expectedCount: 0,
		},
	}

	for _, tc := range testTable {
		t.Run(tc.name, func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()

			service := mockstorehandler.NewMockService(c)
			tc.mockBehavior(service)

			router := newTestRouter(service)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, 200, w.Code)

			var products []store.Product
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
			assert.Len(t, products, tc.expectedCount)
		})
	}
}

func TestHandler_imageHandler(t *testing.T) {
	imageID := uuid.New()

	t.Run("OK", func(t *testing.T) {
		c := gomock.NewController(t)
		defer c.Finish()

		service := mockstorehandler.NewMockService(c)
		service.EXPECT().GetImage(gomock.Any(), imageID).Return(&image.File{
			ID:          imageID,
			ContentType: "image/png",
			Size:        4,
			Reader:      io.NopCloser(bytes.NewBufferString("data")),
		}, nil)

		router := newTestRouter(service)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/lojas/imagem/"+imageID.String(), nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "data", w.Body.String())
	})

	t.Run("Malformed id", func(t *testing.T) {
		c := gomock.NewController(t)
		defer c.Finish()

		service := mockstorehandler.NewMockService(c)

		router := newTestRouter(service)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/lojas/imagem/123", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, 404, w.Code)
	})
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHandler_createHandler(t *testing.T) {
	recordID := uuid.New()

	type mockBehavior func(s *mockstorehandler.MockService)

	testTable := []struct {
		name               string
		fields             map[string]string
		mockBehavior       mockBehavior
		expectedStatusCode int
	}{
		{
			name: "OK",
			fields: map[string]string{
				"nome":      "Padaria X",
				"categoria": "padaria",
				"motoboy":   "on",
				"lat":       "-23.55",
			},
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().CreateStore(gomock.Any(), gomock.Any(), nil, nil).DoAndReturn(
					func(_ context.Context, data store.Store, _, _ *store.ImageUpload) (*store.Store, error) {
						assert.Equal(t, testUserID, data.OwnerID)
						assert.Equal(t, "Padaria X", data.Name)
						assert.True(t, data.HasDelivery)
						if assert.NotNil(t, data.Latitude) {
							assert.InDelta(t, -23.55, *data.Latitude, 0.001)
						}
						data.ID = recordID
						return &data, nil
					},
				)
			},
			expectedStatusCode: 201,
		},
		{
			name:               "Missing nome",
			fields:             map[string]string{"categoria": "padaria"},
			mockBehavior:       func(s *mockstorehandler.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:               "Missing categoria",
			fields:             map[string]string{"nome": "Padaria X"},
			mockBehavior:       func(s *mockstorehandler.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name: "Non numeric lat",
			fields: map[string]string{
				"nome":      "Padaria X",
				"categoria": "padaria",
				"lat":       "abc",
			},
			mockBehavior:       func(s *mockstorehandler.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name: "Service unexpected failure",
			fields: map[string]string{
				"nome":      "Padaria X",
				"categoria": "padaria",
			},
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().CreateStore(gomock.Any(), gomock.Any(), nil, nil).Return(nil, ErrUnexpected)
			},
			expectedStatusCode: 500,
		},
	}

	for _, tc := range testTable {
		t.Run(tc.name, func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()

			service := mockstorehandler.NewMockService(c)
			tc.mockBehavior(service)

			router := newTestRouter(service)

			body, contentType := multipartBody(t, tc.fields)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/lojas/cadastrar", body)
			req.Header.Set("Content-Type", contentType)

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)

			if tc.expectedStatusCode == 201 {
				var view store.View
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
				assert.Equal(t, recordID.String(), view.ID)
				assert.Equal(t, testURLs.LogoPlaceholder, view.Logo)
			}
		})
	}
}

func TestHandler_mineHandler(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()

	service := mockstorehandler.NewMockService(c)
	service.EXPECT().GetOwn(gomock.Any(), testUserID).Return([]store.View{}, nil)

	router := newTestRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/lojas/minhas", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHandler_updateHandler(t *testing.T) {
	recordID := uuid.New()

	type mockBehavior func(s *mockstorehandler.MockService)

	testTable := []struct {
		name               string
		target             string
		inputBody          string
		mockBehavior       mockBehavior
		expectedStatusCode int
	}{
		{
			name:      "OK",
			target:    "/lojas/" + recordID.String(),
			inputBody: `{"nome":"Padaria Y","motoboy":"true","lat":"-23.55"}`,
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().UpdateStore(gomock.Any(), recordID, testUserID, gomock.Any(), nil, nil).DoAndReturn(
					func(_ context.Context, _ uuid.UUID, _ int, patch store.Patch, _, _ *store.ImageUpload) (*store.Store, error) {
						if assert.NotNil(t, patch.Name) {
							assert.Equal(t, "Padaria Y", *patch.Name)
						}
						if assert.NotNil(t, patch.HasDelivery) {
							assert.True(t, *patch.HasDelivery)
						}
						if assert.NotNil(t, patch.Latitude) {
							assert.InDelta(t, -23.55, *patch.Latitude, 0.001)
						}
						assert.Nil(t, patch.Category)
						return &store.Store{ID: recordID, OwnerID: testUserID, Name: *patch.Name, Category: "padaria"}, nil
					},
				)
			},
			expectedStatusCode: 200,
		},
		{
			name:               "Seed stores are read-only",
			target:             "/lojas/1",
			inputBody:          `{"nome":"Padaria Y"}`,
			mockBehavior:       func(s *mockstorehandler.MockService) {},
			expectedStatusCode: 404,
		},
		{
			name:               "Empty nome rejected",
			target:             "/lojas/" + recordID.String(),
			inputBody:          `{"nome":""}`,
			mockBehavior:       func(s *mockstorehandler.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:      "Someone else's store",
			target:    "/lojas/" + recordID.String(),
			inputBody: `{"nome":"Padaria Y"}`,
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().UpdateStore(gomock.Any(), recordID, testUserID, gomock.Any(), nil, nil).
					Return(nil, apperror.ErrNotFound)
			},
			expectedStatusCode: 404,
		},
	}

	for _, tc := range testTable {
		t.Run(tc.name, func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()

			service := mockstorehandler.NewMockService(c)
			tc.mockBehavior(service)

			router := newTestRouter(service)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, tc.target, bytes.NewBufferString(tc.inputBody))
			req.Header.Set("Content-Type", "application/json")

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)
		})
	}
}

func TestHandler_deleteHandler(t *testing.T) {
	recordID := uuid.New()

	type mockBehavior func(s *mockstorehandler.MockService)

	testTable := []struct {
		name               string
		target             string
		mockBehavior       mockBehavior
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name:   "OK",
			target: "/lojas/" + recordID.String(),
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().DeleteStore(gomock.Any(), recordID, testUserID).Return(nil)
			},
			expectedStatusCode: 200,
			expectedBody:       `{"message":"Loja removida com sucesso."}`,
		},
		{
			name:               "Seed stores are read-only",
			target:             "/lojas/1",
			mockBehavior:       func(s *mockstorehandler.MockService) {},
			expectedStatusCode: 404,
		},
		{
			name:   "Someone else's store",
			target: "/lojas/" + recordID.String(),
			mockBehavior: func(s *mockstorehandler.MockService) {
				s.EXPECT().DeleteStore(gomock.Any(), recordID, testUserID).
					Return(apperror.ErrNotFound)
			},
			expectedStatusCode: 404,
		},
	}

	for _, tc := range testTable {
		t.Run(tc.name, func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()

			service := mockstorehandler.NewMockService(c)
			tc.mockBehavior(service)

			router := newTestRouter(service)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, tc.target, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, w.Body.String())
			}
		})
	}
}
