package tests

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/MicaelTR/ConectaVizinhos/internal/store"
)

const (
	ownerID = 1
	otherID = 2
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *APITestSuite) buildStoreForm(fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		s.Require().NoError(writer.WriteField(key, value))
	}
	s.Require().NoError(writer.Close())

	return body, writer.FormDataContentType()
}

func (s *APITestSuite) createStore(fields map[string]string) *store.View {
	body, contentType := s.buildStoreForm(fields)

	req := s.authorizedRequest(http.MethodPost, s.baseUrl+"/lojas/cadastrar", body, ownerID)
	req.Header.Set("Content-Type", contentType)

	response, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusCreated, response.StatusCode)

	view, err := decodeResponseBody[store.View](response)
	s.Require().NoError(err)

	return view
}

func (s *APITestSuite) TestEmptyCatalogFallsBackToSeeds() {
	response, err := http.Get(s.baseUrl + "/lojas")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, response.StatusCode)

	views, err := decodeResponseBody[[]store.View](response)
	s.Require().NoError(err)

	s.Len(*views, 4)
	s.Equal("Padaria do João", (*views)[0].Name)
}

func (s *APITestSuite) TestSeedStoreDetails() {
	response, err := http.Get(s.baseUrl + "/lojas/1")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, response.StatusCode)

	view, err := decodeResponseBody[store.View](response)
	s.Require().NoError(err)

	s.Equal("Padaria do João", view.Name)
	s.NotEmpty(view.Products)

	response, err = http.Get(s.baseUrl + "/lojas/999")
	s.Require().NoError(err)
	s.Equal(http.StatusNotFound, response.StatusCode)
	response.Body.Close()
}

func (s *APITestSuite) TestSeedProducts() {
	response, err := http.Get(s.baseUrl + "/lojas/2/produtos")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, response.StatusCode)

	products, err := decodeResponseBody[[]store.Product](response)
	s.Require().NoError(err)

	s.NotEmpty(*products)
}

func (s *APITestSuite) TestCreateRequiresAuth() {
	body, contentType := s.buildStoreForm(map[string]string{
		"nome":      "Padaria Sem Dono",
		"categoria": "padaria",
	})

	response, err := http.Post(s.baseUrl+"/lojas/cadastrar", contentType, body)
	s.Require().NoError(err)
	s.Equal(http.StatusUnauthorized, response.StatusCode)
	response.Body.Close()
}

func (s *APITestSuite) TestStoreLifecycle() {
	created := s.createStore(map[string]string{
		"nome":      "Lanchonete do Zé",
		"categoria": "lanchonete",
		"descricao": "Salgados na hora",
		"motoboy":   "true",
	})

	s.Equal("Lanchonete do Zé", created.Name)
	s.True(created.HasDelivery)

	// a persisted store takes over from the seed fallback
	response, err := http.Get(s.baseUrl + "/lojas")
	s.Require().NoError(err)

	views, err := decodeResponseBody[[]store.View](response)
	s.Require().NoError(err)
	s.Len(*views, 1)
	s.Equal(created.ID, (*views)[0].ID)

	// only the owner sees it under /minhas
	req := s.authorizedRequest(http.MethodGet, s.baseUrl+"/lojas/minhas", nil, ownerID)
	response, err = http.DefaultClient.Do(req)
	s.Require().NoError(err)

	mine, err := decodeResponseBody[[]store.View](response)
	s.Require().NoError(err)
	s.Len(*mine, 1)

	req = s.authorizedRequest(http.MethodGet, s.baseUrl+"/lojas/minhas", nil, otherID)
	response, err = http.DefaultClient.Do(req)
	s.Require().NoError(err)

	theirs, err := decodeResponseBody[[]store.View](response)
	s.Require().NoError(err)
	s.Empty(*theirs)

	// another user cannot touch it
	req = s.authorizedRequest(
		http.MethodDelete,
		fmt.Sprintf("%s/lojas/%s", s.baseUrl, created.ID),
		nil,
		otherID,
	)
	response, err = http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.Equal(http.StatusNotFound, response.StatusCode)
	response.Body.Close()

	// the owner renames it
	req = s.authorizedRequest(
		http.MethodPut,
		fmt.Sprintf("%s/lojas/%s", s.baseUrl, created.ID),
		strings.NewReader(`{"nome":"Lanchonete Nova"}`),
		ownerID,
	)
	req.Header.Set("Content-Type", "application/json")
	response, err = http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, response.StatusCode)

	renamed, err := decodeResponseBody[store.View](response)
	s.Require().NoError(err)
	s.Equal("Lanchonete Nova", renamed.Name)
	s.Equal("lanchonete", renamed.Category)

	// and removes it
	req = s.authorizedRequest(
		http.MethodDelete,
		fmt.Sprintf("%s/lojas/%s", s.baseUrl, created.ID),
		nil,
		ownerID,
	)
	response, err = http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, response.StatusCode)

	message, err := decodeResponseBody[messageResponse](response)
	s.Require().NoError(err)
	s.Equal("Loja removida com sucesso.", message.Message)

	response, err = http.Get(fmt.Sprintf("%s/lojas/%s", s.baseUrl, created.ID))
	s.Require().NoError(err)
	s.Equal(http.StatusNotFound, response.StatusCode)
	response.Body.Close()
}

func (s *APITestSuite) TestCategoryFilter() {
	s.createStore(map[string]string{
		"nome":      "Padaria Central",
		"categoria": "padaria",
	})
	s.createStore(map[string]string{
		"nome":      "Mercadinho Bom Preço",
		"categoria": "mercado",
	})

	response, err := http.Get(s.baseUrl + "/lojas?categoria=PADARIA")
	s.Require().NoError(err)

	views, err := decodeResponseBody[[]store.View](response)
	s.Require().NoError(err)
	s.Len(*views, 1)
	s.Equal("Padaria Central", (*views)[0].Name)

	// a filter that matches nothing still falls back to the seeds
	response, err = http.Get(s.baseUrl + "/lojas?categoria=farmacia")
	s.Require().NoError(err)

	views, err = decodeResponseBody[[]store.View](response)
	s.Require().NoError(err)
	s.Len(*views, 4)
}
