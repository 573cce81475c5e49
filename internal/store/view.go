package store

import "github.com/google/uuid"

// NotInformed is the default shown for optional text the owner left out.
const NotInformed = "Não informado"

// ImageURLs configures how image references resolve to fetchable URLs.
// Base is the public base URL of this API.
type ImageURLs struct {
	Base              string
	LogoPlaceholder   string
	BannerPlaceholder string
}

func (u ImageURLs) Resolve(id *uuid.UUID, placeholder string) string {
	if id == nil {
		return placeholder
	}
	return u.Base + "/lojas/imagem/" + id.String()
}

// View is the public wire shape shared by persisted records and the
// seed catalog. Every optional field carries an explicit default, so
// the frontend never deals with missing keys.
type View struct {
	ID          string    `json:"id"`
	Name        string    `json:"nome"`
	Category    string    `json:"categoria"`
	Description string    `json:"descricao"`
	Address     string    `json:"endereco"`
	Phone       string    `json:"telefone"`
	HasDelivery bool      `json:"motoboy"`
	Latitude    *float64  `json:"lat,omitempty"`
	Longitude   *float64  `json:"lon,omitempty"`
	OpensAt     string    `json:"abre,omitempty"`
	ClosesAt    string    `json:"fecha,omitempty"`
	Image       string    `json:"imagem"`
	Logo        string    `json:"logo"`
	Banner      string    `json:"banner"`
	Products    []Product `json:"produtos,omitempty"`
}

// NewView normalizes a persisted record into its public shape. This is
// the single place read paths fill defaults and resolve image URLs.
func NewView(s Store, urls ImageURLs) View {
	banner := urls.Resolve(s.BannerID, urls.BannerPlaceholder)

	return View{
		ID:          s.ID.String(),
		Name:        s.Name,
		Category:    s.Category,
		Description: textOrDefault(s.Description),
		Address:     textOrDefault(s.Address),
		Phone:       textOrDefault(s.Phone),
		HasDelivery: s.HasDelivery,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		OpensAt:     stringOrEmpty(s.OpensAt),
		ClosesAt:    stringOrEmpty(s.ClosesAt),
		Image:       banner,
		Logo:        urls.Resolve(s.LogoID, urls.LogoPlaceholder),
		Banner:      banner,
	}
}

func textOrDefault(s *string) string {
	if s == nil || *s == "" {
		return NotInformed
	}
	return *s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
