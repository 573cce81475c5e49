// Package seed holds the built-in example stores shown while the real
// catalog is still empty. The catalog is assembled once at startup and
// never mutated, so it is safe to share across requests.
package seed

import (
	"strconv"

	"github.com/MicaelTR/ConectaVizinhos/internal/store"
)

type Catalog struct {
	stores   []store.View
	products map[int][]store.Product
}

func NewCatalog() *Catalog {
	return &Catalog{
		stores:   seedStores(),
		products: seedProducts(),
	}
}

// Stores returns a copy of the seed listing.
func (c *Catalog) Stores() []store.View {
	out := make([]store.View, len(c.stores))
	copy(out, c.stores)
	return out
}

// ByID scans the catalog for the given seed id.
func (c *Catalog) ByID(id int) (*store.View, bool) {
	for _, s := range c.stores {
		if s.ID == strconv.Itoa(id) {
			view := s
			return &view, true
		}
	}
	return nil, false
}

// Products returns the static product list of a seed store. Stores
// without one get an empty list, never nil.
func (c *Catalog) Products(id int) []store.Product {
	products, ok := c.products[id]
	if !ok {
		return []store.Product{}
	}
	out := make([]store.Product, len(products))
	copy(out, products)
	return out
}

func seedStores() []store.View {
	return []store.View{
		{
			ID:          "1",
			Name:        "Padaria do João",
			Category:    "padaria",
			Description: "Pães fresquinhos e bolos caseiros todos os dias.",
			Address:     "Rua das Flores, 120",
			Phone:       "5511999992222",
			HasDelivery: true,
			Latitude:    fptr(-23.552),
			Longitude:   fptr(-46.634),
			OpensAt:     "06:00",
			ClosesAt:    "20:00",
			Image:       "https://images.unsplash.com/photo-1587241321921-91e5b7a1a8b9",
			Logo:        "https://cdn-icons-png.flaticon.com/512/3075/3075977.png",
			Banner:      "https://images.unsplash.com/photo-1509440159596-0249088772ff",
		},
		{
			ID:          "2",
			Name:        "Mercadinho da Ana",
			Category:    "mercado",
			Description: "Tudo o que você precisa sem sair do bairro.",
			Address:     "Av. Brasil, 45",
			Phone:       "5511999992222",
			HasDelivery: false,
			Latitude:    fptr(-23.548),
			Longitude:   fptr(-46.628),
			OpensAt:     "08:00",
			ClosesAt:    "22:00",
			Image:       "https://images.unsplash.com/photo-1580910051073-dedbdfd3b9f8",
			Logo:        "https://cdn-icons-png.flaticon.com/512/2331/2331970.png",
			Banner:      "https://images.unsplash.com/photo-1556761175-4b46a572b786",
		},
		{
			ID:          "3",
			Name:        "Farmácia Popular",
			Category:    "farmacia",
			Description: "Remédios e cuidados de saúde com atendimento humanizado.",
			Address:     "Rua Central, 99",
			Phone:       "5511999992222",
			HasDelivery: true,
			Latitude:    fptr(-23.556),
			Longitude:   fptr(-46.630),
			OpensAt:     "07:00",
			ClosesAt:    "23:00",
			Image:       "https://images.unsplash.com/photo-1587854692152-93dcf38a42c2",
			Logo:        "https://cdn-icons-png.flaticon.com/512/2966/2966327.png",
			Banner:      "https://images.unsplash.com/photo-1584367369853-8a1a7a7dfb3f",
		},
		{
			ID:          "4",
			Name:        "Lanchonete Sabor Local",
			Category:    "lanchonete",
			Description: "Lanches rápidos e deliciosos feitos com carinho.",
			Address:     "Praça das Árvores, 15",
			Phone:       "5511999998888",
			HasDelivery: true,
			Latitude:    fptr(-23.550),
			Longitude:   fptr(-46.635),
			OpensAt:     "10:00",
			ClosesAt:    "02:00",
			Image:       "https://images.unsplash.com/photo-1555396273-367ea4eb4db5",
			Logo:        "https://cdn-icons-png.flaticon.com/512/857/857681.png",
			Banner:      "https://images.unsplash.com/photo-1555396273-367ea4eb4db5",
		},
	}
}

func seedProducts() map[int][]store.Product {
	return map[int][]store.Product{
		1: {
			{Name: "Pão Francês", Price: 0.80, Description: "Fresco, crocante e assado na hora.", Image: "https://images.unsplash.com/photo-1608198093002-ad4e0054842b"},
			{Name: "Bolo de Fubá", Price: 12.00, Description: "Tradicional, fofinho e com gostinho de infância.", Image: "https://images.unsplash.com/photo-1601972599720-b7a5e7c0e5b8"},
			{Name: "Sonho", Price: 6.50, Description: "Recheado com creme e polvilhado com açúcar.", Image: "https://images.unsplash.com/photo-1589387873277-5f9b3a5f9a32"},
		},
		2: {
			{Name: "Arroz 5kg", Price: 25.90, Description: "Arroz branco tipo 1.", Image: "https://images.unsplash.com/photo-1586201375754-257d0bca5c1e"},
			{Name: "Feijão Carioca 1kg", Price: 8.50, Description: "Feijão tipo 1, grãos selecionados.", Image: "https://images.unsplash.com/photo-1601050690597-9b02a6ac32c7"},
			{Name: "Leite Integral 1L", Price: 6.90, Description: "Leite integral de qualidade.", Image: "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b"},
		},
	}
}

func fptr(v float64) *float64 {
	return &v
}
