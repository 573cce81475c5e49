package store

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Store is a persisted listing owned by a single user account.
// OwnerID, ID and CreatedAt are assigned once and never patched.
type Store struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     int        `json:"-"`
	Name        string     `json:"nome"`
	Category    string     `json:"categoria"`
	Description *string    `json:"descricao"`
	Address     *string    `json:"endereco"`
	Phone       *string    `json:"telefone"`
	HasDelivery bool       `json:"motoboy"`
	Latitude    *float64   `json:"lat"`
	Longitude   *float64   `json:"lon"`
	OpensAt     *string    `json:"abre"`
	ClosesAt    *string    `json:"fecha"`
	LogoID      *uuid.UUID `json:"-"`
	BannerID    *uuid.UUID `json:"-"`
	CreatedAt   time.Time  `json:"criadoEm"`
}

// Filter narrows the public listing. Zero values impose no constraint.
// Category matches case-insensitively on equality, Name on substring.
type Filter struct {
	Category string
	Name     string
}

// Patch carries the mutable fields of an update request. Nil fields
// are left untouched.
type Patch struct {
	Name        *string
	Category    *string
	Description *string
	Address     *string
	Phone       *string
	HasDelivery *bool
	Latitude    *float64
	Longitude   *float64
	OpensAt     *string
	ClosesAt    *string
}

// Apply copies the present patch fields onto s.
func (p Patch) Apply(s *Store) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Description != nil {
		s.Description = p.Description
	}
	if p.Address != nil {
		s.Address = p.Address
	}
	if p.Phone != nil {
		s.Phone = p.Phone
	}
	if p.HasDelivery != nil {
		s.HasDelivery = *p.HasDelivery
	}
	if p.Latitude != nil {
		s.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		s.Longitude = p.Longitude
	}
	if p.OpensAt != nil {
		s.OpensAt = p.OpensAt
	}
	if p.ClosesAt != nil {
		s.ClosesAt = p.ClosesAt
	}
}

// ImageUpload is an incoming logo or banner attachment.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// Product belongs to the static product lists shown on seed store pages.
type Product struct {
	Name        string  `json:"nome"`
	Price       float64 `json:"preco"`
	Description string  `json:"descricao"`
	Image       string  `json:"imagem"`
}
