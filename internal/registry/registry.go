// Package registry holds the fixed catalog of compliance standards and the
// product types that select them. The registry is built once at startup and
// never mutated afterwards, so it is safe to share across concurrent
// evaluators without locking.
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

// Registry is an immutable mapping from standard identifier to definition,
// plus the product-type catalog.
type Registry struct {
	standards   map[string]domain.Standard
	standardIDs []string
	products    map[string]domain.ProductType
	productIDs  []string
}

// New builds a registry with the built-in standards and product types.
func New() *Registry {
	r := &Registry{
		standards: make(map[string]domain.Standard),
		products:  make(map[string]domain.ProductType),
	}
	for _, s := range builtinStandards() {
		r.standards[s.ID] = s
		r.standardIDs = append(r.standardIDs, s.ID)
	}
	for _, p := range builtinProducts() {
		r.products[p.ID] = p
		r.productIDs = append(r.productIDs, p.ID)
	}
	return r
}

// NewWithExtras builds a registry with the built-in catalog plus additional
// standards loaded from a YAML file. Extras may not shadow built-in ids.
func NewWithExtras(path string) (*Registry, error) {
	r := New()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.ConfigError("read extra standards file", err)
	}

	var extras struct {
		Standards []domain.Standard `yaml:"standards"`
	}
	if err := yaml.Unmarshal(data, &extras); err != nil {
		return nil, domain.ConfigError("parse extra standards file", err)
	}

	for _, s := range extras.Standards {
		if s.ID == "" || s.Title == "" || s.Description == "" {
			return nil, domain.ConfigError(fmt.Sprintf("extra standard %q missing id, title, or description", s.ID), nil)
		}
		if _, exists := r.standards[s.ID]; exists {
			return nil, domain.ConfigError(fmt.Sprintf("extra standard %q shadows a built-in standard", s.ID), nil)
		}
		r.standards[s.ID] = s
		r.standardIDs = append(r.standardIDs, s.ID)
	}

	return r, nil
}

// Standard looks up a standard by id.
func (r *Registry) Standard(id string) (domain.Standard, error) {
	s, ok := r.standards[id]
	if !ok {
		return domain.Standard{}, domain.UnknownStandardError(fmt.Sprintf("standard %q is not registered", id), nil)
	}
	return s, nil
}

// Standards returns all standards in registration order.
func (r *Registry) Standards() []domain.Standard {
	out := make([]domain.Standard, 0, len(r.standardIDs))
	for _, id := range r.standardIDs {
		out = append(out, r.standards[id])
	}
	return out
}

// Resolve maps a list of standard ids to their definitions, preserving order.
// Duplicate ids collapse to a single entry.
func (r *Registry) Resolve(ids []string) ([]domain.Standard, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]domain.Standard, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		s, err := r.Standard(id)
		if err != nil {
			return nil, err
		}
		seen[id] = true
		out = append(out, s)
	}
	return out, nil
}

// Product looks up a product type by id.
func (r *Registry) Product(id string) (domain.ProductType, error) {
	p, ok := r.products[id]
	if !ok {
		return domain.ProductType{}, domain.UnknownStandardError(fmt.Sprintf("product type %q is not registered", id), nil)
	}
	return p, nil
}

// Products returns all product types in registration order.
func (r *Registry) Products() []domain.ProductType {
	out := make([]domain.ProductType, 0, len(r.productIDs))
	for _, id := range r.productIDs {
		out = append(out, r.products[id])
	}
	return out
}

// StandardsForProduct resolves the standards a product type requires.
func (r *Registry) StandardsForProduct(productID string) ([]domain.Standard, error) {
	p, err := r.Product(productID)
	if err != nil {
		return nil, err
	}
	return r.Resolve(p.Standards)
}
