package engine

import (
	"fmt"
	"strings"
)

// Resolver maps fact rows to their product and customer attributes. It holds
// no state beyond the loaded dimension snapshot and is safe for concurrent
// use once built.
type Resolver struct {
	products  map[int]*Product
	customers map[int]*Customer
}

// NewResolver builds lookup indexes over the dimension snapshots.
func NewResolver(products []Product, customers []Customer) *Resolver {
	r := &Resolver{
		products:  make(map[int]*Product, len(products)),
		customers: make(map[int]*Customer, len(customers)),
	}
	for i := range products {
		r.products[products[i].Key] = &products[i]
	}
	for i := range customers {
		r.customers[customers[i].Key] = &customers[i]
	}
	return r
}

// Resolve joins a fact row against both dimensions. A missing dimension match
// leaves the corresponding pointer nil; the fact row is never dropped.
func (r *Resolver) Resolve(f FactRow) ResolvedRow {
	return ResolvedRow{
		Fact:     f,
		Product:  r.products[f.ProductKey],
		Customer: r.customers[f.CustomerKey],
	}
}

// ResolveAll resolves every fact row in input order.
func (r *Resolver) ResolveAll(facts []FactRow) []ResolvedRow {
	rows := make([]ResolvedRow, len(facts))
	for i, f := range facts {
		rows[i] = r.Resolve(f)
	}
	return rows
}

// ResolvedRow merges a fact row with its matched dimension attributes.
// Product or Customer is nil when the fact's key had no dimension match.
type ResolvedRow struct {
	Fact     FactRow
	Product  *Product
	Customer *Customer
}

// ProductName returns the matched product's name, or false on a miss.
func (r ResolvedRow) ProductName() (string, bool) {
	if r.Product == nil {
		return "", false
	}
	return r.Product.Name, true
}

// Category returns the product category. Absent categories (no product
// match, empty value, or the "n/a" sentinel) report false.
func (r ResolvedRow) Category() (string, bool) {
	if r.Product == nil || r.Product.Category == "" {
		return "", false
	}
	if strings.EqualFold(r.Product.Category, "n/a") {
		return "", false
	}
	return r.Product.Category, true
}

// Subcategory returns the product subcategory, or false when absent.
func (r ResolvedRow) Subcategory() (string, bool) {
	if r.Product == nil || r.Product.Subcategory == "" {
		return "", false
	}
	return r.Product.Subcategory, true
}

// AgeGroup returns the customer age group, or false when absent.
func (r ResolvedRow) AgeGroup() (string, bool) {
	if r.Customer == nil || r.Customer.AgeGroup == "" {
		return "", false
	}
	return r.Customer.AgeGroup, true
}

// Year returns the order year as "2024", or false for a nil order date.
func (r ResolvedRow) Year() (string, bool) {
	if r.Fact.OrderDate == nil {
		return "", false
	}
	return fmt.Sprintf("%04d", r.Fact.OrderDate.Year()), true
}

// Quarter returns the order quarter as "2024-Q1", or false for a nil date.
// The format sorts lexicographically in time order.
func (r ResolvedRow) Quarter() (string, bool) {
	d := r.Fact.OrderDate
	if d == nil {
		return "", false
	}
	return fmt.Sprintf("%04d-Q%d", d.Year(), (int(d.Month())-1)/3+1), true
}

// Month returns the order month as "2024-02", or false for a nil date.
func (r ResolvedRow) Month() (string, bool) {
	d := r.Fact.OrderDate
	if d == nil {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month())), true
}
