// Package datagen provides synthetic sales data generation for seeding a
// demo warehouse.
package datagen

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Product category reference data. CategorySentinel mirrors the upstream
// source systems that emit 'n/a' instead of NULL for an unknown category.
var (
	Categories = map[string][]string{
		"Bikes":       {"Road", "Mountain", "Touring"},
		"Components":  {"Wheels", "Brakes", "Drivetrain", "Forks"},
		"Clothing":    {"Jerseys", "Shorts", "Gloves"},
		"Accessories": {"Helmets", "Lights", "Bottles", "Pumps"},
	}
	CategoryNames = []string{"Bikes", "Components", "Clothing", "Accessories"}

	CategorySentinel = "n/a"

	AgeGroups = []string{"Under 20", "20-29", "30-39", "40-49", "50 and above"}
)

// Faker generates synthetic sales data using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a Faker with a random seed.
func NewFaker() *Faker {
	return &Faker{faker: gofakeit.New(uint64(time.Now().UnixNano()))}
}

// NewFakerWithSeed creates a Faker with a fixed seed for reproducible seeds.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{faker: gofakeit.New(seed)}
}

// FirstName generates a random first name.
func (f *Faker) FirstName() string {
	return f.faker.FirstName()
}

// LastName generates a random last name.
func (f *Faker) LastName() string {
	return f.faker.LastName()
}

// Country generates a random country name.
func (f *Faker) Country() string {
	return f.faker.Country()
}

// Gender returns "M" or "F".
func (f *Faker) Gender() string {
	if f.faker.Bool() {
		return "M"
	}
	return "F"
}

// AgeGroup returns an age group label, or "" for the occasional customer
// whose age is unknown upstream.
func (f *Faker) AgeGroup() string {
	if f.Int(1, 100) <= 4 {
		return ""
	}
	return Choose(f, AgeGroups)
}

// Category returns a product category, occasionally the 'n/a' sentinel the
// source systems emit for uncategorized products.
func (f *Faker) Category() string {
	if f.Int(1, 100) <= 3 {
		return CategorySentinel
	}
	return Choose(f, CategoryNames)
}

// Subcategory returns a subcategory for the category, or "" when the
// category is the sentinel.
func (f *Faker) Subcategory(category string) string {
	subs, ok := Categories[category]
	if !ok {
		return ""
	}
	return Choose(f, subs)
}

// ProductName generates a random product name.
func (f *Faker) ProductName() string {
	return f.faker.ProductName()
}

// OrderNumber formats a sequential order identifier.
func OrderNumber(n int) string {
	return fmt.Sprintf("SO%06d", n)
}

// Price generates a random price between min and max.
func (f *Faker) Price(min, max float64) float64 {
	return f.faker.Price(min, max)
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// DateRange generates a random date within a range.
func (f *Faker) DateRange(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end)
}

// Bool generates a random boolean.
func (f *Faker) Bool() bool {
	return f.faker.Bool()
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}
