package game

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// CatalogFile represents the top-level YAML structure.
type CatalogFile struct {
	PointCards   []PointEntry   `yaml:"point_cards"`
	InstantCards []InstantEntry `yaml:"instant_cards"`
}

// PointEntry describes a point card and how many copies go into the deck.
type PointEntry struct {
	Title  string `yaml:"title"`
	Points int    `yaml:"points"`
	Effect string `yaml:"effect"`
	Text   string `yaml:"text"`
	Amount int    `yaml:"amount"`
}

// InstantEntry describes an instant card and how many copies go into the deck.
type InstantEntry struct {
	Title  string `yaml:"title"`
	Effect string `yaml:"effect"`
	Text   string `yaml:"text"`
	Amount int    `yaml:"amount"`
}

// CatalogCard is a validated catalog record.
type CatalogCard struct {
	Title  string
	Kind   CardKind
	Points int
	Effect Effect
	Text   string
	Amount int
}

// Catalog holds the canonical card records. It is read-only after parsing.
type Catalog struct {
	Cards   []CatalogCard
	byTitle map[string]CatalogCard
}

// ParseCatalog parses and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	return NewCatalog(cf)
}

// LoadCatalog reads a catalog file from disk.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// NewCatalog validates a decoded catalog file.
func NewCatalog(cf CatalogFile) (*Catalog, error) {
	c := &Catalog{byTitle: make(map[string]CatalogCard)}
	points := 0

	add := func(cc CatalogCard) error {
		cc.Title = strings.TrimSpace(cc.Title)
		if cc.Title == "" {
			return fmt.Errorf("card with empty title")
		}
		if _, dup := c.byTitle[cc.Title]; dup {
			return fmt.Errorf("duplicate card title %q", cc.Title)
		}
		if cc.Amount < 0 {
			return fmt.Errorf("card %q: negative amount %d", cc.Title, cc.Amount)
		}
		c.byTitle[cc.Title] = cc
		c.Cards = append(c.Cards, cc)
		return nil
	}

	for _, e := range cf.PointCards {
		eff, err := ParseEffect(e.Effect)
		if err != nil {
			return nil, fmt.Errorf("point card %q: %w", e.Title, err)
		}
		if eff.IsInstant() {
			return nil, fmt.Errorf("point card %q: %s is an instant effect", e.Title, eff)
		}
		if err := add(CatalogCard{Title: e.Title, Kind: CardKindPoint, Points: e.Points, Effect: eff, Text: e.Text, Amount: e.Amount}); err != nil {
			return nil, err
		}
		points += e.Amount
	}
	for _, e := range cf.InstantCards {
		eff, err := ParseEffect(e.Effect)
		if err != nil {
			return nil, fmt.Errorf("instant card %q: %w", e.Title, err)
		}
		if !eff.IsInstant() {
			return nil, fmt.Errorf("instant card %q: %s is not an instant effect", e.Title, eff)
		}
		if err := add(CatalogCard{Title: e.Title, Kind: CardKindInstant, Effect: eff, Text: e.Text, Amount: e.Amount}); err != nil {
			return nil, err
		}
	}

	if points == 0 {
		return nil, ErrNoPointCards
	}
	return c, nil
}

// Lookup returns the catalog record for a title.
func (c *Catalog) Lookup(title string) (CatalogCard, bool) {
	cc, ok := c.byTitle[title]
	return cc, ok
}

// CanonicalPoints returns the printed point value of a point card.
func (c *Catalog) CanonicalPoints(title string) (int, bool) {
	cc, ok := c.byTitle[title]
	if !ok || cc.Kind != CardKindPoint {
		return 0, false
	}
	return cc.Points, true
}

// Build materialises one card per copy, in catalog order. nextID supplies card IDs.
func (c *Catalog) Build(nextID func() int) []*Card {
	var cards []*Card
	for _, cc := range c.Cards {
		for i := 0; i < cc.Amount; i++ {
			cards = append(cards, &Card{
				ID:     nextID(),
				Title:  cc.Title,
				Kind:   cc.Kind,
				Points: cc.Points,
				Effect: cc.Effect,
				Text:   cc.Text,
			})
		}
	}
	return cards
}
