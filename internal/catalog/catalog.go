// Package catalog ánh xạ sản phẩm đã nhận diện sang SKU trong catalog Meilisearch
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/order-parser/internal/lexicon"
)

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

// Product một SKU trong catalog
type Product struct {
	SKU      string       `json:"sku" yaml:"sku"`
	Name     string       `json:"name" yaml:"name"` // tên chuẩn trong lexicon
	Title    string       `json:"title" yaml:"title"`
	Category string       `json:"category" yaml:"category"`
	Unit     lexicon.Unit `json:"unit" yaml:"-"`
	PackSize float64      `json:"pack_size" yaml:"pack_size"`
	Aliases  []string     `json:"aliases,omitempty" yaml:"-"`
}

type catalogFile struct {
	Products []struct {
		Product `yaml:",inline"`
		Unit    string `yaml:"unit"`
	} `yaml:"products"`
}

// LoadProducts đọc catalog YAML và gắn alias từ lexicon cho từng SKU.
// SKU trùng hoặc tên không có trong lexicon là lỗi.
func LoadProducts(data []byte, lex *lexicon.Lexicon) ([]Product, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("lỗi đọc catalog: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, errors.New("catalog rỗng")
	}

	seen := make(map[string]struct{}, len(file.Products))
	products := make([]Product, 0, len(file.Products))
	for _, raw := range file.Products {
		p := raw.Product
		if p.SKU == "" {
			return nil, fmt.Errorf("sản phẩm %q thiếu sku", p.Name)
		}
		if _, dup := seen[p.SKU]; dup {
			return nil, fmt.Errorf("trùng sku: %s", p.SKU)
		}
		seen[p.SKU] = struct{}{}

		entry, ok := lex.Entry(p.Name)
		if !ok {
			return nil, fmt.Errorf("sku %s: sản phẩm %q không có trong lexicon", p.SKU, p.Name)
		}
		unit, err := lexicon.ParseUnit(raw.Unit)
		if err != nil {
			return nil, fmt.Errorf("sku %s: %w", p.SKU, err)
		}
		p.Unit = unit
		p.Aliases = entry.AliasStrings()
		if p.PackSize <= 0 {
			p.PackSize = 1
		}
		products = append(products, p)
	}
	return products, nil
}

// DefaultProducts catalog mẫu nhúng trong binary
func DefaultProducts(lex *lexicon.Lexicon) ([]Product, error) {
	return LoadProducts(defaultCatalogYAML, lex)
}
