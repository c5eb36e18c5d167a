// Package lexicon chứa bảng sản phẩm chuẩn cùng các bảng số đếm, đơn vị và từ
// gợi ý ngôn ngữ. Mọi alias và từ khóa được chuẩn hóa bằng cùng tokenizer với
// input nên có thể so sánh trực tiếp từng token.
package lexicon

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/order-parser/internal/normalizer"
)

// Entry một sản phẩm chuẩn và các alias đã token hóa.
// Aliases[0] luôn là tên chuẩn.
type Entry struct {
	Name    string
	Aliases [][]string
}

// AliasToken một token alias kèm vị trí entry chứa nó
type AliasToken struct {
	Token string
	Entry int
}

// Lexicon bảng tra cứu bất biến sau khi dựng
type Lexicon struct {
	entries      []Entry
	byName       map[string]int
	reverseIndex map[string]string // alias đã chuẩn hóa -> tên chuẩn
	aliasTokens  []AliasToken

	numbers map[string]float64
	units   map[string]Unit
	hints   map[string]map[string]struct{}

	version string
}

type productsFile struct {
	Products []struct {
		Name    string   `yaml:"name"`
		Aliases []string `yaml:"aliases"`
	} `yaml:"products"`
}

type numbersFile struct {
	Numbers map[string]map[string]float64 `yaml:"numbers"`
}

type unitsFile struct {
	Units map[string][]string `yaml:"units"`
}

type hintsFile struct {
	Hints map[string][]string `yaml:"hints"`
}

// Load dựng lexicon từ bốn tài liệu YAML: products, numbers, units, hints
func Load(products, numbers, units, hints []byte) (*Lexicon, error) {
	lex := &Lexicon{
		byName:       make(map[string]int),
		reverseIndex: make(map[string]string),
		numbers:      make(map[string]float64),
		units:        make(map[string]Unit),
		hints:        make(map[string]map[string]struct{}),
		version:      fingerprint(products, numbers, units, hints),
	}

	if err := lex.loadProducts(products); err != nil {
		return nil, err
	}
	if err := lex.loadNumbers(numbers); err != nil {
		return nil, err
	}
	if err := lex.loadUnits(units); err != nil {
		return nil, err
	}
	if err := lex.loadHints(hints); err != nil {
		return nil, err
	}
	return lex, nil
}

func (l *Lexicon) loadProducts(data []byte) error {
	var file productsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("lỗi đọc products: %w", err)
	}
	if len(file.Products) == 0 {
		return errors.New("products rỗng")
	}

	for _, p := range file.Products {
		name := strings.Join(normalizer.Tokenize(p.Name), " ")
		if name == "" {
			return fmt.Errorf("tên sản phẩm không hợp lệ: %q", p.Name)
		}
		if _, dup := l.byName[name]; dup {
			return fmt.Errorf("trùng tên sản phẩm: %q", name)
		}

		entry := Entry{Name: name}
		seen := make(map[string]struct{})
		for _, raw := range append([]string{p.Name}, p.Aliases...) {
			tokens := normalizer.Tokenize(raw)
			if len(tokens) == 0 {
				continue
			}
			joined := strings.Join(tokens, " ")
			if _, ok := seen[joined]; ok {
				continue
			}
			seen[joined] = struct{}{}
			entry.Aliases = append(entry.Aliases, tokens)

			if _, taken := l.reverseIndex[joined]; !taken {
				l.reverseIndex[joined] = name
			}
		}

		idx := len(l.entries)
		l.byName[name] = idx
		l.entries = append(l.entries, entry)
		l.indexAliasTokens(idx, entry)
	}
	return nil
}

func (l *Lexicon) indexAliasTokens(idx int, entry Entry) {
	seen := make(map[string]struct{})
	for _, alias := range entry.Aliases {
		for _, tok := range alias {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			l.aliasTokens = append(l.aliasTokens, AliasToken{Token: tok, Entry: idx})
		}
	}
}

func (l *Lexicon) loadNumbers(data []byte) error {
	var file numbersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("lỗi đọc numbers: %w", err)
	}
	for lang, words := range file.Numbers {
		for word, value := range words {
			key := normalizer.NormalizeToken(word)
			if key == "" {
				return fmt.Errorf("số đếm rỗng trong ngôn ngữ %s", lang)
			}
			if value < 0 {
				return fmt.Errorf("số đếm %q âm", word)
			}
			l.numbers[key] = value
		}
	}
	return nil
}

func (l *Lexicon) loadUnits(data []byte) error {
	var file unitsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("lỗi đọc units: %w", err)
	}
	for name, synonyms := range file.Units {
		unit, err := ParseUnit(name)
		if err != nil {
			return err
		}
		for _, syn := range synonyms {
			key := normalizer.NormalizeToken(syn)
			if key == "" {
				continue
			}
			if prev, dup := l.units[key]; dup && prev != unit {
				return fmt.Errorf("từ đơn vị %q thuộc cả %s và %s", key, prev, unit)
			}
			l.units[key] = unit
		}
	}
	return nil
}

func (l *Lexicon) loadHints(data []byte) error {
	var file hintsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("lỗi đọc hints: %w", err)
	}
	for lang, words := range file.Hints {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			if key := normalizer.NormalizeToken(w); key != "" {
				set[key] = struct{}{}
			}
		}
		l.hints[lang] = set
	}
	return nil
}

// Entries danh sách sản phẩm theo thứ tự khai báo. Không được sửa slice trả về.
func (l *Lexicon) Entries() []Entry {
	return l.entries
}

// Len số sản phẩm
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Entry lấy sản phẩm theo tên chuẩn
func (l *Lexicon) Entry(name string) (Entry, bool) {
	idx, ok := l.byName[name]
	if !ok {
		return Entry{}, false
	}
	return l.entries[idx], true
}

// Has kiểm tra tên chuẩn có trong lexicon
func (l *Lexicon) Has(name string) bool {
	_, ok := l.byName[name]
	return ok
}

// Lookup tra alias chính xác (sau chuẩn hóa) qua reverse index
func (l *Lexicon) Lookup(alias string) (string, bool) {
	name, ok := l.reverseIndex[strings.Join(normalizer.Tokenize(alias), " ")]
	return name, ok
}

// AliasTokens mọi token alias, duy nhất trong từng entry, theo thứ tự khai báo
func (l *Lexicon) AliasTokens() []AliasToken {
	return l.aliasTokens
}

// Number giá trị của một số đếm bằng chữ ("dedh" → 1.5)
func (l *Lexicon) Number(token string) (float64, bool) {
	v, ok := l.numbers[token]
	return v, ok
}

// Unit đơn vị ứng với token ("kilo" → kg)
func (l *Lexicon) Unit(token string) (Unit, bool) {
	u, ok := l.units[token]
	return u, ok
}

// IsUnit kiểm tra token là từ chỉ đơn vị
func (l *Lexicon) IsUnit(token string) bool {
	_, ok := l.units[token]
	return ok
}

// IsHint kiểm tra token thuộc tập từ gợi ý của ngôn ngữ lang ("en", "hi", "te")
func (l *Lexicon) IsHint(lang, token string) bool {
	_, ok := l.hints[lang][token]
	return ok
}

// Version fingerprint nội dung dữ liệu, dùng làm một phần cache key
func (l *Lexicon) Version() string {
	return l.version
}

// AliasStrings các alias dạng chuỗi (token nối bằng dấu cách), tên chuẩn đứng đầu
func (e Entry) AliasStrings() []string {
	out := make([]string, len(e.Aliases))
	for i, alias := range e.Aliases {
		out[i] = strings.Join(alias, " ")
	}
	return out
}
