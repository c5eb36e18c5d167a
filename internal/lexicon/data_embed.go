package lexicon

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"sync"
)

//go:embed data/products.yaml
var productsYAML []byte

//go:embed data/numbers.yaml
var numbersYAML []byte

//go:embed data/units.yaml
var unitsYAML []byte

//go:embed data/hints.yaml
var hintsYAML []byte

// Default trả về lexicon dựng từ dữ liệu nhúng. Chỉ dựng một lần cho cả process.
var Default = sync.OnceValue(func() *Lexicon {
	lex, err := Load(productsYAML, numbersYAML, unitsYAML, hintsYAML)
	if err != nil {
		panic("lexicon: dữ liệu nhúng không hợp lệ: " + err.Error())
	}
	return lex
})

// fingerprint sinh version ngắn từ nội dung dữ liệu
func fingerprint(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}
