// Package quantity trích số lượng và đơn vị từ dãy token của một dòng hàng.
package quantity

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/order-parser/internal/lexicon"
)

const (
	// DefaultQuantity số lượng khi không trích được
	DefaultQuantity = 1.0
	// MinQuantity số lượng nhỏ nhất sau làm tròn
	MinQuantity = 0.01
)

var (
	decimalLiteralRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
	separatorStrip   = strings.NewReplacer(".", "", ",", "")
)

// Resolution kết quả trích số lượng. Resolved = false nghĩa là không có số
// dương nào, khác với giá trị 0.
type Resolution struct {
	Value    float64
	Resolved bool
	Consumed []int
}

// IsConsumed kiểm tra token tại vị trí i đã được dùng làm số lượng
func (r Resolution) IsConsumed(i int) bool {
	for _, c := range r.Consumed {
		if c == i {
			return true
		}
	}
	return false
}

// Resolve duyệt token theo thứ tự, bỏ qua từ đơn vị.
// Số viết bằng chữ số ghi đè giá trị tích lũy (số cuối cùng thắng); số viết bằng
// chữ được cộng dồn ("one half" → 1.5).
func Resolve(lex *lexicon.Lexicon, tokens []string) Resolution {
	var res Resolution
	acc := 0.0

	for i, tok := range tokens {
		if lex.IsUnit(tok) {
			continue
		}
		v, literal, ok := lookup(lex, tok)
		if !ok {
			stripped := separatorStrip.Replace(tok)
			if stripped == tok || stripped == "" {
				continue
			}
			if v, literal, ok = lookup(lex, stripped); !ok {
				continue
			}
		}
		if literal {
			acc = v
		} else {
			acc += v
		}
		res.Consumed = append(res.Consumed, i)
	}

	if acc > 0 {
		res.Value = acc
		res.Resolved = true
	}
	return res
}

// lookup trả về giá trị của token; literal = true khi token là số viết bằng chữ số
func lookup(lex *lexicon.Lexicon, tok string) (value float64, literal bool, ok bool) {
	if decimalLiteralRe.MatchString(tok) {
		v, err := strconv.ParseFloat(tok, 64)
		if err == nil {
			return v, true, true
		}
	}
	if v, found := lex.Number(tok); found {
		return v, false, true
	}
	return 0, false, false
}

// Quantity áp dụng mặc định và làm tròn: chưa trích được → 1,
// còn lại → max(0.01, làm tròn 2 chữ số)
func Quantity(res Resolution) float64 {
	if !res.Resolved {
		return DefaultQuantity
	}
	v := math.Round(res.Value*100) / 100
	if v < MinQuantity {
		return MinQuantity
	}
	return v
}

// InferUnit tìm từ đơn vị đầu tiên trong toàn bộ dãy token; mặc định piece
func InferUnit(lex *lexicon.Lexicon, tokens []string) lexicon.Unit {
	for _, tok := range tokens {
		if u, ok := lex.Unit(tok); ok {
			return u
		}
	}
	return lexicon.UnitPiece
}
