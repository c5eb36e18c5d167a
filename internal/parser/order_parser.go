// Package parser nhận diện các dòng hàng (sản phẩm, số lượng, đơn vị) trong câu
// đặt hàng tự do tiếng Anh, Hindi và Telugu. Parse là hàm thuần: cùng input và
// cùng lexicon luôn cho cùng kết quả, an toàn khi gọi song song.
package parser

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/order-parser/internal/langdetect"
	"github.com/order-parser/internal/lexicon"
	"github.com/order-parser/internal/normalizer"
	"github.com/order-parser/internal/quantity"
)

// OrderParser parser câu đặt hàng chính
type OrderParser struct {
	lex    *lexicon.Lexicon
	logger *zap.Logger
}

// NewOrderParser tạo mới OrderParser. lex nil dùng lexicon.Default(), logger nil dùng zap.NewNop().
func NewOrderParser(lex *lexicon.Lexicon, logger *zap.Logger) *OrderParser {
	if lex == nil {
		lex = lexicon.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderParser{lex: lex, logger: logger}
}

// Lexicon lexicon mà parser đang dùng
func (p *OrderParser) Lexicon() *lexicon.Lexicon {
	return p.lex
}

// Parse parse một câu: tách đoạn → (mỗi đoạn: token hóa → số lượng/đơn vị →
// khớp sản phẩm → ParsedItem hoặc gợi ý) → đoán ngôn ngữ trên cả câu.
// Câu rỗng trả về kết quả rỗng với gợi ý "en".
func (p *OrderParser) Parse(text string) ParseResult {
	start := time.Now()

	if strings.TrimSpace(text) == "" {
		return newResult(langdetect.English)
	}

	result := newResult(langdetect.English)
	var guesses []ParseGuess
	for _, segment := range normalizer.Split(text) {
		item, segGuesses := p.parseSegment(segment)
		if item != nil {
			result.Items = append(result.Items, *item)
			continue
		}
		guesses = append(guesses, segGuesses...)
	}
	result.Guesses = rankGuesses(guesses, MaxGuesses)

	tokens := normalizer.Tokenize(text)
	if len(result.Items) == 0 && len(result.Guesses) == 0 {
		result.Guesses = sweepGuesses(p.lex, tokens, strings.TrimSpace(text))
	}
	result.LanguageHint = langdetect.Classify(p.lex, tokens)

	p.logger.Debug("Đã parse câu đặt hàng",
		zap.Int("items", len(result.Items)),
		zap.Int("guesses", len(result.Guesses)),
		zap.String("language_hint", result.LanguageHint.String()),
		zap.Duration("duration", time.Since(start)))

	return result
}

// parseSegment trả về item khi đoạn khớp một sản phẩm, ngược lại là các gợi ý
func (p *OrderParser) parseSegment(segment string) (*ParsedItem, []ParseGuess) {
	tokens := normalizer.Tokenize(segment)
	if len(tokens) == 0 {
		return nil, nil
	}

	res := quantity.Resolve(p.lex, tokens)
	unit := quantity.InferUnit(p.lex, tokens)
	residual := p.residual(tokens, res)

	if match := MatchProduct(p.lex, residual); match != nil {
		p.logger.Debug("Khớp sản phẩm",
			zap.String("segment", segment),
			zap.String("name", match.Name),
			zap.String("alias", match.Alias),
			zap.Int("score", match.Score),
			zap.String("strategy", string(match.Strategy)))

		return &ParsedItem{
			Name:     match.Name,
			Quantity: quantity.Quantity(res),
			Unit:     unit,
			Raw:      segment,
		}, nil
	}

	return nil, BuildGuesses(p.lex, residual, segment)
}

// residual các token chưa dùng làm số lượng và không phải từ đơn vị
func (p *OrderParser) residual(tokens []string, res quantity.Resolution) []string {
	out := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if res.IsConsumed(i) || p.lex.IsUnit(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ParseMultiple parse từng câu độc lập rồi gộp: item nối theo thứ tự input, gợi ý
// gộp và cắt còn 5. Gợi ý ngôn ngữ được tính lại từ đoạn gốc của các item; nếu
// không có item thì lấy của câu đầu tiên.
func (p *OrderParser) ParseMultiple(texts []string) ParseResult {
	if len(texts) == 0 {
		return newResult(langdetect.English)
	}

	merged := newResult(langdetect.English)
	var guesses []ParseGuess
	var raws []string
	for i, text := range texts {
		r := p.Parse(text)
		if i == 0 {
			merged.LanguageHint = r.LanguageHint
		}
		merged.Items = append(merged.Items, r.Items...)
		guesses = append(guesses, r.Guesses...)
		for _, item := range r.Items {
			raws = append(raws, item.Raw)
		}
	}
	merged.Guesses = rankGuesses(guesses, MaxGuesses)

	if len(raws) > 0 {
		merged.LanguageHint = langdetect.Classify(p.lex, normalizer.Tokenize(strings.Join(raws, " ")))
	}

	p.logger.Debug("Đã parse batch câu đặt hàng",
		zap.Int("utterances", len(texts)),
		zap.Int("items", len(merged.Items)),
		zap.Int("guesses", len(merged.Guesses)))

	return merged
}

var defaultParser = sync.OnceValue(func() *OrderParser {
	return NewOrderParser(nil, nil)
})

// Parse parse một câu với lexicon mặc định
func Parse(text string) ParseResult {
	return defaultParser().Parse(text)
}

// ParseMultiple parse một batch câu với lexicon mặc định
func ParseMultiple(texts []string) ParseResult {
	return defaultParser().ParseMultiple(texts)
}
