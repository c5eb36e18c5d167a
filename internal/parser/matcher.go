package parser

import (
	"strings"

	"github.com/order-parser/internal/fuzzy"
	"github.com/order-parser/internal/lexicon"
)

// MatchProduct chấm điểm mọi alias của mọi sản phẩm với các token còn lại của đoạn
// (không dừng sớm) và trả về cặp điểm cao nhất, hoặc nil nếu không alias nào đạt.
//
//   - alias là chuỗi con liên tục của residual: 2×số token alias + 3
//   - alias một token, không chứa: 2 + (2 − khoảng cách nhỏ nhất), nếu khoảng cách <= 2
//   - alias nhiều token, không chứa: 2 × số token alias khớp mờ
//
// Bằng điểm thì giữ sản phẩm khai báo trước.
func MatchProduct(lex *lexicon.Lexicon, residual []string) *Match {
	if len(residual) == 0 {
		return nil
	}
	joined := strings.Join(residual, " ")

	var best *Match
	for _, entry := range lex.Entries() {
		for _, alias := range entry.Aliases {
			score, strategy := scoreAlias(alias, residual, joined)
			if score <= 0 {
				continue
			}
			if best == nil || score > best.Score {
				best = &Match{
					Name:     entry.Name,
					Alias:    strings.Join(alias, " "),
					Score:    score,
					Strategy: strategy,
				}
			}
		}
	}
	return best
}

func scoreAlias(alias, residual []string, joined string) (int, MatchStrategy) {
	if strings.Contains(joined, strings.Join(alias, " ")) {
		return 2*len(alias) + 3, MatchStrategyContains
	}

	if len(alias) == 1 {
		d, ok := fuzzy.BestDistance(alias[0], residual)
		if !ok || d > fuzzy.MaxDistance {
			return 0, ""
		}
		return 2 + (fuzzy.MaxDistance - d), MatchStrategyFuzzy
	}

	matched := 0
	for _, tok := range alias {
		if fuzzy.MatchesAny(tok, residual) {
			matched++
		}
	}
	return 2 * matched, MatchStrategyPartial
}
