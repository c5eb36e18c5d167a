package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"

	"github.com/order-parser/internal/lexicon"
	"github.com/order-parser/internal/normalizer"
)

// ErrEmptyQuery tên sản phẩm rỗng
var ErrEmptyQuery = errors.New("catalog: tên sản phẩm không được để trống")

const (
	defaultIndexName = "grocery_products"
	defaultLimit     = 10
	seedBatchSize    = 1000
)

// SearchConfig cấu hình kết nối Meilisearch
type SearchConfig struct {
	Host      string
	APIKey    string
	IndexName string
	Limit     int64
}

// Hit một SKU ứng viên sau khi xếp hạng lại
type Hit struct {
	SKU      string       `json:"sku"`
	Name     string       `json:"name"`
	Title    string       `json:"title"`
	Category string       `json:"category"`
	Unit     lexicon.Unit `json:"unit"`
	PackSize float64      `json:"pack_size"`
	Score    float64      `json:"score"`
}

type indexSearcher interface {
	Search(query string, request *meilisearch.SearchRequest) (*meilisearch.SearchResponse, error)
}

// Searcher tra cứu SKU cho sản phẩm đã nhận diện
type Searcher struct {
	client    meilisearch.ServiceManager
	index     indexSearcher
	indexName string
	limit     int64
	logger    *zap.Logger
}

// NewSearcher tạo Searcher và kiểm tra kết nối Meilisearch
func NewSearcher(config SearchConfig, logger *zap.Logger) (*Searcher, error) {
	if config.IndexName == "" {
		config.IndexName = defaultIndexName
	}
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Meilisearch: %w", err)
	}

	s := newSearcher(client.Index(config.IndexName), config.Limit, logger)
	s.client = client
	s.indexName = config.IndexName
	return s, nil
}

func newSearcher(index indexSearcher, limit int64, logger *zap.Logger) *Searcher {
	if limit <= 0 {
		limit = defaultLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{index: index, limit: limit, logger: logger}
}

// Resolve tìm SKU cho một sản phẩm. Lượt đầu lọc theo tên chuẩn và đơn vị,
// không có kết quả thì bỏ lọc đơn vị. Kết quả xếp theo Jaro-Winkler giữa tên
// chuẩn và tiêu đề SKU.
func (s *Searcher) Resolve(name string, unit lexicon.Unit) ([]Hit, error) {
	query := strings.Join(normalizer.Tokenize(name), " ")
	if query == "" {
		return nil, ErrEmptyQuery
	}

	hits, err := s.search(query, FilterNameUnit(query, unit))
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		s.logger.Debug("Không có SKU đúng đơn vị, tìm lại không lọc đơn vị",
			zap.String("name", query), zap.Stringer("unit", unit))
		if hits, err = s.search(query, FilterName(query)); err != nil {
			return nil, err
		}
	}

	rerank(query, hits)
	return hits, nil
}

func (s *Searcher) search(query, filter string) ([]Hit, error) {
	result, err := s.index.Search(query, &meilisearch.SearchRequest{
		Limit:  s.limit,
		Filter: filter,
	})
	if err != nil {
		return nil, fmt.Errorf("lỗi tìm kiếm Meilisearch: %w", err)
	}
	return parseSearchResults(result), nil
}

// parseSearchResults parse kết quả từ Meilisearch thành Hit
func parseSearchResults(result *meilisearch.SearchResponse) []Hit {
	if result == nil {
		return nil
	}
	hits := make([]Hit, 0, len(result.Hits))
	for _, raw := range result.Hits {
		hitMap, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		var hit Hit
		if sku, ok := hitMap["sku"].(string); ok {
			hit.SKU = sku
		}
		if name, ok := hitMap["name"].(string); ok {
			hit.Name = name
		}
		if title, ok := hitMap["title"].(string); ok {
			hit.Title = title
		}
		if category, ok := hitMap["category"].(string); ok {
			hit.Category = category
		}
		if unit, ok := hitMap["unit"].(string); ok {
			if u, err := lexicon.ParseUnit(unit); err == nil {
				hit.Unit = u
			}
		}
		if size, ok := hitMap["pack_size"].(float64); ok {
			hit.PackSize = size
		}
		if hit.SKU == "" {
			continue
		}
		hits = append(hits, hit)
	}
	return hits
}

// rerank chấm lại điểm bằng Jaro-Winkler và sắp giảm dần, giữ thứ tự Meilisearch khi bằng điểm
func rerank(query string, hits []Hit) {
	for i := range hits {
		title := strings.Join(normalizer.Tokenize(hits[i].Title), " ")
		score := smetrics.JaroWinkler(query, title, 0.7, 4)
		if hits[i].Name == query {
			score = (score + 1) / 2
		}
		hits[i].Score = score
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
}

// FilterName filter theo tên chuẩn
func FilterName(name string) string {
	return fmt.Sprintf("name = %q", name)
}

// FilterNameUnit filter theo tên chuẩn và đơn vị
func FilterNameUnit(name string, unit lexicon.Unit) string {
	return fmt.Sprintf("name = %q AND unit = %q", name, unit.String())
}

// BuildIndexes cấu hình index với synonyms sinh từ alias trong lexicon,
// cộng thêm learned (có thể nil) từ hàng đợi review
func (s *Searcher) BuildIndexes(lex *lexicon.Lexicon, learned map[string][]string) error {
	if s.client == nil {
		return errors.New("searcher không có Meilisearch client")
	}
	index := s.client.Index(s.indexName)

	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"title", "name", "aliases"},
		FilterableAttributes: []string{"sku", "name", "unit", "category"},
		SortableAttributes:   []string{"pack_size"},
		RankingRules:         []string{"words", "typo", "proximity", "attribute", "sort", "exactness"},
		StopWords:            []string{"please", "kavali", "chahiye", "dena", "kg", "g"},
		Synonyms:             MergeSynonyms(Synonyms(lex), learned),
		TypoTolerance: &meilisearch.TypoTolerance{
			Enabled: true,
			MinWordSizeForTypos: meilisearch.MinWordSizeForTypos{
				OneTypo:  4,
				TwoTypos: 8,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("lỗi cấu hình index: %w", err)
	}

	s.logger.Info("Đã cấu hình index Meilisearch", zap.String("index", s.indexName), zap.Int64("task_uid", task.TaskUID))
	return nil
}

// Synonyms ánh xạ tên chuẩn sang các alias chữ Latin của nó
func Synonyms(lex *lexicon.Lexicon) map[string][]string {
	out := make(map[string][]string, lex.Len())
	for _, entry := range lex.Entries() {
		var aliases []string
		for _, alias := range entry.AliasStrings()[1:] {
			if isLatin(alias) {
				aliases = append(aliases, alias)
			}
		}
		if len(aliases) > 0 {
			out[entry.Name] = aliases
		}
	}
	return out
}

// MergeSynonyms gộp extra vào base, bỏ alias trùng và alias trùng tên chuẩn
func MergeSynonyms(base, extra map[string][]string) map[string][]string {
	out := make(map[string][]string, len(base))
	for name, aliases := range base {
		out[name] = append([]string(nil), aliases...)
	}
	for name, aliases := range extra {
		seen := make(map[string]struct{}, len(out[name]))
		for _, a := range out[name] {
			seen[a] = struct{}{}
		}
		for _, a := range aliases {
			a = strings.Join(normalizer.Tokenize(a), " ")
			if _, dup := seen[a]; dup || a == "" || a == name {
				continue
			}
			seen[a] = struct{}{}
			out[name] = append(out[name], a)
		}
	}
	return out
}

func isLatin(s string) bool {
	for _, r := range s {
		if normalizer.IsDevanagari(r) || normalizer.IsTelugu(r) {
			return false
		}
	}
	return true
}

// SeedData nạp catalog vào Meilisearch theo từng batch
func (s *Searcher) SeedData(products []Product, lexiconVersion string) error {
	if len(products) == 0 {
		return errors.New("không có dữ liệu để seed")
	}
	if s.client == nil {
		return errors.New("searcher không có Meilisearch client")
	}
	index := s.client.Index(s.indexName)

	documents := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		documents = append(documents, map[string]interface{}{
			"id":              p.SKU,
			"sku":             p.SKU,
			"name":            p.Name,
			"title":           p.Title,
			"category":        p.Category,
			"unit":            p.Unit.String(),
			"pack_size":       p.PackSize,
			"aliases":         p.Aliases,
			"lexicon_version": lexiconVersion,
		})
	}

	for i := 0; i < len(documents); i += seedBatchSize {
		end := min(i+seedBatchSize, len(documents))
		task, err := index.AddDocuments(documents[i:end], "id")
		if err != nil {
			return fmt.Errorf("lỗi thêm documents batch %d-%d: %w", i, end, err)
		}
		s.logger.Info("Đã thêm batch documents",
			zap.Int("from", i),
			zap.Int("to", end),
			zap.Int64("task_uid", task.TaskUID))
	}

	s.logger.Info("Đã seed catalog thành công", zap.Int("total_documents", len(documents)))
	return nil
}
