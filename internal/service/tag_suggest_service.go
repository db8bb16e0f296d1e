package service

import (
	"regexp"
	"sort"
	"strings"
)

// commonTags is the closed vocabulary tag suggestions are drawn from.
var commonTags = []string{
	"electronics", "clothing", "home", "kitchen", "beauty", "sports", "books",
	"toys", "garden", "office", "automotive", "health", "food", "beverages",
	"furniture", "jewelry", "pet", "baby", "outdoor", "indoor", "digital",
	"physical", "premium", "budget", "eco-friendly", "sustainable", "vintage",
	"modern", "classic", "luxury", "casual",
}

// tagKeywords maps each tag to related keywords that count toward its score.
var tagKeywords = map[string][]string{
	"electronics": {"electronic", "digital", "tech", "computer", "phone", "laptop", "gadget"},
	"clothing":    {"clothes", "shirt", "dress", "jacket", "pants", "shoes", "fashion"},
	"home":        {"home", "house", "apartment", "living", "room", "bedroom"},
	"kitchen":     {"kitchen", "cook", "cooking", "utensil", "appliance", "food"},
	"beauty":      {"beauty", "cosmetic", "makeup", "skincare", "perfume", "fragrance"},
	"sports":      {"sport", "fitness", "exercise", "gym", "athletic", "training"},
	"books":       {"book", "reading", "literature", "novel", "textbook", "magazine"},
	"toys":        {"toy", "game", "play", "children", "kids", "entertainment"},
	"garden":      {"garden", "plant", "flower", "outdoor", "lawn", "yard"},
	"office":      {"office", "work", "business", "stationery", "desk", "chair"},
	"automotive":  {"car", "vehicle", "auto", "automotive", "tire", "engine"},
	"health":      {"health", "medical", "wellness", "fitness", "vitamin", "supplement"},
	"food":        {"food", "grocery", "snack", "meal", "ingredient", "recipe"},
	"beverages":   {"drink", "beverage", "water", "juice", "coffee", "tea"},
	"furniture":   {"furniture", "table", "chair", "sofa", "bed", "cabinet"},
	"jewelry":     {"jewelry", "accessory", "necklace", "ring", "bracelet", "watch"},
	"pet":         {"pet", "animal", "dog", "cat", "pet food", "pet care"},
	"baby":        {"baby", "infant", "child", "toy", "diaper", "stroller"},
	"outdoor":     {"outdoor", "camping", "hiking", "sport", "recreation"},
	"indoor":      {"indoor", "home", "house", "apartment", "room"},
	"digital":     {"digital", "online", "virtual", "software", "app", "download"},
	"physical":    {"physical", "tangible", "material", "product", "item"},
	"premium":     {"premium", "luxury", "high-end", "exclusive", "quality"},
	"budget":      {"budget", "affordable", "cheap", "economical", "value"},
	"eco-friendly": {"eco", "green", "sustainable", "environmental", "recycled"},
	"sustainable": {"sustainable", "eco", "green", "environmental", "recycled"},
	"vintage":     {"vintage", "retro", "classic", "antique", "old"},
	"modern":      {"modern", "contemporary", "new", "current", "trendy"},
	"classic":     {"classic", "traditional", "timeless", "vintage", "retro"},
	"luxury":      {"luxury", "premium", "high-end", "exclusive", "quality"},
	"casual":      {"casual", "everyday", "informal", "comfortable", "relaxed"},
}

// TagSuggestService proposes catalog tags for a product from its name and
// description using keyword scoring over a fixed tag vocabulary.
type TagSuggestService struct{}

func NewTagSuggestService() *TagSuggestService {
	return &TagSuggestService{}
}

// Suggest returns up to three tags, best score first. Tags that score zero
// against the text are never suggested.
func (s *TagSuggestService) Suggest(name, description string) []string {
	text := strings.ToLower(name + " " + description)

	type scored struct {
		tag   string
		score float64
	}
	scores := make([]scored, 0, len(commonTags))
	for _, tag := range commonTags {
		scores = append(scores, scored{tag: tag, score: tagScore(text, tag)})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	suggested := []string{}
	for _, sc := range scores {
		if len(suggested) == 3 {
			break
		}
		if sc.score > 0 {
			suggested = append(suggested, sc.tag)
		}
	}
	return suggested
}

// tagScore weights a substring hit of the tag itself, hits of its related
// keywords, and a whole-word match of the tag.
func tagScore(text, tag string) float64 {
	score := 0.0
	if strings.Contains(text, tag) {
		score += 2.0
	}
	for _, keyword := range tagKeywords[tag] {
		if strings.Contains(text, keyword) {
			score += 1.0
		}
	}
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(tag) + `\b`)
	if pattern.MatchString(text) {
		score += 1.5
	}
	return score
}
