package services

import (
	"strings"

	"PinguinAgent/models"
)

// Category names shared with the parent backend.
const (
	CategoryGames     = "games"
	CategorySocial    = "social"
	CategoryVideo     = "video"
	CategoryEducation = "education"
	CategoryOther     = "other"
)

// knownApps maps well-known packages directly to a category.
var knownApps = map[string]string{
	"com.instagram.android":          CategorySocial,
	"com.facebook.katana":            CategorySocial,
	"com.snapchat.android":           CategorySocial,
	"com.whatsapp":                   CategorySocial,
	"org.telegram.messenger":         CategorySocial,
	"com.zhiliaoapp.musically":       CategoryVideo, // TikTok
	"com.google.android.youtube":     CategoryVideo,
	"com.netflix.mediaclient":        CategoryVideo,
	"com.twitch.android.app":         CategoryVideo,
	"com.roblox.client":              CategoryGames,
	"com.mojang.minecraftpe":         CategoryGames,
	"com.supercell.clashofclans":     CategoryGames,
	"com.kiloo.subwaysurf":           CategoryGames,
	"com.duolingo":                   CategoryEducation,
	"org.khanacademy.android":        CategoryEducation,
	"com.google.android.apps.classroom": CategoryEducation,
}

// categoryHints is the fallback heuristic: substring families checked in
// order when the package is not in the table.
var categoryHints = []struct {
	substring string
	category  string
}{
	{"game", CategoryGames},
	{"play.games", CategoryGames},
	{"social", CategorySocial},
	{"chat", CategorySocial},
	{"messenger", CategorySocial},
	{"video", CategoryVideo},
	{"tube", CategoryVideo},
	{"tv", CategoryVideo},
	{"edu", CategoryEducation},
	{"learn", CategoryEducation},
	{"school", CategoryEducation},
}

// CategoryService maps app packages to categories. Classification is pure;
// the parent's manual override always wins and is never recomputed here.
type CategoryService struct {
	table map[string]string
}

func NewCategoryService() *CategoryService {
	return &CategoryService{table: knownApps}
}

// NewCategoryServiceWithTable lets tests and future remote config plug in a
// different lookup table.
func NewCategoryServiceWithTable(table map[string]string) *CategoryService {
	return &CategoryService{table: table}
}

func (s *CategoryService) Classify(appPackage string) string {
	if cat, ok := s.table[appPackage]; ok {
		return cat
	}

	lower := strings.ToLower(appPackage)
	for _, hint := range categoryHints {
		if strings.Contains(lower, hint.substring) {
			return hint.category
		}
	}
	return CategoryOther
}

// EffectiveCategory returns the manual override when the parent set one,
// otherwise the classifier output stored on the record.
func (s *CategoryService) EffectiveCategory(record models.AppRecord) string {
	if record.ManualCategory != "" {
		return record.ManualCategory
	}
	if record.Category != "" {
		return record.Category
	}
	return s.Classify(record.AppPackage)
}
