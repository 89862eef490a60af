package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"dailypack/internal/domain"
	"dailypack/internal/prompt"
)

// ErrTooFewWords is returned when a pack cannot reference its first two words
var ErrTooFewWords = errors.New("at least 2 resolved words are required")

// Language is the target language of every pack
const Language = "en-US"

const findItPrompt = "Find something at home that matches one of today's words and say it out loud!"

// colorNames maps catalog color hints to the wording used in hint_cn
var colorNames = map[string]string{
	"red":    "红色",
	"yellow": "黄色",
	"purple": "紫色",
	"green":  "绿色",
	"orange": "橙色",
	"black":  "黑色",
	"brown":  "棕色",
	"blue":   "蓝色",
	"pink":   "粉色",
	"white":  "白色",
	"gray":   "灰色",
}

// Assembler fills the pack templates
type Assembler struct {
	childName string
}

// NewAssembler creates an assembler addressing the given child
func NewAssembler(childName string) *Assembler {
	return &Assembler{childName: childName}
}

// Entry builds the word card for a catalog word and its resolved image
func (a *Assembler) Entry(w domain.ThemeWord, image domain.ImageRef) domain.WordEntry {
	return domain.WordEntry{
		Text:    w.Word,
		Phonics: phonics(w.Word),
		Audio:   "tts:" + Language + ":" + w.Word,
		Image:   image,
		Hint:    hint(w),
	}
}

// Assemble builds the daily pack from the resolved word cards
func (a *Assembler) Assemble(day domain.Day, theme string, words []domain.WordEntry) (*domain.DailyPack, error) {
	if len(words) < 2 {
		return nil, fmt.Errorf("assemble pack for %s: %w (got %d)", day.Key(), ErrTooFewWords, len(words))
	}

	w0, w1 := words[0].Text, words[1].Text
	child := a.childName

	items := make([]domain.GameItem, 0, len(words))
	for _, w := range words {
		items = append(items, domain.GameItem{Word: w.Text, Image: w.Image})
	}

	return &domain.DailyPack{
		Date:         day.Key(),
		ChildProfile: domain.ChildProfile{Name: child, Language: Language},
		Theme:        theme,
		Words:        words,
		Sentences: []domain.Sentence{
			{Text: fmt.Sprintf("I see %s.", withArticle(w0))},
			{Text: fmt.Sprintf("I like the %s.", w1)},
		},
		Story: domain.Story{
			Title: fmt.Sprintf("%s and the %s", child, capitalize(w0)),
			ScriptLines: []string{
				fmt.Sprintf("Hello, %s!", child),
				fmt.Sprintf("Look, %s!", withArticle(w0)),
				fmt.Sprintf("%s likes the %s.", child, w1),
				fmt.Sprintf("Bye-bye, %s! Bye-bye, %s!", w0, w1),
			},
		},
		Games: []domain.Game{
			{Type: domain.GameMatch, Title: "Match the word to the picture", Items: items},
			{Type: domain.GameFindIt, Prompt: findItPrompt},
		},
		ParentCards: []domain.ParentCard{
			{
				CN:  fmt.Sprintf("今天的单词：%s、%s", w0, w1),
				EN:  fmt.Sprintf("Today's words: %s, %s", w0, w1),
				Tip: "每个词练 1–2 分钟即可，多看图多指物。",
			},
			{
				CN:  fmt.Sprintf("指着图片问：这是 %s 吗？", w0),
				EN:  fmt.Sprintf("Is this %s?", withArticle(w0)),
				Tip: "孩子答错先鼓励，再示范一次。",
			},
			{
				CN:  fmt.Sprintf("一起找一找：%s 在哪里？", w1),
				EN:  fmt.Sprintf("Where is the %s?", w1),
				Tip: "把英语融入生活，找到后大声说出来。",
			},
		},
	}, nil
}

// phonics returns "A is for apple"
func phonics(word string) string {
	r, _ := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return ""
	}
	return fmt.Sprintf("%c is for %s", unicode.ToUpper(r), word)
}

func hint(w domain.ThemeWord) string {
	if prompt.IsAction(w.Word) {
		return fmt.Sprintf("一起做动作，边做边说 %s！", w.Word)
	}
	if color, ok := colorNames[strings.ToLower(w.ColorHint)]; ok {
		return fmt.Sprintf("找一找%s的 %s", color, w.Word)
	}
	return fmt.Sprintf("指一指 %s，说一说 %s", w.Word, w.Word)
}

func withArticle(word string) string {
	if word != "" && strings.ContainsRune("aeiou", unicode.ToLower(rune(word[0]))) {
		return "an " + word
	}
	return "a " + word
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}
