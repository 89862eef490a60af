package domain

// ChildProfile describes the learner a pack is written for
type ChildProfile struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

// Sentence is a short practice sentence
type Sentence struct {
	Text string `json:"text"`
}

// Story is a short read-along script
type Story struct {
	Title       string   `json:"title"`
	ScriptLines []string `json:"script_lines"`
}

// Game types understood by the presentation layer
const (
	GameMatch  = "match"
	GameFindIt = "find-it"
)

// GameItem is one word/image pair of a matching game
type GameItem struct {
	Word  string   `json:"word"`
	Image ImageRef `json:"image"`
}

// Game is a playable activity
type Game struct {
	Type   string     `json:"type"`
	Title  string     `json:"title,omitempty"`
	Prompt string     `json:"prompt,omitempty"`
	Items  []GameItem `json:"items,omitempty"`
}

// ParentCard is a bilingual guidance card for parents
type ParentCard struct {
	CN  string `json:"cn"`
	EN  string `json:"en"`
	Tip string `json:"tip"`
}

// DailyPack is the content bundle for one calendar date
type DailyPack struct {
	Date         string       `json:"date"`
	ChildProfile ChildProfile `json:"child_profile"`
	Theme        string       `json:"theme"`
	Words        []WordEntry  `json:"words"`
	Sentences    []Sentence   `json:"sentences"`
	Story        Story        `json:"story"`
	Games        []Game       `json:"games"`
	ParentCards  []ParentCard `json:"parent_cards"`
}
