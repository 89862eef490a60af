package domain

// ThemeWord is a catalog word with an optional color hint
type ThemeWord struct {
	Word      string `yaml:"word"`
	ColorHint string `yaml:"color"`
}

// Theme is a named group of words
type Theme struct {
	Name  string      `yaml:"name"`
	Words []ThemeWord `yaml:"words"`
}

// WordEntry represents a word card in a daily pack
type WordEntry struct {
	Text    string   `json:"text"`
	Phonics string   `json:"phonics"`
	Audio   string   `json:"audio"`
	Image   ImageRef `json:"image"`
	Hint    string   `json:"hint_cn"`
}
