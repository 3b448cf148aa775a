// Package prompt builds the word-of-the-day prompt for a language pair.
package prompt

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/alnah/go-wotd/internal/lang"
)

// Style name constants.
const (
	Daily = "daily"
	Brief = "brief"
)

// FrequencyListSize is the size of the frequency list words are drawn from.
const FrequencyListSize = 2000

// ---------------------------------------------------------------------------
// Style type - represents a validated prompt style
// ---------------------------------------------------------------------------

// Style represents a validated prompt style.
// Zero value is invalid and must not be used with Build().
type Style struct {
	name string
}

// Pre-parsed styles.
var (
	DailyStyle = Style{name: Daily}
	BriefStyle = Style{name: Brief}
)

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	if s == "" {
		return Style{}, fmt.Errorf("prompt style cannot be empty: %w", ErrUnknownStyle)
	}
	if _, ok := templates[s]; !ok {
		return Style{}, fmt.Errorf("unknown prompt style %q (available: %s): %w",
			s, strings.Join(Styles(), ", "), ErrUnknownStyle)
	}
	return Style{name: s}, nil
}

// String returns the style name.
func (s Style) String() string {
	return s.name
}

// IsZero reports whether the style is unset.
func (s Style) IsZero() bool {
	return s.name == ""
}

// Styles returns the available style names, sorted.
func Styles() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ---------------------------------------------------------------------------
// Build
// ---------------------------------------------------------------------------

type data struct {
	Word     lang.Language
	Native   lang.Language
	Opening  string
	ListSize int
}

// Build renders the prompt for style and pair.
func Build(style Style, pair lang.Pair) (string, error) {
	tmpl, ok := templates[style.name]
	if !ok {
		return "", fmt.Errorf("prompt style %q: %w", style.name, ErrUnknownStyle)
	}
	if pair.Word.IsZero() || pair.Native.IsZero() {
		return "", fmt.Errorf("incomplete language pair: %w", lang.ErrInvalid)
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data{
		Word:     pair.Word,
		Native:   pair.Native,
		Opening:  Opening(pair.Native),
		ListSize: FrequencyListSize,
	})
	if err != nil {
		return "", fmt.Errorf("render %s prompt: %w", style.name, err)
	}
	return buf.String(), nil
}

// openings holds the first line of the answer, in the learner's language.
var openings = map[string]string{
	"pl": "Słówko dnia na dziś:",
	"de": "Wort des Tages:",
	"en": "Word of the day:",
	"fr": "Le mot du jour :",
	"es": "La palabra del día:",
	"it": "La parola del giorno:",
	"pt": "A palavra do dia:",
	"nl": "Woord van de dag:",
	"cs": "Slovíčko dne:",
	"uk": "Слово дня:",
	"ru": "Слово дня:",
}

// Opening returns the line the answer must start with for a learner
// reading native. Unlisted languages use the English line.
func Opening(native lang.Language) string {
	if s, ok := openings[native.Base()]; ok {
		return s
	}
	return openings["en"]
}

// TrimPreamble drops any text a model put before the opening line.
// The text is returned unchanged when the opening line is absent.
func TrimPreamble(text string, native lang.Language) string {
	idx := strings.Index(text, Opening(native))
	if idx <= 0 {
		return text
	}
	return text[idx:]
}

var templates = map[string]*template.Template{
	Daily: template.Must(template.New(Daily).Parse(dailyPrompt)),
	Brief: template.Must(template.New(Brief).Parse(briefPrompt)),
}

const briefPrompt = `Word of the day in {{.Word.Name}} from the {{.ListSize}} most common words, with pronunciation and examples, written for a {{.Native.Name}} speaker. Start with: {{.Opening}}`

const dailyPrompt = `Generate a word of the day from the {{.ListSize}} most common {{.Word.Name}} words, with its pronunciation, its meaning and 3 example sentences.

Write in {{.Native.Name}}, in a friendly, light tone, as for a friend learning {{.Word.Name}}.
Use emoji. Put the {{.Word.Flag}} flag next to {{.Word.Name}} text and the {{.Native.Flag}} flag next to {{.Native.Name}} translations.

VERY IMPORTANT: your answer MUST start EXACTLY with the text "{{.Opening}}".
Do NOT add any introduction, greeting or text before "{{.Opening}}"!

MARKDOWN FORMATTING:
- Use ### for the word heading
- **bold** for labels (Pronunciation, Meaning, etc.), translated into {{.Native.Name}}
- Use --- for the horizontal rule
- Blank lines between sections

EXACT STRUCTURE (copy this format exactly):

{{.Opening}}

### word {{.Word.Flag}}

**Pronunciation:** [IPA transcription] – **for {{.Native.Name}} speakers:** [how-it-sounds]

**Meaning:** meaning in {{.Native.Name}}

**Example sentences:**

1. {{.Word.Flag}} First {{.Word.Name}} sentence with emoji. 😊  
   {{.Native.Flag}} First {{.Native.Name}} translation. (Optional hint)

2. {{.Word.Flag}} Second {{.Word.Name}} sentence with emoji. 🎉  
   {{.Native.Flag}} Second {{.Native.Name}} translation. (Optional hint)

3. {{.Word.Flag}} Third {{.Word.Name}} sentence with emoji. 🌟  
   {{.Native.Flag}} Third {{.Native.Name}} translation. (Optional hint)

---

**Fun fact:** An idiom, cultural context or funny association related to the word. ALL {{.Word.Name}} words and phrases in this section MUST be in backticks: ` + "`like inline code`" + `.

CRITICAL FORMATTING:
- **Pronunciation:** MUST contain both the IPA transcription (e.g. [ˈɪmɐ]) AND a phonetic spelling for {{.Native.Name}} speakers (e.g. [imer])
- Use [] for IPA transcriptions
- **Fun fact:** wrap ALL {{.Word.Name}} words/phrases in backticks ` + "`like code`" + ` for readability
- Each item (1., 2., 3.) is a separate list entry
- After the {{.Word.Name}} sentence: two spaces + new line
- Indent the {{.Native.Name}} translation by 3 spaces
- Do NOT put blank lines between {{.Word.Flag}} and {{.Native.Flag}} in the same item
- Do NOT put blank lines between items 1, 2, 3
- Keep the numbering continuous!

FIRST LINE OF THE ANSWER: "{{.Opening}}" (no text before it!)`
