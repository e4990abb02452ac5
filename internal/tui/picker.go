package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type pickerItem struct {
	Index   int
	Label   string
	Section string
	Search  string
}

type pickerAction int

const (
	pickerActionNone pickerAction = iota
	pickerActionMoved
	pickerActionSelected
	pickerActionCancelled
)

type pickerResult struct {
	Action pickerAction
	Item   pickerItem
}

// picker filters a list of items by a typed query. Subsequence matches rank
// first; otherwise words within a small edit distance of the query match.
type picker struct {
	title    string
	items    []pickerItem
	filtered []pickerItem
	query    string
	cursor   int
}

func newPicker(title string, items []pickerItem) *picker {
	p := &picker{title: strings.TrimSpace(title)}
	p.items = append([]pickerItem(nil), items...)
	p.rebuildFiltered()
	return p
}

func (p *picker) Items() []pickerItem { return append([]pickerItem(nil), p.filtered...) }
func (p *picker) Query() string       { return p.query }
func (p *picker) Cursor() int         { return p.cursor }

func (p *picker) SetQuery(q string) {
	p.query = q
	p.rebuildFiltered()
}

func (p *picker) CurrentItem() (pickerItem, bool) {
	if len(p.filtered) == 0 {
		return pickerItem{}, false
	}
	return p.filtered[max(0, min(p.cursor, len(p.filtered)-1))], true
}

func (p *picker) HandleKey(keyName string) pickerResult {
	switch keyName {
	case "up", "shift+tab", "ctrl+k":
		if p.cursor > 0 {
			p.cursor--
			return pickerResult{Action: pickerActionMoved}
		}
		return pickerResult{Action: pickerActionNone}
	case "down", "tab", "ctrl+j":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
			return pickerResult{Action: pickerActionMoved}
		}
		return pickerResult{Action: pickerActionNone}
	case "enter":
		item, ok := p.CurrentItem()
		if !ok {
			return pickerResult{Action: pickerActionNone}
		}
		return pickerResult{Action: pickerActionSelected, Item: item}
	case "esc":
		return pickerResult{Action: pickerActionCancelled}
	case "backspace":
		if len(p.query) > 0 {
			p.SetQuery(p.query[:len(p.query)-1])
		}
		return pickerResult{Action: pickerActionNone}
	case " ":
		p.SetQuery(p.query + " ")
		return pickerResult{Action: pickerActionNone}
	default:
		if isPrintableASCIIKey(keyName) {
			p.SetQuery(p.query + keyName)
		}
		return pickerResult{Action: pickerActionNone}
	}
}

type scoredPickerItem struct {
	item  pickerItem
	score int
	index int
}

func (p *picker) rebuildFiltered() {
	q := strings.TrimSpace(p.query)
	scored := make([]scoredPickerItem, 0, len(p.items))
	for idx, item := range p.items {
		search := strings.TrimSpace(item.Search)
		if search == "" {
			search = item.Label
		}
		matched, score := matchScore(search, q)
		if !matched {
			continue
		}
		scored = append(scored, scoredPickerItem{item: item, score: score, index: idx})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})
	p.filtered = p.filtered[:0]
	for _, row := range scored {
		p.filtered = append(p.filtered, row.item)
	}
	p.cursor = max(0, min(p.cursor, len(p.filtered)-1))
}

// matchScore prefers ordered subsequence matches; failing that, a word of
// label within a typo's reach of the query still matches with a low score.
func matchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	if ok, score := fuzzyMatchScore(label, query); ok {
		return true, 100 + score
	}
	q := strings.ToLower(query)
	best := -1
	for _, word := range strings.FieldsFunc(strings.ToLower(label), func(r rune) bool { return r == ' ' || r == '-' }) {
		if len(word) > len(q) {
			word = word[:len(q)+1]
		}
		d := levenshtein.ComputeDistance(q, word)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 || best > max(2, len(q)/3) {
		return false, 0
	}
	return true, 50 - 10*best
}

func fuzzyMatchScore(label, query string) (bool, int) {
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	matchIdx := make([]int, 0, len(queryLower))
	searchFrom := 0
	for i := 0; i < len(queryLower); i++ {
		ch := queryLower[i]
		found := false
		for j := searchFrom; j < len(labelLower); j++ {
			if labelLower[j] == ch {
				matchIdx = append(matchIdx, j)
				searchFrom = j + 1
				found = true
				break
			}
		}
		if !found {
			return false, 0
		}
	}

	score := len(queryLower)
	if len(matchIdx) > 0 && matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}

func isPrintableASCIIKey(keyName string) bool {
	return len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127
}

func (p *picker) view(height int) string {
	lines := make([]string, 0, len(p.filtered)+4)
	q := p.query
	if strings.TrimSpace(q) == "" {
		q = mutedStyle.Render("(type to filter)")
	}
	lines = append(lines, stepTitleStyle.Render(p.title), "Filter: "+q, "")
	if len(p.filtered) == 0 {
		lines = append(lines, mutedStyle.Render("  No matching steps"))
	}
	for i, item := range p.filtered {
		prefix := "  "
		label := item.Label
		if i == p.cursor {
			prefix = "› "
			label = keyStyle.Render(label)
		}
		lines = append(lines, prefix+label+"  "+mutedStyle.Render(item.Section))
	}
	return clipHeight(strings.Join(lines, "\n"), height)
}
