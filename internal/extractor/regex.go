package extractor

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/kanine-extractor/internal/models"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
)

const (
	DefaultFilename = "Documento PDF"

	maxCancellationSnippets = 3
	maxCancellationLength   = 500
	cancellationLineSpan    = 3
	cancellationSeparator   = " | "

	minParagraphLength = 50
	maxSummaryLength   = 300

	partySeparator = " e "
)

// ExtractBaseline derives the regex-only record from text. It is pure:
// the same text always yields the same record.
func ExtractBaseline(text string) *models.ExtractedRecord {
	dates := ExtractDates(text)
	money := ExtractMoney(text)
	parties := ExtractParties(text)

	record := &models.ExtractedRecord{
		Filename:            DefaultFilename,
		Parties:             models.NotIdentified,
		SignatureDate:       models.NotIdentified,
		ExpiryDate:          models.NotIdentified,
		Value:               models.NotIdentified,
		CancellationClauses: ExtractCancellation(text),
		Summary:             Summarize(text),
		ExtractionMethod:    models.MethodRegex,
		RawText:             text,
	}

	if len(parties) > 0 {
		record.Parties = strings.Join(parties, partySeparator)
	}
	if len(dates) > 0 {
		record.SignatureDate = dates[0]
	}
	if len(dates) > 1 {
		record.ExpiryDate = dates[1]
	}
	if len(money) > 0 {
		record.Value = money[0]
	}

	return record
}

// ExtractDates returns every distinct date in order of first appearance,
// normalised to YYYY-MM-DD.
func ExtractDates(text string) []string {
	type match struct {
		pos   int
		value string
	}

	var found []match
	for _, m := range numericDatePattern.FindAllStringSubmatchIndex(text, -1) {
		day, month, year := text[m[2]:m[3]], text[m[4]:m[5]], text[m[6]:m[7]]
		found = append(found, match{m[0], formatDate(year, month, day)})
	}
	for _, m := range spelledDatePattern.FindAllStringSubmatchIndex(text, -1) {
		day, name, year := text[m[2]:m[3]], text[m[4]:m[5]], text[m[6]:m[7]]
		found = append(found, match{m[0], formatDate(year, monthsPT[strings.ToLower(name)], day)})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	dates := make([]string, 0, len(found))
	seen := make(map[string]bool, len(found))
	for _, f := range found {
		if seen[f.value] {
			continue
		}
		seen[f.value] = true
		dates = append(dates, f.value)
	}
	return dates
}

// NormalizeDate converts "15/03/2026" or "15 de março de 2026" to
// "2026-03-15". Anything else is returned trimmed and unchanged.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := spelledDatePattern.FindStringSubmatch(raw); m != nil {
		return formatDate(m[3], monthsPT[strings.ToLower(m[2])], m[1])
	}
	if m := numericDatePattern.FindStringSubmatch(raw); m != nil {
		return formatDate(m[3], m[2], m[1])
	}
	return raw
}

func formatDate(year, month, day string) string {
	if month == "" {
		month = "01"
	}
	return fmt.Sprintf("%s-%s-%s", year, padTwo(month), padTwo(day))
}

func padTwo(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

func ExtractMoney(text string) []string {
	return moneyPattern.FindAllString(text, -1)
}

// ExtractParties returns the distinct spans that follow a contracting role.
func ExtractParties(text string) []string {
	var parties []string
	seen := make(map[string]bool)
	for _, m := range partyPattern.FindAllStringSubmatch(text, -1) {
		clean := strings.TrimSuffix(strings.TrimSpace(m[1]), ".")
		if clean == "" || seen[clean] {
			continue
		}
		seen[clean] = true
		parties = append(parties, clean)
	}
	return parties
}

// ExtractCancellation collects up to three snippets, each a matching line
// and the two lines after it.
func ExtractCancellation(text string) string {
	lines := strings.Split(text, "\n")
	var snippets []string
	seen := make(map[string]bool)

	for i, line := range lines {
		if !matchesCancellation(line) {
			continue
		}
		end := min(i+cancellationLineSpan, len(lines))
		snippet := strings.TrimSpace(strings.Join(lines[i:end], " "))
		if snippet != "" && !seen[snippet] {
			seen[snippet] = true
			snippets = append(snippets, snippet)
		}
		if len(snippets) >= maxCancellationSnippets {
			break
		}
	}

	if len(snippets) == 0 {
		return models.NotIdentified
	}
	return utils.TruncateRunes(strings.Join(snippets, cancellationSeparator), maxCancellationLength)
}

func matchesCancellation(line string) bool {
	for _, p := range cancellationPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// Summarize returns the first paragraph longer than 50 characters, cut at
// 300 characters. Without one it falls back to the head of the text.
func Summarize(text string) string {
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) > minParagraphLength {
			return ellipsize(p)
		}
	}

	head := strings.TrimSpace(text)
	if head == "" {
		return models.NotIdentified
	}
	return ellipsize(head)
}

func ellipsize(s string) string {
	if utf8.RuneCountInString(s) <= maxSummaryLength {
		return s
	}
	return utils.TruncateRunes(s, maxSummaryLength) + "..."
}
