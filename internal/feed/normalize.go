package feed

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	placeholder = "-"
	liveMarker  = "[Live]"
)

var (
	sittingOverRe = regexp.MustCompile(`(?i)sitting\s+over`)
	recessRe      = regexp.MustCompile(`(?i)\(\s*recess\s*\)`)
	firstIntRe    = regexp.MustCompile(`\d+`)
)

// Normalize turns one raw board payload — the loosely-typed row list and the
// accompanying markup fragment — into a Snapshot. A malformed row is skipped
// and the batch continues; only an unparseable markup fragment fails the
// whole payload.
func Normalize(rows []map[string]any, markup string, base *url.URL, scrapedAt time.Time, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse board markup: %w", err)
	}

	// Index markup cards by the shared court id.
	cards := make(map[string]*goquery.Selection)
	doc.Find("[data-court]").Each(func(_ int, s *goquery.Selection) {
		if id := strings.TrimSpace(s.AttrOr("data-court", "")); id != "" {
			cards[id] = s
		}
	})

	records := make([]CourtRecord, 0, len(rows))
	for _, m := range rows {
		row := RowFromMap(m)
		if row.CourtID == "" {
			logger.Debug("Skipping board row without court id")
			continue
		}

		card := cards[row.CourtID]
		status, caseNumber := classifyCase(row.CaseInfo)

		rec := CourtRecord{
			CourtID:       row.CourtID,
			CourtNumber:   row.CourtNumber,
			JudgeName:     judgeName(card),
			Bench:         benchType(card),
			IsLive:        liveIndicator(card),
			CaseNumber:    caseNumber,
			Status:        status,
			QueuePosition: queuePosition(row.Serial, card),
			StreamURL:     streamURL(card, base),
			ScrapedAt:     scrapedAt,
		}
		records = append(records, rec)
	}

	sortByCourtNumber(records)

	return &Snapshot{ScrapedAt: scrapedAt, Courts: records}, nil
}

// --------------------------------------------------------------------------
// Case status classification
// --------------------------------------------------------------------------

// classifyCase applies the ordered pattern rules to the free-text case info
// field. Rules are ordered: sitting-over beats recess beats in-session.
func classifyCase(info string) (CaseStatus, string) {
	text := strings.TrimSpace(info)
	if text == "" || text == placeholder {
		return StatusUnknown, ""
	}
	if sittingOverRe.MatchString(text) {
		return StatusSittingOver, ""
	}
	if recessRe.MatchString(text) {
		return StatusRecess, strings.TrimSpace(recessRe.ReplaceAllString(text, ""))
	}
	return StatusInSession, text
}

// --------------------------------------------------------------------------
// Markup extraction
// --------------------------------------------------------------------------

// judgeSources is the ordered fallback chain for the judge name: the
// dedicated category field first, then the header, title and body regions.
// First non-empty text wins.
var judgeSources = []func(*goquery.Selection) string{
	func(s *goquery.Selection) string { return cardText(s, ".category") },
	func(s *goquery.Selection) string { return cardText(s, ".board-header") },
	func(s *goquery.Selection) string { return cardText(s, ".board-title") },
	func(s *goquery.Selection) string { return cardText(s, ".board-body") },
}

func judgeName(card *goquery.Selection) string {
	if card == nil {
		return ""
	}
	for _, source := range judgeSources {
		if v := source(card); v != "" {
			return strings.TrimSpace(strings.ReplaceAll(v, liveMarker, ""))
		}
	}
	return ""
}

// benchType classifies the bench from the judge photo count: two or more
// photos means a division bench.
func benchType(card *goquery.Selection) BenchType {
	if card != nil && card.Find("img").Length() >= 2 {
		return BenchDivision
	}
	return BenchSingle
}

// liveIndicator reports presence of the blinking live marker.
func liveIndicator(card *goquery.Selection) bool {
	return card != nil && card.Find(".blink, .live-indicator").Length() > 0
}

// streamURL extracts the card's first link, rewriting relative paths to
// absolute against the feed's base origin.
func streamURL(card *goquery.Selection, base *url.URL) string {
	if card == nil {
		return ""
	}
	href := strings.TrimSpace(card.Find("a[href]").First().AttrOr("href", ""))
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.IsAbs() || base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}

// queuePosition parses the queue serial. The row field is the primary
// source; the markup serial element is consulted only when the row field is
// absent or a placeholder. The first embedded integer of the chosen source
// is the position; anything else yields nil.
func queuePosition(rowSerial string, card *goquery.Selection) *int {
	source := strings.TrimSpace(rowSerial)
	if source == "" || source == placeholder {
		source = ""
		if card != nil {
			source = cardText(card, ".sr-no")
		}
	}
	if source == "" || source == placeholder {
		return nil
	}
	digits := firstIntRe.FindString(source)
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func cardText(card *goquery.Selection, selector string) string {
	return strings.TrimSpace(card.Find(selector).First().Text())
}

// --------------------------------------------------------------------------
// Ordering
// --------------------------------------------------------------------------

// sortByCourtNumber orders records by ascending numeric court number.
// Non-numeric court numbers sort last, keeping their feed order.
func sortByCourtNumber(records []CourtRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, aok := numericCourt(records[i].CourtNumber)
		b, bok := numericCourt(records[j].CourtNumber)
		switch {
		case aok && bok:
			return a < b
		case aok:
			return true
		default:
			return false
		}
	})
}

func numericCourt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}
