package feed

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scrapeTime = time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)

func mustBase(t *testing.T) *url.URL {
	t.Helper()
	base, err := url.Parse("https://board.example.org")
	require.NoError(t, err)
	return base
}

func normalizeOne(t *testing.T, row map[string]any, markup string) CourtRecord {
	t.Helper()
	snap, err := Normalize([]map[string]any{row}, markup, mustBase(t), scrapeTime, nil)
	require.NoError(t, err)
	require.Len(t, snap.Courts, 1)
	return snap.Courts[0]
}

func TestNormalize_SittingOverHasNoCaseNumber(t *testing.T) {
	rec := normalizeOne(t, map[string]any{
		"court_id": "c5", "court_no": "5", "case_info": "Court is Sitting Over",
	}, "")

	assert.Equal(t, StatusSittingOver, rec.Status)
	assert.Empty(t, rec.CaseNumber)
}

func TestNormalize_RecessStripsMarker(t *testing.T) {
	rec := normalizeOne(t, map[string]any{
		"court_id": "c5", "court_no": "5", "case_info": "W.P. 1234/2024 (RECESS)",
	}, "")

	assert.Equal(t, StatusRecess, rec.Status)
	assert.Equal(t, "W.P. 1234/2024", rec.CaseNumber)
}

func TestNormalize_InSessionKeepsRawText(t *testing.T) {
	rec := normalizeOne(t, map[string]any{
		"court_id": "c2", "court_no": "2", "case_info": "CRL.A. 77/2025",
	}, "")

	assert.Equal(t, StatusInSession, rec.Status)
	assert.Equal(t, "CRL.A. 77/2025", rec.CaseNumber)
	assert.True(t, rec.IsActive())
}

func TestNormalize_PlaceholderCaseInfoIsUnknown(t *testing.T) {
	for _, info := range []string{"", "-", "  "} {
		rec := normalizeOne(t, map[string]any{
			"court_id": "c3", "court_no": "3", "case_info": info,
		}, "")
		assert.Equal(t, StatusUnknown, rec.Status, "case_info=%q", info)
		assert.Empty(t, rec.CaseNumber)
	}
}

func TestNormalize_JudgeFallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name: "category wins",
			markup: `<div data-court="c1">
				<div class="category">HON'BLE MR. JUSTICE A. SHARMA</div>
				<div class="board-header">ignored</div></div>`,
			want: "HON'BLE MR. JUSTICE A. SHARMA",
		},
		{
			name: "header when category empty",
			markup: `<div data-court="c1">
				<div class="category"> </div>
				<div class="board-header">HON'BLE MS. JUSTICE B. RAO</div></div>`,
			want: "HON'BLE MS. JUSTICE B. RAO",
		},
		{
			name:   "body as last resort",
			markup: `<div data-court="c1"><div class="board-body">HON'BLE MR. JUSTICE C. DAS</div></div>`,
			want:   "HON'BLE MR. JUSTICE C. DAS",
		},
		{
			name:   "live marker stripped",
			markup: `<div data-court="c1"><div class="category">[Live] HON'BLE MR. JUSTICE A. SHARMA</div></div>`,
			want:   "HON'BLE MR. JUSTICE A. SHARMA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := normalizeOne(t, map[string]any{
				"court_id": "c1", "court_no": "1", "case_info": "X 1/2026",
			}, tt.markup)
			assert.Equal(t, tt.want, rec.JudgeName)
		})
	}
}

func TestNormalize_BenchTypeFromPhotoCount(t *testing.T) {
	single := normalizeOne(t, map[string]any{"court_id": "c1", "court_no": "1"},
		`<div data-court="c1"><img src="/j1.jpg"></div>`)
	assert.Equal(t, BenchSingle, single.Bench)

	division := normalizeOne(t, map[string]any{"court_id": "c1", "court_no": "1"},
		`<div data-court="c1"><img src="/j1.jpg"><img src="/j2.jpg"></div>`)
	assert.Equal(t, BenchDivision, division.Bench)
}

func TestNormalize_StreamURLRewrittenToAbsolute(t *testing.T) {
	rec := normalizeOne(t, map[string]any{"court_id": "c1", "court_no": "1"},
		`<div data-court="c1"><a href="/stream/court-1">Watch</a></div>`)
	assert.Equal(t, "https://board.example.org/stream/court-1", rec.StreamURL)

	abs := normalizeOne(t, map[string]any{"court_id": "c1", "court_no": "1"},
		`<div data-court="c1"><a href="https://cdn.example.net/live/1">Watch</a></div>`)
	assert.Equal(t, "https://cdn.example.net/live/1", abs.StreamURL)
}

func TestNormalize_LiveIndicator(t *testing.T) {
	live := normalizeOne(t, map[string]any{"court_id": "c1", "court_no": "1"},
		`<div data-court="c1"><span class="blink">LIVE</span></div>`)
	assert.True(t, live.IsLive)

	quiet := normalizeOne(t, map[string]any{"court_id": "c1", "court_no": "1"},
		`<div data-court="c1"></div>`)
	assert.False(t, quiet.IsLive)
}

func TestNormalize_QueuePosition(t *testing.T) {
	tests := []struct {
		name   string
		serial any
		markup string
		want   *int
	}{
		{name: "plain integer", serial: "12", want: intPtr(12)},
		{name: "numeric json value", serial: float64(7), want: intPtr(7)},
		{name: "embedded integer", serial: "Sr. No. 15", want: intPtr(15)},
		{name: "non-numeric row value yields nil", serial: "tbd", want: nil},
		{
			name:   "placeholder falls back to markup",
			serial: "-",
			markup: `<div data-court="c1"><span class="sr-no">Sr. 9</span></div>`,
			want:   intPtr(9),
		},
		{name: "absent everywhere", serial: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := normalizeOne(t, map[string]any{
				"court_id": "c1", "court_no": "1", "sr_no": tt.serial,
			}, tt.markup)
			if tt.want == nil {
				assert.Nil(t, rec.QueuePosition)
			} else {
				require.NotNil(t, rec.QueuePosition)
				assert.Equal(t, *tt.want, *rec.QueuePosition)
			}
		})
	}
}

func TestNormalize_RowsWithoutIdentifierAreDropped(t *testing.T) {
	rows := []map[string]any{
		{"court_no": "1", "case_info": "X 1/2026"},
		{"court_id": "c2", "court_no": "2", "case_info": "Y 2/2026"},
		nil,
	}
	snap, err := Normalize(rows, "", mustBase(t), scrapeTime, nil)
	require.NoError(t, err)
	require.Len(t, snap.Courts, 1)
	assert.Equal(t, "c2", snap.Courts[0].CourtID)
}

func TestNormalize_OrderedByNumericCourtNumber(t *testing.T) {
	rows := []map[string]any{
		{"court_id": "cR", "court_no": "Registrar"},
		{"court_id": "c10", "court_no": "10"},
		{"court_id": "c2", "court_no": "2"},
		{"court_id": "cL", "court_no": "Lok Adalat"},
	}
	snap, err := Normalize(rows, "", mustBase(t), scrapeTime, nil)
	require.NoError(t, err)

	var order []string
	for _, r := range snap.Courts {
		order = append(order, r.CourtNumber)
	}
	// Numeric ascending first; non-numeric keep feed order at the end.
	assert.Equal(t, []string{"2", "10", "Registrar", "Lok Adalat"}, order)
}

func TestNormalize_SharedScrapeTime(t *testing.T) {
	rows := []map[string]any{
		{"court_id": "c1", "court_no": "1"},
		{"court_id": "c2", "court_no": "2"},
	}
	snap, err := Normalize(rows, "", mustBase(t), scrapeTime, nil)
	require.NoError(t, err)

	assert.Equal(t, scrapeTime, snap.ScrapedAt)
	for _, r := range snap.Courts {
		assert.Equal(t, scrapeTime, r.ScrapedAt)
	}
}

func TestStringify_LooseTypes(t *testing.T) {
	assert.Equal(t, "15", Stringify(float64(15)))
	assert.Equal(t, "2.5", Stringify(2.5))
	assert.Equal(t, "x", Stringify("  x  "))
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "true", Stringify(true))
}

func intPtr(n int) *int { return &n }
