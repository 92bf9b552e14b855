package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/platform/gemini"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

func descriptors(t *testing.T, js string) []Descriptor {
	t.Helper()
	ds, err := ParseDescriptors(js)
	if err != nil {
		t.Fatalf("ParseDescriptors(%q): %v", js, err)
	}
	return ds
}

func TestValueCoercion(t *testing.T) {
	ds := descriptors(t, `[{"a": 7.9, "b": -2.5, "c": " 12 ", "d": "abc", "e": true, "f": "  ", "g": null, "h": 1e40}]`)
	d := ds[0]

	for key, want := range map[string]int{"a": 7, "b": -2, "c": 12} {
		got, ok := d[key].AsInt()
		if !ok || got != want {
			t.Fatalf("AsInt(%s): got %d ok=%v want %d", key, got, ok, want)
		}
	}
	for _, key := range []string{"d", "e", "f", "g", "missing"} {
		if _, ok := d[key].AsInt(); ok {
			t.Fatalf("AsInt(%s): expected not ok", key)
		}
	}
	if got, ok := d["h"].AsInt(); !ok || got != 2147483647 {
		t.Fatalf("AsInt(h): expected saturation, got %d ok=%v", got, ok)
	}
	if _, ok := d["f"].AsString(); ok {
		t.Fatalf("AsString(blank): expected not ok")
	}
	if _, ok := d["a"].AsString(); ok {
		t.Fatalf("AsString(number): expected not ok")
	}
	if s, ok := d["d"].AsString(); !ok || s != "abc" {
		t.Fatalf("AsString: got %q ok=%v", s, ok)
	}
}

func TestParseDescriptors_Fenced(t *testing.T) {
	text := "Here you go:\n```json\n[{\"description\":\"Walk\",\"type\":\"physical\",\"duration\":15,\"difficulty\":2,\"priority\":1}]\n```"
	ds, err := ParseDescriptors(text)
	if err != nil {
		t.Fatalf("ParseDescriptors: %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("ParseDescriptors: expected 1 descriptor, got %d", len(ds))
	}
	a := NormalizeOne(uuid.New(), ds[0])
	if a.Description != "Walk" || a.ActivityType != "physical" || a.EstimatedDurationMinutes != 15 ||
		a.DifficultyLevel != 2 || a.PriorityLevel != 1 || a.IsCompleted {
		t.Fatalf("NormalizeOne: %+v", a)
	}
}

func TestParseDescriptors_Malformed(t *testing.T) {
	cases := []string{
		"I cannot help with that.",
		"] backwards [",
		"[]",
		"[1, 2]",
		"[{\"a\": }]",
		"[{\"a\":1}] trailing [junk]",
	}
	for _, text := range cases {
		_, err := ParseDescriptors(text)
		var malErr *MalformedResponseError
		if !errors.As(err, &malErr) {
			t.Fatalf("ParseDescriptors(%q): expected MalformedResponseError, got %v", text, err)
		}
	}
}

func TestExtractText(t *testing.T) {
	raw := []byte(`{"candidates":[{"content":{"parts":[{"text":"  [ ]  "}]}}],"usageMetadata":{"totalTokenCount":12}}`)
	text, err := ExtractText(raw)
	if err != nil || text != "[ ]" {
		t.Fatalf("ExtractText: text=%q err=%v", text, err)
	}
	if usage := ExtractUsage(raw); !strings.Contains(string(usage), "totalTokenCount") {
		t.Fatalf("ExtractUsage: got %s", usage)
	}

	for _, bad := range []string{
		`not json`,
		`{}`,
		`{"candidates":[]}`,
		`{"candidates":[{}]}`,
		`{"candidates":[{"content":{"parts":[]}}]}`,
		`{"candidates":[{"content":{"parts":[{"inlineData":{}}]}}]}`,
	} {
		_, err := ExtractText([]byte(bad))
		var malErr *MalformedResponseError
		if !errors.As(err, &malErr) {
			t.Fatalf("ExtractText(%s): expected MalformedResponseError, got %v", bad, err)
		}
	}
	if ExtractUsage([]byte(`{"candidates":[]}`)) != nil {
		t.Fatalf("ExtractUsage: expected nil without metadata")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	ds := descriptors(t, `[{"description": 5, "type": "", "duration": "abc", "difficulty": 99, "priority": -3}]`)
	a := NormalizeOne(uuid.New(), ds[0])
	if a.Description != DefaultDescription {
		t.Fatalf("description: got %q", a.Description)
	}
	if a.ActivityType != DefaultType {
		t.Fatalf("type: got %q", a.ActivityType)
	}
	if a.EstimatedDurationMinutes != 10 {
		t.Fatalf("duration: got %d", a.EstimatedDurationMinutes)
	}
	if a.DifficultyLevel != 5 {
		t.Fatalf("difficulty clamp: got %d", a.DifficultyLevel)
	}
	if a.PriorityLevel != 1 {
		t.Fatalf("priority clamp: got %d", a.PriorityLevel)
	}
	if a.Source != types.ActivitySourceAI || len(a.Payload) == 0 {
		t.Fatalf("source/payload: %q %s", a.Source, a.Payload)
	}

	low := descriptors(t, `[{"difficulty": -3, "priority": 99}]`)
	b := NormalizeOne(uuid.New(), low[0])
	if b.DifficultyLevel != 1 {
		t.Fatalf("difficulty clamp low: got %d", b.DifficultyLevel)
	}
	if b.PriorityLevel != 5 {
		t.Fatalf("priority clamp high: got %d", b.PriorityLevel)
	}

	empty := NormalizeOne(uuid.New(), Descriptor{})
	if empty.DifficultyLevel != 2 || empty.PriorityLevel != 3 || empty.EstimatedDurationMinutes != 10 {
		t.Fatalf("empty descriptor: %+v", empty)
	}
}

func TestNormalize_Quantity(t *testing.T) {
	entryID := uuid.New()

	zero := Normalize(entryID, nil)
	if len(zero) != 3 {
		t.Fatalf("zero: expected 3, got %d", len(zero))
	}
	for i, want := range []string{"breathing", "gratitude", "physical"} {
		if zero[i].ActivityType != want || zero[i].Source != types.ActivitySourceFallback {
			t.Fatalf("zero[%d]: got %s/%s", i, zero[i].ActivityType, zero[i].Source)
		}
	}

	one := Normalize(entryID, descriptors(t, `[{"description":"Paint","type":"creative"}]`))
	if len(one) != 3 || one[0].Description != "Paint" || one[1].ActivityType != "breathing" || one[2].ActivityType != "gratitude" {
		t.Fatalf("one: unexpected %+v %+v %+v", one[0], one[1], one[2])
	}

	five := Normalize(entryID, descriptors(t, `[{"description":"1"},{"description":"2"},{"description":"3"},{"description":"4"},{"description":"5"}]`))
	if len(five) != 3 {
		t.Fatalf("five: expected 3, got %d", len(five))
	}
	for i, a := range five {
		if a.Description != string(rune('1'+i)) || a.MoodEntryID != entryID {
			t.Fatalf("five[%d]: got %q", i, a.Description)
		}
	}
}

func TestFallback(t *testing.T) {
	entryID := uuid.New()
	all := Fallback(entryID, 10)
	if len(all) != MaxFallbacks || MaxFallbacks != 4 {
		t.Fatalf("Fallback: expected 4, got %d", len(all))
	}
	want := []struct {
		kind                string
		dur, diff, priority int
	}{
		{"breathing", 5, 1, 1},
		{"gratitude", 10, 2, 2},
		{"physical", 10, 2, 3},
		{"self_care", 15, 1, 4},
	}
	for i, w := range want {
		a := all[i]
		if a.ActivityType != w.kind || a.EstimatedDurationMinutes != w.dur || a.DifficultyLevel != w.diff || a.PriorityLevel != w.priority {
			t.Fatalf("Fallback[%d]: %+v", i, a)
		}
		if a.IsCompleted || a.MoodEntryID != entryID {
			t.Fatalf("Fallback[%d]: bad state %+v", i, a)
		}
	}
	if len(Fallback(entryID, 0)) != 0 || len(Fallback(entryID, -1)) != 0 {
		t.Fatalf("Fallback: non-positive n must return none")
	}
}

func TestBuildPrompt(t *testing.T) {
	energy := 2
	loc := "home"
	p := BuildPrompt(&types.MoodEntry{
		Location:    &loc,
		EnergyLevel: &energy,
		Emotions:    []*types.Emotion{{Label: "Anxious"}, {Label: "Tired"}},
	})
	for _, want := range []string{
		"- Location: home\n",
		"- Comfort Environment: Not specified\n",
		"- Description: Not provided\n",
		"- Energy Level (1-5): 2\n",
		"- Current Emotions: Anxious, Tired\n",
		"exactly 3 activity objects",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("BuildPrompt: missing %q in:\n%s", want, p)
		}
	}

	bare := BuildPrompt(&types.MoodEntry{})
	if !strings.Contains(bare, "- Current Emotions: None recorded\n") || !strings.Contains(bare, "- Energy Level (1-5): Not specified\n") {
		t.Fatalf("BuildPrompt (bare): placeholders missing:\n%s", bare)
	}
}

type fakeClient struct {
	body  string
	err   error
	panic bool
	calls int
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.panic {
		panic("boom")
	}
	return f.body, f.err
}

func (f *fakeClient) Ping(ctx context.Context) (bool, error) { return f.err == nil, f.err }
func (f *fakeClient) Model() string                          { return "fake" }

func envelopeFor(t *testing.T, text string) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}}},
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return string(b)
}

func TestGenerator(t *testing.T) {
	entry := &types.MoodEntry{ID: uuid.New()}

	cases := []struct {
		name        string
		client      *fakeClient
		wantOutcome string
		wantKind    string
		wantParsed  int
	}{
		{
			name:        "ai",
			client:      &fakeClient{body: envelopeFor(t, `[{"description":"a"},{"description":"b"},{"description":"c"}]`)},
			wantOutcome: types.SuggestionOutcomeAI,
			wantParsed:  3,
		},
		{
			name:        "mixed",
			client:      &fakeClient{body: envelopeFor(t, "```json\n[{\"description\":\"a\"}]\n```")},
			wantOutcome: types.SuggestionOutcomeMixed,
			wantParsed:  1,
		},
		{
			name:        "upstream",
			client:      &fakeClient{err: &gemini.UpstreamError{StatusCode: 503}},
			wantOutcome: types.SuggestionOutcomeFallback,
			wantKind:    ErrorKindUpstream,
		},
		{
			name:        "configuration",
			client:      &fakeClient{err: &gemini.ConfigurationError{Reason: "no key"}},
			wantOutcome: types.SuggestionOutcomeFallback,
			wantKind:    ErrorKindConfiguration,
		},
		{
			name:        "malformed",
			client:      &fakeClient{body: envelopeFor(t, "sorry, no activities today")},
			wantOutcome: types.SuggestionOutcomeFallback,
			wantKind:    ErrorKindMalformed,
		},
		{
			name:        "unexpected",
			client:      &fakeClient{err: errors.New("weird")},
			wantOutcome: types.SuggestionOutcomeFallback,
			wantKind:    ErrorKindUnexpected,
		},
		{
			name:        "panic",
			client:      &fakeClient{panic: true},
			wantOutcome: types.SuggestionOutcomeFallback,
			wantKind:    ErrorKindUnexpected,
		},
	}
	for _, tc := range cases {
		g := NewGenerator(logger.Nop(), tc.client)
		res := g.Generate(context.Background(), entry)
		if len(res.Activities) != TargetCount {
			t.Fatalf("Generate(%s): expected %d activities, got %d", tc.name, TargetCount, len(res.Activities))
		}
		if res.Outcome != tc.wantOutcome || res.ErrorKind != tc.wantKind || res.ParsedCount != tc.wantParsed {
			t.Fatalf("Generate(%s): outcome=%q kind=%q parsed=%d", tc.name, res.Outcome, res.ErrorKind, res.ParsedCount)
		}
		if res.Prompt == "" {
			t.Fatalf("Generate(%s): prompt not recorded", tc.name)
		}
		if tc.wantOutcome == types.SuggestionOutcomeFallback && res.Activities[0].ActivityType != "breathing" {
			t.Fatalf("Generate(%s): fallback order broken", tc.name)
		}
		if tc.client.calls != 1 {
			t.Fatalf("Generate(%s): expected exactly one upstream call, got %d", tc.name, tc.client.calls)
		}
	}
}

func TestGenerator_NilClient(t *testing.T) {
	res := NewGenerator(logger.Nop(), nil).Generate(context.Background(), &types.MoodEntry{ID: uuid.New()})
	if res.ErrorKind != ErrorKindConfiguration || len(res.Activities) != 3 {
		t.Fatalf("nil client: kind=%q n=%d", res.ErrorKind, len(res.Activities))
	}
}
