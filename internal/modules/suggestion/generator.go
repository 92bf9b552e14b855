package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/platform/gemini"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

// Error kinds recorded on the call log.
const (
	ErrorKindConfiguration = "configuration"
	ErrorKindUpstream      = "upstream"
	ErrorKindMalformed     = "malformed"
	ErrorKindUnexpected    = "unexpected"
)

const maxLoggedResponse = 8192

// Result is what one generation attempt produced. Activities always holds
// exactly TargetCount rows; Err is informational and never needs handling.
type Result struct {
	Activities  []*types.SuggestedActivity
	Outcome     string
	Prompt      string
	RawResponse string
	Usage       json.RawMessage
	ParsedCount int
	ErrorKind   string
	Err         error
	Latency     time.Duration
}

type Generator interface {
	Generate(ctx context.Context, entry *types.MoodEntry) Result
	Model() string
}

type generator struct {
	log    *logger.Logger
	client gemini.Client
}

func NewGenerator(log *logger.Logger, client gemini.Client) Generator {
	return &generator{log: log.With("module", "SuggestionGenerator"), client: client}
}

func (g *generator) Model() string {
	if g.client == nil {
		return ""
	}
	return g.client.Model()
}

// Generate runs prompt, upstream call, parse and normalize. Any failure on
// the way, including a panic, yields the fallback set instead.
func (g *generator) Generate(ctx context.Context, entry *types.MoodEntry) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = g.fallback(entry, res, fmt.Errorf("suggestion pipeline panic: %v", r))
		}
		res.Latency = time.Since(start)
	}()

	if entry == nil {
		return g.fallback(entry, res, errors.New("nil mood entry"))
	}
	res.Prompt = BuildPrompt(entry)
	if g.client == nil {
		return g.fallback(entry, res, &gemini.ConfigurationError{Reason: "no suggestion client"})
	}

	raw, err := g.client.GenerateContent(ctx, res.Prompt)
	if err != nil {
		return g.fallback(entry, res, err)
	}
	res.RawResponse = raw
	res.Usage = ExtractUsage([]byte(raw))

	text, err := ExtractText([]byte(raw))
	if err != nil {
		return g.fallback(entry, res, err)
	}
	descriptors, err := ParseDescriptors(text)
	if err != nil {
		return g.fallback(entry, res, err)
	}

	res.ParsedCount = len(descriptors)
	res.Activities = Normalize(entry.ID, descriptors)
	res.Outcome = types.SuggestionOutcomeAI
	if len(descriptors) < TargetCount {
		res.Outcome = types.SuggestionOutcomeMixed
		g.log.Warn("Suggestion response short, topped up with fallbacks", "mood_entry_id", entry.ID, "parsed", len(descriptors))
	}
	return res
}

func (g *generator) fallback(entry *types.MoodEntry, res Result, err error) Result {
	res.Err = err
	res.ErrorKind = ClassifyError(err)
	res.ParsedCount = 0
	res.Outcome = types.SuggestionOutcomeFallback
	entryID := uuid.Nil
	if entry != nil {
		entryID = entry.ID
	}
	res.Activities = Fallback(entryID, TargetCount)
	g.log.Warn("Suggestion generation fell back to static activities",
		"mood_entry_id", entryID,
		"error_kind", res.ErrorKind,
		"error", err,
	)
	return res
}

// ClassifyError names the pipeline failure kind for err.
func ClassifyError(err error) string {
	var cfgErr *gemini.ConfigurationError
	var upErr *gemini.UpstreamError
	var malErr *MalformedResponseError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cfgErr):
		return ErrorKindConfiguration
	case errors.As(err, &upErr):
		return ErrorKindUpstream
	case errors.As(err, &malErr):
		return ErrorKindMalformed
	default:
		return ErrorKindUnexpected
	}
}

// TruncateResponse bounds the raw body kept on the call log.
func TruncateResponse(s string) string {
	if len(s) <= maxLoggedResponse {
		return s
	}
	return s[:maxLoggedResponse]
}
