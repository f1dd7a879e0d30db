// Package ai implements standup summary generation on top of the note
// store and the LLM service.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hrygo/standnotes/ai/llm"
	"github.com/hrygo/standnotes/internal/metrics"
	"github.com/hrygo/standnotes/store"
)

// NoNotesMessage is returned as the summary when the queried window
// contains no notes. The LLM is not called in that case.
const NoNotesMessage = "No notes found for the specified date."

const standupSystemPrompt = "You are a helpful assistant that generates concise standup meeting summaries. Format the response in a clear, professional manner."

const standupPromptTemplate = `Based on these notes from %s, generate a standup meeting summary following this format:

What I Did Yesterday:
- Summarize key accomplishments and work completed (if any, otherwise indicate that there is nothing in the notes that suggests that there is work to do)

What I Will Do Today:
- Outline planned tasks and objectives (if any, otherwise indicate that there is nothing in the notes that suggests that there is work to do)

Obstacles/Blockers:
- Identify any challenges or impediments (if any, otherwise indicate that there is nothing in the notes that suggests that there are no obstacles)

Notes used for summary:
%s`

// StandupRange returns the UTC note window queried for a standup summary
// of the given YYYY-MM-DD date. The window is shifted one day forward from
// the literal date and spans two calendar days: [date+1 00:00:00Z,
// date+3 00:00:00Z). This reproduces the query the service has always
// issued; callers depend on the observed behavior, so it is kept as is.
func StandupRange(date string) (start, end time.Time, err error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	start = day.AddDate(0, 0, 1)
	end = start.AddDate(0, 0, 2)
	return start, end, nil
}

// BuildStandupPrompt embeds the literal date and the note contents, joined
// by blank lines in store order, into the standup prompt.
func BuildStandupPrompt(date string, notes []*store.Note) string {
	contents := make([]string, len(notes))
	for i, note := range notes {
		contents[i] = note.Content
	}
	return fmt.Sprintf(standupPromptTemplate, date, strings.Join(contents, "\n\n"))
}

// StandupResult is the outcome of a standup summary generation.
type StandupResult struct {
	// Summary is the generated text, or NoNotesMessage when the window
	// was empty.
	Summary string

	// Generated reports whether the LLM was called. False when the window
	// contained no notes.
	Generated bool

	// Saved is the persisted summary row, nil when persistence failed or
	// was skipped because no notes were found.
	Saved *store.Summary
}

// StandupGenerator fetches notes for a date window, asks the LLM for a
// standup summary and persists the result best-effort.
type StandupGenerator struct {
	store      *store.Store
	llmService llm.Service
	metrics    *metrics.Exporter
	model      string
}

func NewStandupGenerator(store *store.Store, llmService llm.Service, exporter *metrics.Exporter, model string) *StandupGenerator {
	return &StandupGenerator{
		store:      store,
		llmService: llmService,
		metrics:    exporter,
		model:      model,
	}
}

// Generate produces a standup summary for the given date. Errors from the
// note query or the LLM call are returned to the caller; a failure to
// persist the generated summary is logged only and leaves Saved nil.
func (g *StandupGenerator) Generate(ctx context.Context, date string) (*StandupResult, error) {
	start, end, err := StandupRange(date)
	if err != nil {
		return nil, err
	}

	startTs, endTs := start.Unix(), end.Unix()
	slog.Info("fetching notes for standup summary",
		"date", date,
		"range_start", start.Format(time.RFC3339),
		"range_end", end.Format(time.RFC3339),
	)

	notes, err := g.store.ListNotes(ctx, &store.FindNote{
		CreatedTsAfter:  &startTs,
		CreatedTsBefore: &endTs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	if len(notes) == 0 {
		slog.Warn("no notes found for standup summary", "date", date)
		return &StandupResult{Summary: NoNotesMessage}, nil
	}

	messages := []llm.Message{
		llm.SystemPrompt(standupSystemPrompt),
		llm.UserMessage(BuildStandupPrompt(date, notes)),
	}

	callStart := time.Now()
	summary, stats, err := g.llmService.Chat(ctx, messages)
	if err != nil {
		if g.metrics != nil {
			g.metrics.RecordLLMCall(g.model, time.Since(callStart), false)
		}
		return nil, fmt.Errorf("failed to generate standup summary: %w", err)
	}
	if g.metrics != nil {
		g.metrics.RecordLLMCall(g.model, time.Since(callStart), true)
		if stats != nil {
			g.metrics.RecordLLMTokens(g.model, "prompt", stats.PromptTokens)
			g.metrics.RecordLLMTokens(g.model, "completion", stats.CompletionTokens)
		}
	}

	result := &StandupResult{Summary: summary, Generated: true}

	// Persisting the summary is best-effort: the generated text is still
	// returned to the caller when the insert fails.
	saved, err := g.store.CreateSummary(ctx, &store.Summary{
		SummaryDate: date,
		Content:     summary,
	})
	if err != nil {
		slog.Error("failed to save standup summary", "date", date, "error", err)
		return result, nil
	}
	result.Saved = saved

	return result, nil
}
