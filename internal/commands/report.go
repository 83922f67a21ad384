package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codegangsta/publist/internal/extract"
	"github.com/codegangsta/publist/internal/storage"
)

// PublicationReader looks up tracked publications
type PublicationReader interface {
	IDsByAuthor(ctx context.Context, author string) ([]int64, error)
	IDsSince(ctx context.Context, t time.Time) ([]int64, error)
	Get(ctx context.Context, id int64) (*storage.Publication, error)
}

// Report replies
const (
	ReportHeader = "Okay, I know about these:"
	NotFoundText = "Sorry, I couldn't find anything. Try rephrasing?"
)

// ReportCommand handles !pub report - lists publications by author or time
type ReportCommand struct {
	store  PublicationReader
	now    func() time.Time
	logger *slog.Logger
}

// NewReportCommand creates a new report command
func NewReportCommand(store PublicationReader, now func() time.Time, logger *slog.Logger) *ReportCommand {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportCommand{store: store, now: now, logger: logger}
}

func (c *ReportCommand) Name() string {
	return "report"
}

func (c *ReportCommand) Execute(ctx context.Context, chatID int64, body string) (*Response, error) {
	ids, err := c.lookup(ctx, chatID, body)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return &Response{Text: NotFoundText}, nil
	}

	lines := make([]string, 0, len(ids)+1)
	lines = append(lines, ReportHeader)
	for _, id := range ids {
		pub, err := c.store.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading item %d: %w", id, err)
		}
		if pub == nil {
			continue
		}
		lines = append(lines, FormatPublication(pub))
	}

	// Every id vanished between lookup and fetch
	if len(lines) == 1 {
		return &Response{Text: NotFoundText}, nil
	}

	return &Response{Text: strings.Join(lines, "\n")}, nil
}

// lookup picks the author query when body mentions someone, otherwise
// reads body as a date expression
func (c *ReportCommand) lookup(ctx context.Context, chatID int64, body string) ([]int64, error) {
	if author, _, ok := extract.ParseMention(body); ok {
		ids, err := c.store.IDsByAuthor(ctx, author)
		if err != nil {
			return nil, fmt.Errorf("looking up articles by %s: %w", extract.FormatMention(author), err)
		}
		return ids, nil
	}

	since, ok := extract.ParseSince(body, c.now())
	if !ok {
		c.logger.Debug("report date not understood", "chat_id", chatID, "body", body)
		return nil, nil
	}

	ids, err := c.store.IDsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("looking up articles since %s: %w", since.Format(time.DateOnly), err)
	}
	return ids, nil
}

// FormatPublication renders one report line: "<id> - <@author>: <url>"
func FormatPublication(pub *storage.Publication) string {
	return fmt.Sprintf("%d - %s: %s", pub.ID, extract.FormatMention(pub.Author), pub.URL)
}
