package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codegangsta/publist/internal/extract"
)

// PublicationWriter stores new publications
type PublicationWriter interface {
	Insert(ctx context.Context, author, url string, publishedAt time.Time) (int64, error)
}

// Replies for a new command that is missing required parts
const (
	NoAuthorText = "Who wrote it? Mention the author like <@U123>."
	NoLinkText   = "No article link found. Try: !pub new <@U123> https://example.com/article"
)

// NewCommand handles !pub new - starts tracking an article
type NewCommand struct {
	store  PublicationWriter
	now    func() time.Time
	logger *slog.Logger
}

// NewNewCommand creates a new "new" command
func NewNewCommand(store PublicationWriter, now func() time.Time, logger *slog.Logger) *NewCommand {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NewCommand{store: store, now: now, logger: logger}
}

func (c *NewCommand) Name() string {
	return "new"
}

func (c *NewCommand) Execute(ctx context.Context, chatID int64, body string) (*Response, error) {
	author, rest, ok := extract.ParseMention(body)
	if !ok || author == "" {
		return &Response{Text: NoAuthorText}, nil
	}

	url, ok := extract.FirstURL(rest)
	if !ok {
		return &Response{Text: NoLinkText}, nil
	}

	id, err := c.store.Insert(ctx, author, url, c.now())
	if err != nil {
		return nil, fmt.Errorf("tracking article: %w", err)
	}

	c.logger.Info("tracking publication", "chat_id", chatID, "id", id, "author", author, "url", url)
	return &Response{
		Text: fmt.Sprintf("Okay, tracking item %d, article by %s :tada:", id, extract.FormatMention(author)),
	}, nil
}
