// Package commands routes !pub chat commands to their handlers
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// Trigger is the phrase that addresses a message to the publication tracker
const Trigger = "!pub"

// HelpText is returned for bare or malformed invocations
const HelpText = "`!pub <command> <arguments>` is a publication tracking system\n\n" +
	"Commands:\n\n" +
	"* `new`: Someone published an article to be tracked, e.g. `!pub new <@U123> https://example.com/article`\n\n" +
	"* `report`: List of publications by user or time, e.g. `!pub report <@U123>` or `!pub report since yesterday`\n\n" +
	"Dates: `yesterday`, `monday`, `march 1`, `2024-01-15`, `3 days ago`, `last week`, `last month`"

// Response represents the result of executing a command
type Response struct {
	Text   string
	Silent bool // If true, don't play notification sound
}

// Command defines the interface for a !pub subcommand
type Command interface {
	// Name returns the command word (e.g., "new")
	Name() string
	// Execute runs the command against the text following the command word
	Execute(ctx context.Context, chatID int64, body string) (*Response, error)
}

// SchemaEnsurer creates the backing store if it's missing
type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// Invocation is a parsed !pub message
type Invocation struct {
	Command string
	Body    string
	Help    bool // bare trigger or flags: reply with HelpText
}

// Router dispatches commands to their handlers
type Router struct {
	commands map[string]Command
	schema   SchemaEnsurer
	timeout  time.Duration
	logger   *slog.Logger
}

// NewRouter creates a new command router. timeout bounds the work done
// for one message; zero means no limit.
func NewRouter(schema SchemaEnsurer, timeout time.Duration, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		commands: make(map[string]Command),
		schema:   schema,
		timeout:  timeout,
		logger:   logger,
	}
}

// Register adds a command to the router
func (r *Router) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Lookup returns the command for a given name, or nil if not found
func (r *Router) Lookup(name string) Command {
	return r.commands[strings.ToLower(name)]
}

// triggerRegex finds !pub as its own word anywhere in a message
var triggerRegex = regexp.MustCompile(`(?s)(?:^|\s)!pub(?:\s+(.*))?$`)

// ExtractInvocation parses the command word and body out of a message.
// Returns false if the message isn't addressed to !pub.
func ExtractInvocation(text string) (Invocation, bool) {
	m := triggerRegex.FindStringSubmatch(text)
	if m == nil {
		return Invocation{}, false
	}

	rest := strings.TrimSpace(m[1])
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Invocation{Help: true}, true
	}

	for _, f := range fields {
		if isFlag(f) {
			return Invocation{Help: true}, true
		}
	}

	command := fields[0]
	body := strings.TrimSpace(strings.TrimPrefix(rest, command))
	return Invocation{Command: strings.ToLower(command), Body: body}, true
}

// isFlag reports whether a token looks like a command-line option (-h, --version)
func isFlag(token string) bool {
	// "--" ends options, it isn't one
	if len(token) < 2 || token[0] != '-' || token == "--" {
		return false
	}
	c := token[1]
	return c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Dispatch runs the named command. A nil response means nothing should be
// posted: unknown commands are ignored rather than answered.
func (r *Router) Dispatch(ctx context.Context, chatID int64, command, body string) (*Response, error) {
	if command == "" {
		return &Response{Text: HelpText, Silent: true}, nil
	}

	cmd := r.Lookup(command)
	if cmd == nil {
		r.logger.Debug("ignoring unknown command", "chat_id", chatID, "cmd", command)
		return nil, nil
	}

	r.logger.Info("running command", "chat_id", chatID, "cmd", command)
	resp, err := cmd.Execute(ctx, chatID, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", command, err)
	}
	return resp, nil
}

// Handle runs the full pipeline for one chat message
func (r *Router) Handle(ctx context.Context, chatID int64, text string) (*Response, error) {
	inv, ok := ExtractInvocation(text)
	if !ok {
		return nil, nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if r.schema != nil {
		if err := r.schema.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("preparing publication list: %w", err)
		}
	}

	if inv.Help {
		return &Response{Text: HelpText, Silent: true}, nil
	}
	return r.Dispatch(ctx, chatID, inv.Command, inv.Body)
}
