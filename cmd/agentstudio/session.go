package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/kazz187/agentstudio/internal/preset"
	"github.com/kazz187/agentstudio/internal/prompt"
	"github.com/kazz187/agentstudio/internal/studio"
)

type chatClient interface {
	Chat(ctx context.Context, req *studio.ChatRequest) (string, error)
}

var (
	assistantColor = color.New(color.FgCyan)
	userColor      = color.New(color.FgGreen)
	noticeColor    = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
)

const helpText = `Commands:
  /toggle objective|integration|automation <id>  flip an entry on or off
  /status                                        list entries and whether they are enabled
  /prompt                                        print the compiled system prompt
  /reset                                         restart the conversation
  /quit                                          exit
Anything else is sent to the agent.`

const emptyReplyText = "The agent returned an empty response."

// session is the terminal presentation layer: it owns the snapshot and the
// conversation, sends one request per turn and never leaves a turn without
// an assistant reply.
type session struct {
	client chatClient
	out    io.Writer

	mu       sync.Mutex
	snapshot studio.Snapshot
	intro    []studio.Message
	conv     *studio.Conversation
}

func newSession(client chatClient, p *preset.Preset, out io.Writer) *session {
	intro := make([]studio.Message, len(p.IntroMessages))
	for i, m := range p.IntroMessages {
		intro[i] = studio.NewMessage(m.Role, m.Content)
	}
	return &session{
		client:   client,
		out:      out,
		snapshot: p.Snapshot.Clone(),
		intro:    intro,
		conv:     studio.NewConversation(intro...),
	}
}

func (s *session) printIntro() {
	for _, m := range s.Messages() {
		s.printMessage(m)
	}
}

func (s *session) Messages() []studio.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Messages()
}

func (s *session) Snapshot() studio.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// SetSnapshot replaces the configuration but keeps the conversation.
func (s *session) SetSnapshot(snap studio.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap.Clone()
}

// Handle processes one input line. It reports false once the user asked
// to quit.
func (s *session) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if !strings.HasPrefix(line, "/") {
		s.send(ctx, line)
		return true
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return false
	case "/help":
		fmt.Fprintln(s.out, helpText)
	case "/prompt":
		fmt.Fprintln(s.out, prompt.Compile(s.Snapshot()))
	case "/status":
		s.printStatus()
	case "/reset":
		s.mu.Lock()
		s.conv = studio.NewConversation(s.intro...)
		s.mu.Unlock()
		noticeColor.Fprintln(s.out, "Conversation reset.")
		s.printIntro()
	case "/toggle":
		if len(fields) != 3 {
			errorColor.Fprintln(s.out, "usage: /toggle objective|integration|automation <id>")
			return true
		}
		if err := s.toggle(fields[1], fields[2]); err != nil {
			errorColor.Fprintln(s.out, err)
		}
	default:
		errorColor.Fprintf(s.out, "unknown command %s, try /help\n", fields[0])
	}
	return true
}

func (s *session) toggle(kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		found   bool
		enabled bool
	)
	switch kind {
	case "objective":
		s.snapshot.Objectives = studio.ToggleObjective(s.snapshot.Objectives, id)
		for _, o := range s.snapshot.Objectives {
			if o.ID == id {
				found, enabled = true, o.Enabled
			}
		}
	case "integration":
		s.snapshot.Integrations = studio.ToggleIntegration(s.snapshot.Integrations, id)
		for _, in := range s.snapshot.Integrations {
			if in.ID == id {
				found, enabled = true, in.Enabled
			}
		}
	case "automation":
		s.snapshot.Automations = studio.ToggleAutomation(s.snapshot.Automations, id)
		for _, a := range s.snapshot.Automations {
			if a.ID == id {
				found, enabled = true, a.Enabled
			}
		}
	default:
		return fmt.Errorf("unknown entry kind %q", kind)
	}
	if !found {
		return fmt.Errorf("no %s with id %q", kind, id)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	noticeColor.Fprintf(s.out, "%s %s %s\n", kind, id, state)
	return nil
}

func (s *session) printStatus() {
	snap := s.Snapshot()
	mark := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	fmt.Fprintf(s.out, "%s (%s, %s / %s)\n", snap.Persona.Codename, snap.Persona.Industry, snap.Persona.Tone, snap.Persona.Voice)
	fmt.Fprintln(s.out, "objectives:")
	for _, o := range snap.Objectives {
		fmt.Fprintf(s.out, "  %s %s  %s\n", mark(o.Enabled), o.ID, o.Title)
	}
	fmt.Fprintln(s.out, "integrations:")
	for _, in := range snap.Integrations {
		fmt.Fprintf(s.out, "  %s %s  %s\n", mark(in.Enabled), in.ID, in.Name)
	}
	fmt.Fprintln(s.out, "automations:")
	for _, a := range snap.Automations {
		fmt.Fprintf(s.out, "  %s %s  %s\n", mark(a.Enabled), a.ID, a.Title)
	}
}

// send appends the user message, submits the turn and appends either the
// reply or an error-flagged assistant message. An empty reply is flagged
// too.
func (s *session) send(ctx context.Context, input string) {
	s.mu.Lock()
	s.conv.Append(studio.NewMessage(studio.RoleUser, input))
	req := &studio.ChatRequest{
		Snapshot:   s.snapshot.Clone(),
		Messages:   s.conv.Messages(),
		UserPrompt: input,
	}
	s.mu.Unlock()

	reply, err := s.client.Chat(ctx, req)
	var m studio.Message
	switch {
	case err != nil:
		m = studio.NewErrorMessage(err.Error())
	case reply == "":
		// History entries must carry content or the next turn is rejected.
		m = studio.NewErrorMessage(emptyReplyText)
	default:
		m = studio.NewMessage(studio.RoleAssistant, reply)
	}

	s.mu.Lock()
	s.conv.Append(m)
	s.mu.Unlock()
	s.printMessage(m)
}

func (s *session) printMessage(m studio.Message) {
	switch {
	case m.Role == studio.RoleUser:
		userColor.Fprintf(s.out, "you> %s\n", m.Content)
	case strings.HasPrefix(m.Content, studio.ErrorPrefix):
		errorColor.Fprintf(s.out, "%s\n", m.Content)
	default:
		assistantColor.Fprintf(s.out, "%s> %s\n", s.Snapshot().Persona.Codename, m.Content)
	}
}
