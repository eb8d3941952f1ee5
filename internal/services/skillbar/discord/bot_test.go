package discord

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/skillbar/internal/services/skillbar/pager"
)

type fakeSession struct {
	mu        sync.Mutex
	handlers  int
	opened    bool
	closed    bool
	openErr   error
	plain     []string
	complex   []*discordgo.MessageSend
	fileBody  []byte
	edits     []string
	reactions []string
	presence  string
}

func (s *fakeSession) AddHandler(interface{}) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers++
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.handlers--
	}
}

func (s *fakeSession) Open() error {
	s.opened = true
	return s.openErr
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSession) ChannelMessage(channelID, messageID string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{
		ID:        messageID,
		ChannelID: channelID,
		Content:   "-- `OQAAAAAAAAAAAAAA` --",
		Author:    &discordgo.User{ID: "bot"},
	}, nil
}

func (s *fakeSession) ChannelMessageSend(_ string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.plain = append(s.plain, content)
	return &discordgo.Message{ID: "plain"}, nil
}

func (s *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.complex = append(s.complex, data)
	if len(data.Files) > 0 {
		body, err := io.ReadAll(data.Files[0].Reader)
		if err != nil {
			return nil, err
		}
		s.fileBody = body
	}
	return &discordgo.Message{ID: "m1", ChannelID: channelID, Content: data.Content, Author: &discordgo.User{ID: "bot"}}, nil
}

func (s *fakeSession) ChannelMessageEdit(_, messageID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.edits = append(s.edits, messageID+":"+content)
	return &discordgo.Message{ID: messageID, Content: content}, nil
}

func (s *fakeSession) MessageReactionAdd(_, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	s.reactions = append(s.reactions, messageID+":"+emojiID)
	return nil
}

func (s *fakeSession) UpdateListeningStatus(name string) error {
	s.presence = name
	return nil
}

type recordingHandler struct {
	commands  []string
	reactions []pager.Reaction
	err       error
}

func (h *recordingHandler) HandleCommand(_ context.Context, _ pager.Host, channelID, code string) error {
	h.commands = append(h.commands, channelID+":"+code)
	return h.err
}

func (h *recordingHandler) HandleReaction(_ context.Context, _ pager.Host, r pager.Reaction) error {
	h.reactions = append(h.reactions, r)
	return h.err
}

func newTestBot(t *testing.T) (*Bot, *fakeSession, *recordingHandler) {
	t.Helper()
	s := &fakeSession{}
	h := &recordingHandler{}
	b, err := newBot(s, Config{Prefix: "-", Handler: h, Logf: func(string, ...any) {}})
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	return b, s, h
}

func userMessage(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "u1",
		ChannelID: "chan",
		Content:   content,
		Author:    &discordgo.User{ID: "user"},
	}}
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    string
		ok      bool
	}{
		{content: "-skillbar OQZDI8oACZoxGc0hHfAC", want: "OQZDI8oACZoxGc0hHfAC", ok: true},
		{content: "-s OQAAAAAAAAAAAAAA", want: "OQAAAAAAAAAAAAAA", ok: true},
		{content: "  -BUILD   abc  extra", want: "abc", ok: true},
		{content: "-skillbar", want: "", ok: true},
		{content: "-skills abc", ok: false},
		{content: "skillbar abc", ok: false},
		{content: "-", ok: false},
		{content: "", ok: false},
	}
	for _, tc := range tests {
		got, ok := ParseCommand("-", tc.content)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseCommand(%q) = %q, %v; want %q, %v", tc.content, got, ok, tc.want, tc.ok)
		}
	}
	if _, ok := ParseCommand("", "-s abc"); ok {
		t.Fatal("expected empty prefix to match nothing")
	}
}

func TestNewBotValidatesConfig(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Prefix: "-", Handler: &recordingHandler{}}); err == nil {
		t.Fatal("expected error for missing token")
	}
	if _, err := newBot(&fakeSession{}, Config{Prefix: "-"}); err == nil {
		t.Fatal("expected error for missing handler")
	}
	if _, err := newBot(&fakeSession{}, Config{Handler: &recordingHandler{}}); err == nil {
		t.Fatal("expected error for missing prefix")
	}
}

func TestOnMessageCreateRoutesCommands(t *testing.T) {
	t.Parallel()

	b, s, h := newTestBot(t)
	b.onMessageCreate(nil, userMessage("-s OQAAAAAAAAAAAAAA"))
	b.onMessageCreate(nil, userMessage("hello there"))
	bot := userMessage("-s OQAAAAAAAAAAAAAA")
	bot.Author.Bot = true
	b.onMessageCreate(nil, bot)

	if diff := cmp.Diff([]string{"chan:OQAAAAAAAAAAAAAA"}, h.commands); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
	if len(s.plain) != 0 {
		t.Fatalf("plain sends = %v, want none", s.plain)
	}
}

func TestOnMessageCreateAnswersHelpAndUsage(t *testing.T) {
	t.Parallel()

	b, s, h := newTestBot(t)
	b.onMessageCreate(nil, userMessage("-help"))
	b.onMessageCreate(nil, userMessage("-skillbar"))

	if len(h.commands) != 0 {
		t.Fatalf("commands = %v, want none", h.commands)
	}
	want := "Previews a skill template. Usage: `-skillbar <template>` (aliases: `-s`, `-build`)."
	if diff := cmp.Diff([]string{want, want}, s.plain); diff != "" {
		t.Fatalf("plain sends mismatch (-want +got):\n%s", diff)
	}
}

func TestOnMessageCreateLocalizesUsage(t *testing.T) {
	t.Parallel()

	s := &fakeSession{}
	b, err := newBot(s, Config{Prefix: "!", Locale: "pt-BR", Handler: &recordingHandler{}, Logf: func(string, ...any) {}})
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	b.onMessageCreate(nil, userMessage("!help"))

	want := "Mostra um modelo de habilidades. Uso: `!skillbar <modelo>` (atalhos: `!s`, `!build`)."
	if diff := cmp.Diff([]string{want}, s.plain); diff != "" {
		t.Fatalf("plain sends mismatch (-want +got):\n%s", diff)
	}
}

func TestUsageFallsBackToBaseLocale(t *testing.T) {
	t.Parallel()

	want := "Previews a skill template. Usage: `-skillbar <template>` (aliases: `-s`, `-build`)."
	for _, locale := range []string{"", "en-US", "xx-invalid-"} {
		if got := usage(locale, "-"); got != want {
			t.Fatalf("usage(%q) = %q, want %q", locale, got, want)
		}
	}
}

func TestOnReactionAddForwardsPartialReaction(t *testing.T) {
	t.Parallel()

	b, _, h := newTestBot(t)
	b.onReactionAdd(nil, &discordgo.MessageReactionAdd{MessageReaction: &discordgo.MessageReaction{
		UserID:    "user",
		MessageID: "m1",
		ChannelID: "chan",
		Emoji:     discordgo.Emoji{Name: pager.Digits[4]},
	}})

	want := []pager.Reaction{{ChannelID: "chan", MessageID: "m1", UserID: "user", Emoji: pager.Digits[4]}}
	if diff := cmp.Diff(want, h.reactions); diff != "" {
		t.Fatalf("reactions mismatch (-want +got):\n%s", diff)
	}
}

func TestOnReadySetsIdentityAndPresence(t *testing.T) {
	t.Parallel()

	b, s, _ := newTestBot(t)
	b.onReady(nil, &discordgo.Ready{User: &discordgo.User{ID: "bot", Username: "skillbar"}})
	if b.SelfID() != "bot" {
		t.Fatalf("self id = %q, want bot", b.SelfID())
	}
	if s.presence != "-help" {
		t.Fatalf("presence = %q, want -help", s.presence)
	}
}

func TestHostCallsMapToSession(t *testing.T) {
	t.Parallel()

	b, s, _ := newTestBot(t)
	ctx := context.Background()

	posted, err := b.Send(ctx, "chan", pager.Outgoing{
		Content:    "preview",
		Attachment: &pager.Attachment{Name: "OQAAAAAAAAAAAAAA.png", Data: []byte("png")},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if posted != (pager.Message{ID: "m1", ChannelID: "chan", AuthorID: "bot", Content: "preview"}) {
		t.Fatalf("posted = %+v", posted)
	}
	file := s.complex[0].Files[0]
	if file.Name != "OQAAAAAAAAAAAAAA.png" || file.ContentType != "image/png" || string(s.fileBody) != "png" {
		t.Fatalf("file = %+v body %q", file, s.fileBody)
	}

	if err := b.React(ctx, "chan", "m1", pager.Digits[1]); err != nil {
		t.Fatalf("react: %v", err)
	}
	if err := b.Edit(ctx, "chan", "m1", "page 1"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	fetched, err := b.FetchMessage(ctx, "chan", "m1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if fetched.AuthorID != "bot" || fetched.ID != "m1" {
		t.Fatalf("fetched = %+v", fetched)
	}
	if diff := cmp.Diff([]string{"m1:" + pager.Digits[1]}, s.reactions); diff != "" {
		t.Fatalf("reactions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"m1:page 1"}, s.edits); diff != "" {
		t.Fatalf("edits mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAndClose(t *testing.T) {
	t.Parallel()

	b, s, _ := newTestBot(t)
	if err := b.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	if !s.opened || s.handlers != 3 {
		t.Fatalf("opened = %v handlers = %d", s.opened, s.handlers)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !s.closed || s.handlers != 0 {
		t.Fatalf("closed = %v handlers = %d", s.closed, s.handlers)
	}
}

func TestOpenFailureClosesSession(t *testing.T) {
	t.Parallel()

	b, s, _ := newTestBot(t)
	s.openErr = errors.New("bad token")
	if err := b.Open(context.Background()); !errors.Is(err, s.openErr) {
		t.Fatalf("error = %v, want bad token", err)
	}
	if !s.closed || s.handlers != 0 {
		t.Fatalf("closed = %v handlers = %d", s.closed, s.handlers)
	}
}
