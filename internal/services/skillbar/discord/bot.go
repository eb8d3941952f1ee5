// Package discord binds the pager to a Discord bot account.
package discord

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/skillbar/internal/platform/timeouts"
	"github.com/louisbranch/skillbar/internal/services/skillbar/pager"
)

// Intents are the gateway events a preview bot needs.
const Intents = discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsDirectMessageReactions |
	discordgo.IntentMessageContent

// Handler receives parsed commands and reactions.
type Handler interface {
	HandleCommand(ctx context.Context, host pager.Host, channelID, code string) error
	HandleReaction(ctx context.Context, host pager.Host, r pager.Reaction) error
}

// session is the subset of *discordgo.Session the bot calls.
type session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	UpdateListeningStatus(name string) error
}

// Config configures one bot account.
type Config struct {
	Token   string
	Prefix  string
	Locale  string
	Handler Handler
	Logf    func(string, ...any)
}

// Bot is one logged-in bot account. It implements pager.Host.
type Bot struct {
	session session
	prefix  string
	locale  string
	handler Handler
	logf    func(string, ...any)

	mu      sync.RWMutex
	selfID  string
	baseCtx context.Context
	cancel  context.CancelFunc
	removes []func()
}

// New creates a bot for cfg.Token. The gateway connection is opened by Open.
func New(cfg Config) (*Bot, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, fmt.Errorf("discord token is required")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = Intents
	return newBot(s, cfg)
}

func newBot(s session, cfg Config) (*Bot, error) {
	if cfg.Handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	if strings.TrimSpace(cfg.Prefix) == "" {
		return nil, fmt.Errorf("command prefix is required")
	}
	if cfg.Logf == nil {
		cfg.Logf = log.Printf
	}
	return &Bot{
		session: s,
		prefix:  cfg.Prefix,
		locale:  cfg.Locale,
		handler: cfg.Handler,
		logf:    cfg.Logf,
		baseCtx: context.Background(),
	}, nil
}

// Open registers event handlers and connects to the gateway. Events are
// handled with contexts derived from ctx until Close.
func (b *Bot) Open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	b.mu.Lock()
	b.baseCtx, b.cancel = context.WithCancel(ctx)
	b.removes = append(b.removes,
		b.session.AddHandler(b.onReady),
		b.session.AddHandler(b.onMessageCreate),
		b.session.AddHandler(b.onReactionAdd),
	)
	b.mu.Unlock()

	if err := b.session.Open(); err != nil {
		b.Close()
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

// Close disconnects the bot and cancels in-flight event contexts.
func (b *Bot) Close() error {
	b.mu.Lock()
	removes := b.removes
	b.removes = nil
	cancel := b.cancel
	b.mu.Unlock()

	for _, remove := range removes {
		remove()
	}
	if cancel != nil {
		cancel()
	}
	return b.session.Close()
}

// SelfID returns the bot user id learned from the ready event.
func (b *Bot) SelfID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selfID
}

// FetchMessage loads a full message.
func (b *Bot) FetchMessage(ctx context.Context, channelID, messageID string) (pager.Message, error) {
	m, err := b.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return pager.Message{}, err
	}
	return toMessage(m), nil
}

// Send posts out to channelID.
func (b *Bot) Send(ctx context.Context, channelID string, out pager.Outgoing) (pager.Message, error) {
	data := &discordgo.MessageSend{Content: out.Content}
	if out.Attachment != nil {
		data.Files = []*discordgo.File{{
			Name:        out.Attachment.Name,
			ContentType: "image/png",
			Reader:      bytes.NewReader(out.Attachment.Data),
		}}
	}
	m, err := b.session.ChannelMessageSendComplex(channelID, data, discordgo.WithContext(ctx))
	if err != nil {
		return pager.Message{}, err
	}
	return toMessage(m), nil
}

// Edit replaces a message's text. Attachments are left as posted.
func (b *Bot) Edit(ctx context.Context, channelID, messageID, content string) error {
	_, err := b.session.ChannelMessageEdit(channelID, messageID, content, discordgo.WithContext(ctx))
	return err
}

// React adds emoji to a message as the bot.
func (b *Bot) React(ctx context.Context, channelID, messageID, emoji string) error {
	return b.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx))
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		b.mu.Lock()
		b.selfID = r.User.ID
		b.mu.Unlock()
		b.logf("logged in as %s", r.User.Username)
	}
	if err := b.session.UpdateListeningStatus(b.prefix + helpCommand); err != nil {
		b.logf("update presence: %v", err)
	}
}

func (b *Bot) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil || m.Author.Bot {
		return
	}
	ctx, cancel := b.eventContext()
	defer cancel()

	if isHelp(b.prefix, m.Content) {
		if _, err := b.session.ChannelMessageSend(m.ChannelID, usage(b.locale, b.prefix), discordgo.WithContext(ctx)); err != nil {
			b.logf("send help to %s: %v", m.ChannelID, err)
		}
		return
	}
	code, ok := ParseCommand(b.prefix, m.Content)
	if !ok {
		return
	}
	if code == "" {
		if _, err := b.session.ChannelMessageSend(m.ChannelID, usage(b.locale, b.prefix), discordgo.WithContext(ctx)); err != nil {
			b.logf("send usage to %s: %v", m.ChannelID, err)
		}
		return
	}
	if err := b.handler.HandleCommand(ctx, b, m.ChannelID, code); err != nil {
		b.logf("skillbar command in %s: %v", m.ChannelID, err)
	}
}

func (b *Bot) onReactionAdd(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.MessageReaction == nil {
		return
	}
	ctx, cancel := b.eventContext()
	defer cancel()

	// Gateway reaction events never carry the message body.
	err := b.handler.HandleReaction(ctx, b, pager.Reaction{
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Emoji:     r.Emoji.Name,
	})
	if err != nil {
		b.logf("skillbar reaction on %s: %v", r.MessageID, err)
	}
}

func (b *Bot) eventContext() (context.Context, context.CancelFunc) {
	b.mu.RLock()
	base := b.baseCtx
	b.mu.RUnlock()
	return context.WithTimeout(base, timeouts.ChatEvent)
}

func toMessage(m *discordgo.Message) pager.Message {
	if m == nil {
		return pager.Message{}
	}
	msg := pager.Message{ID: m.ID, ChannelID: m.ChannelID, Content: m.Content}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
	}
	return msg
}

var _ pager.Host = (*Bot)(nil)
