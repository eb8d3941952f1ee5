// Package pager posts build previews and flips their pages on reactions.
//
// The pager keeps no session state. Everything it needs to render the next
// page is recovered from the text of the message it posted earlier.
package pager

import (
	"bytes"
	"context"
	"fmt"
	"log"

	apperrors "github.com/louisbranch/skillbar/internal/platform/errors"
	errori18n "github.com/louisbranch/skillbar/internal/platform/errors/i18n"
	platformotel "github.com/louisbranch/skillbar/internal/platform/otel"
	"github.com/louisbranch/skillbar/internal/services/skillbar/compositor"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/build"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/template"
	"github.com/louisbranch/skillbar/internal/services/skillbar/presenter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTileSize is the icon edge length in the posted strip.
const DefaultTileSize = 64

const tracerName = "github.com/louisbranch/skillbar/internal/services/skillbar/pager"

// Span outcome values recorded under the skillbar.outcome attribute.
const (
	OutcomePosted          = "posted"
	OutcomeSeedPartial     = "seed_partial"
	OutcomeRejected        = "rejected"
	OutcomeRenderFailed    = "render_failed"
	OutcomeHostFailed      = "host_failed"
	OutcomeEdited          = "edited"
	OutcomeIgnoredSelf     = "ignored_self"
	OutcomeIgnoredForeign  = "ignored_foreign"
	OutcomeIgnoredTemplate = "ignored_template"
	OutcomeIgnoredEmoji    = "ignored_emoji"
	OutcomeIgnoredPage     = "ignored_page"
)

// Presenter renders a page of a build.
type Presenter interface {
	Present(b build.Build, page int) ([]string, bool)
}

// Config wires a Pager.
type Config struct {
	Presenter Presenter
	Icons     compositor.IconLoader
	TileSize  int
	// Locale selects the language of rejection replies.
	Locale string
	Tracer trace.Tracer
	Logf   func(string, ...any)
}

// Pager handles the skillbar command and navigation reactions.
type Pager struct {
	presenter Presenter
	icons     compositor.IconLoader
	tileSize  int
	messages  *errori18n.Catalog
	tracer    trace.Tracer
	logf      func(string, ...any)
}

// New validates cfg and returns a Pager.
func New(cfg Config) (*Pager, error) {
	if cfg.Presenter == nil {
		return nil, fmt.Errorf("presenter is required")
	}
	if cfg.Icons == nil {
		return nil, fmt.Errorf("icon loader is required")
	}
	if cfg.TileSize == 0 {
		cfg.TileSize = DefaultTileSize
	}
	if cfg.TileSize < 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", cfg.TileSize)
	}
	if cfg.Tracer == nil {
		cfg.Tracer = platformotel.Tracer(tracerName)
	}
	if cfg.Logf == nil {
		cfg.Logf = log.Printf
	}
	return &Pager{
		presenter: cfg.Presenter,
		icons:     cfg.Icons,
		tileSize:  cfg.TileSize,
		messages:  errori18n.GetCatalog(cfg.Locale),
		tracer:    cfg.Tracer,
		logf:      cfg.Logf,
	}, nil
}

// HandleCommand previews code in channelID. An invalid template gets a single
// rejection reply. A render failure gets a failure reply and is returned. On
// success the overview is posted with the icon strip and the slot markers are
// seeded in order; a rejected marker stops seeding without failing.
func (p *Pager) HandleCommand(ctx context.Context, host Host, channelID, code string) error {
	ctx, span := p.tracer.Start(ctx, "skillbar.command", trace.WithAttributes(
		attribute.String("skillbar.channel_id", channelID),
	))
	defer span.End()

	b, err := template.Decode(code)
	if err != nil {
		setOutcome(span, OutcomeRejected)
		if _, sendErr := host.Send(ctx, channelID, Outgoing{Content: p.reply(err, code)}); sendErr != nil {
			return p.hostFailed(span, fmt.Errorf("send rejection: %w", sendErr))
		}
		return nil
	}
	span.SetAttributes(attribute.String("skillbar.template", b.Template))

	img, err := compositor.Compose(ctx, b.Skills[:], p.tileSize, p.icons)
	if err != nil {
		return p.renderFailed(ctx, span, host, channelID, b.Template, err)
	}
	var png bytes.Buffer
	if err := compositor.EncodePNG(&png, img); err != nil {
		return p.renderFailed(ctx, span, host, channelID, b.Template, err)
	}

	lines, _ := p.presenter.Present(b, 0)
	posted, err := host.Send(ctx, channelID, Outgoing{
		Content:    presenter.Render(lines),
		Attachment: &Attachment{Name: b.Template + ".png", Data: png.Bytes()},
	})
	if err != nil {
		return p.hostFailed(span, fmt.Errorf("send preview: %w", err))
	}

	for slot := 1; slot <= build.SkillSlots; slot++ {
		if err := host.React(ctx, channelID, posted.ID, Digits[slot]); err != nil {
			p.logf("seed marker %d on message %s: %v", slot, posted.ID, err)
			span.SetAttributes(attribute.Int("skillbar.seeded", slot-1))
			setOutcome(span, OutcomeSeedPartial)
			return nil
		}
	}
	span.SetAttributes(attribute.Int("skillbar.seeded", build.SkillSlots))
	setOutcome(span, OutcomePosted)
	return nil
}

// HandleReaction moves a previously posted preview to the page selected by
// the reaction. Reactions by the bot itself, on messages it did not post, on
// messages without a decodable template, with emoji outside Digits, or for
// unresolvable pages are ignored and return nil without editing.
func (p *Pager) HandleReaction(ctx context.Context, host Host, r Reaction) error {
	ctx, span := p.tracer.Start(ctx, "skillbar.reaction", trace.WithAttributes(
		attribute.String("skillbar.channel_id", r.ChannelID),
		attribute.String("skillbar.message_id", r.MessageID),
	))
	defer span.End()

	self := host.SelfID()
	if r.UserID == self {
		setOutcome(span, OutcomeIgnoredSelf)
		return nil
	}

	msg := r.Message
	if msg == nil {
		fetched, err := host.FetchMessage(ctx, r.ChannelID, r.MessageID)
		if err != nil {
			return p.hostFailed(span, fmt.Errorf("fetch message: %w", err))
		}
		msg = &fetched
	}
	if msg.AuthorID != self {
		setOutcome(span, OutcomeIgnoredForeign)
		return nil
	}

	code, ok := ExtractTemplate(msg.Content)
	if !ok {
		setOutcome(span, OutcomeIgnoredTemplate)
		return nil
	}
	b, err := template.Decode(code)
	if err != nil {
		setOutcome(span, OutcomeIgnoredTemplate)
		return nil
	}

	page, ok := DigitIndex(r.Emoji)
	if !ok {
		setOutcome(span, OutcomeIgnoredEmoji)
		return nil
	}
	span.SetAttributes(attribute.Int("skillbar.page", page))

	lines, ok := p.presenter.Present(b, page)
	if !ok {
		setOutcome(span, OutcomeIgnoredPage)
		return nil
	}

	channelID := msg.ChannelID
	if channelID == "" {
		channelID = r.ChannelID
	}
	messageID := msg.ID
	if messageID == "" {
		messageID = r.MessageID
	}
	if err := host.Edit(ctx, channelID, messageID, presenter.Render(lines)); err != nil {
		return p.hostFailed(span, fmt.Errorf("edit message: %w", err))
	}
	setOutcome(span, OutcomeEdited)
	return nil
}

func (p *Pager) renderFailed(ctx context.Context, span trace.Span, host Host, channelID, tpl string, err error) error {
	setOutcome(span, OutcomeRenderFailed)
	span.RecordError(err)
	span.SetStatus(codes.Error, "render failed")
	if _, sendErr := host.Send(ctx, channelID, Outgoing{Content: p.reply(err, tpl)}); sendErr != nil {
		p.logf("send render failure reply: %v", sendErr)
	}
	return fmt.Errorf("render %s: %w", tpl, err)
}

func (p *Pager) hostFailed(span trace.Span, err error) error {
	setOutcome(span, OutcomeHostFailed)
	span.RecordError(err)
	span.SetStatus(codes.Error, "host call failed")
	return err
}

// reply localizes err for the invoking user. Codes that are not meant for
// users collapse to the generic render failure.
func (p *Pager) reply(err error, tpl string) string {
	metadata := map[string]string{"Template": tpl}
	code := apperrors.CodeOf(err)
	var domainErr *apperrors.Error
	if apperrors.As(err, &domainErr) {
		for k, v := range domainErr.Metadata {
			metadata[k] = v
		}
	}
	if !code.UserFacing() {
		code = apperrors.CodeRenderFailed
	}
	return p.messages.Format(string(code), metadata)
}

func setOutcome(span trace.Span, outcome string) {
	span.SetAttributes(attribute.String("skillbar.outcome", outcome))
}
