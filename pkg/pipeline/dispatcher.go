package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mtkit/mtcode/pkg/bus"
	"github.com/mtkit/mtcode/pkg/message"
)

// Config holds the configuration for a Dispatcher.
type Config struct {
	// Registry supplies the preprocessors to run. Optional.
	Registry *Registry

	// Nicknames the bot answers to. A leading nickname in the text marks
	// the message as addressed to the bot and is stripped together with
	// any separators that follow it.
	Nicknames []string

	// Bus, if non-nil, receives each processed event under
	// "message.<detail_type>", extended with ".<sub_type>" when the event
	// carries a subtype.
	Bus *bus.EventBus

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics defaults to unregistered counters.
	Metrics *Metrics

	// TracerProvider overrides the global tracer provider, mainly for
	// tests.
	TracerProvider trace.TracerProvider
}

// withDefaults returns a copy of the config with zero values replaced by
// defaults.
func (c Config) withDefaults() Config {
	if c.Registry == nil {
		c.Registry = NewRegistry()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Metrics == nil {
		c.Metrics = NewMetrics(nil)
	}
	if c.TracerProvider == nil {
		c.TracerProvider = otel.GetTracerProvider()
	}
	return c
}

// Dispatcher runs inbound events through the preprocessing stage. It
// guarantees a non-empty message, runs the registered preprocessors,
// resolves whether the bot is being addressed, and hands the event to the
// bus.
type Dispatcher struct {
	config   Config
	nickname *regexp.Regexp
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher from the given configuration.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	cfg = cfg.withDefaults()

	var nickname *regexp.Regexp
	if len(cfg.Nicknames) > 0 {
		quoted := make([]string, 0, len(cfg.Nicknames))
		for _, n := range cfg.Nicknames {
			if n == "" {
				return nil, ErrEmptyNickname
			}
			quoted = append(quoted, regexp.QuoteMeta(n))
		}
		nickname = regexp.MustCompile(`(?i)^(` + strings.Join(quoted, "|") + `)[\s,，]*`)
	}

	return &Dispatcher{
		config:   cfg,
		nickname: nickname,
		tracer:   cfg.TracerProvider.Tracer("github.com/mtkit/mtcode/pkg/pipeline"),
		logger:   cfg.Logger,
	}, nil
}

// Process runs one event through the pipeline stages in order: log the
// inbound message, ensure the message is non-empty, run preprocessors,
// resolve addressing, then emit on the bus. Preprocessor errors are logged
// and counted but never abort the event; bus handler errors are returned.
//
// The event is mutated in place.
func (d *Dispatcher) Process(ctx context.Context, ev *Event) error {
	if ev == nil {
		return ErrNilEvent
	}

	ctx, span := d.tracer.Start(ctx, "pipeline.process",
		trace.WithAttributes(attribute.String("message.detail_type", string(ev.Detail))))
	defer span.End()

	d.logger.Info("pipeline: message received",
		"detail_type", ev.Detail,
		"user_id", ev.UserID,
		"message", ev.Message.String(),
	)

	d.ensurePlaceholder(ev)

	for _, proc := range d.config.Registry.snapshot() {
		if err := proc(ctx, ev); err != nil {
			d.config.Metrics.preprocessorErrors.Inc()
			span.RecordError(err)
			d.logger.Warn("pipeline: preprocessor error", "error", err)
		}
	}

	rawToMe := ev.ToMe
	d.checkAtMe(ev)
	d.checkNickname(ev)
	ev.ToMe = rawToMe || ev.ToMe

	d.config.Metrics.processed.WithLabelValues(string(ev.Detail)).Inc()
	if ev.ToMe {
		d.config.Metrics.toMe.Inc()
	}
	span.SetAttributes(attribute.Bool("message.to_me", ev.ToMe))

	if d.config.Bus != nil {
		name := "message." + string(ev.Detail)
		if ev.SubType != "" {
			name += "." + ev.SubType
		}
		if _, err := d.config.Bus.Emit(ctx, name, ev); err != nil {
			span.RecordError(err)
			return fmt.Errorf("pipeline: emit %s: %w", name, err)
		}
	}
	return nil
}

// ensurePlaceholder keeps the message non-empty so downstream code can
// rely on at least one segment being present.
func (d *Dispatcher) ensurePlaceholder(ev *Event) {
	if len(ev.Message) == 0 {
		ev.Message = message.Message{message.Text("")}
	}
}

// checkAtMe resolves explicit addressing. Private chats always address the
// bot. In group and discuss chats a leading mention of the bot sets ToMe
// and is consumed from the message.
func (d *Dispatcher) checkAtMe(ev *Event) {
	if ev.IsPrivate() {
		ev.ToMe = true
		return
	}
	ev.ToMe = false
	if len(ev.Message) == 0 {
		return
	}
	if ev.Message[0].Equal(message.At(ev.SelfID)) {
		ev.ToMe = true
		ev.Message = ev.Message[1:]
		d.ensurePlaceholder(ev)
	}
}

// checkNickname strips a recognized nickname prefix from a leading text
// segment and marks the event as addressed to the bot.
func (d *Dispatcher) checkNickname(ev *Event) {
	if d.nickname == nil || len(ev.Message) == 0 {
		return
	}
	first := &ev.Message[0]
	if !first.IsText() {
		return
	}
	text := first.Params["text"]
	loc := d.nickname.FindStringSubmatchIndex(text)
	if loc == nil {
		return
	}
	d.logger.Debug("pipeline: nickname matched", "nickname", text[loc[2]:loc[3]])
	ev.ToMe = true
	first.Params["text"] = text[loc[1]:]
}
