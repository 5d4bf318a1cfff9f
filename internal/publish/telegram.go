package publish

// Sends rendered charts to a Telegram chat as photos
// Every send waits on a rate limiter, runs inside a circuit breaker and is
// retried with jitter on flood control (429) and 5xx responses

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	logging "hcran-charts/internal/infra/log"
	"hcran-charts/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sender is the part of *tgbotapi.BotAPI the publisher needs
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Chart is one rendered file and the caption sent with it
type Chart struct {
	Path    string
	Caption string
}

type Publisher struct {
	sender         Sender
	chatID         int64
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	retryOptions   retry.Options
}

// NewPublisher wraps sender. Telegram allows about one message per second
// per chat, so the limiter is 1/s with a burst of 3.
func NewPublisher(sender Sender, chatID int64) *Publisher {
	return &Publisher{
		sender:      sender,
		chatID:      chatID,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 3),
		circuitBreaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "TelegramBotAPI",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		retryOptions: retry.Options{
			MaxRetries: 3,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   30 * time.Second,
		},
	}
}

// NewTelegramPublisher authorizes the bot and targets chatID
func NewTelegramPublisher(botToken, chatID string) (*Publisher, error) {
	id, err := ParseChatID(chatID)
	if err != nil {
		return nil, err
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	logging.LogInfo("Telegram bot authorized", zap.String("username", bot.Self.UserName))

	return NewPublisher(bot, id), nil
}

// ParseChatID accepts numeric chat ids, including negative group ids
func ParseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}
	return id, nil
}

// PublishChart sends one PNG as a photo with caption
func (p *Publisher) PublishChart(ctx context.Context, c Chart) error {
	if _, err := os.Stat(c.Path); err != nil {
		return fmt.Errorf("chart %s not found: %w", c.Path, err)
	}

	requestID := logging.GenerateRequestID()
	logger := logging.RequestLogger(requestID)
	start := time.Now()

	err := retry.Do(ctx, p.retryOptions, func() error {
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}

		_, err := p.circuitBreaker.Execute(func() (interface{}, error) {
			photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FilePath(c.Path))
			photo.Caption = c.Caption
			return p.sender.Send(photo)
		})
		if err != nil {
			logger.Warn("Telegram send attempt failed", zap.String("path", c.Path), zap.Error(err))
		}
		return err
	})

	durationMs := time.Since(start).Milliseconds()
	if err != nil {
		logger.Error("Failed to publish chart",
			zap.String("path", c.Path),
			zap.Int64("duration_ms", durationMs),
			zap.Error(err))
		return fmt.Errorf("failed to publish %s: %w", c.Path, err)
	}

	logger.Info("Chart published",
		zap.String("path", c.Path),
		zap.Int64("chat_id", p.chatID),
		zap.Int64("duration_ms", durationMs))
	return nil
}

// PublishAll sends every chart in order and keeps going after failures.
// It returns the first error, if any.
func (p *Publisher) PublishAll(ctx context.Context, charts []Chart) error {
	var firstErr error
	sent := 0
	for _, c := range charts {
		if err := p.PublishChart(ctx, c); err != nil {
			logging.LogError("Chart was not delivered", zap.String("path", c.Path), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}
		sent++
	}

	if firstErr == nil {
		logging.LogSuccess("Charts published to Telegram", zap.Int("count", sent))
	}
	return firstErr
}
