package telegram

// Telegram delivery of a rendered chart
// Sends the PNG already on disk as a photo with a caption
// Calls go through a rate limiter, a circuit breaker and retry with jitter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"lifeweeks/internal/infra/log"
	"lifeweeks/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// PhotoSender is the part of *tgbotapi.BotAPI used here.
type PhotoSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Sender struct {
	bot     PhotoSender
	chatID  int64
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	retry   retry.Options
}

// Connect authorises the bot token and returns a Sender for chatID.
func Connect(token, chatID string, maxRetries int) (*Sender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	log.LogInfo("Telegram bot authorised", zap.String("username", bot.Self.UserName))
	return NewSender(bot, chatID, maxRetries)
}

func NewSender(bot PhotoSender, chatID string, maxRetries int) (*Sender, error) {
	id, err := ParseChatID(chatID)
	if err != nil {
		return nil, err
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "TelegramSend",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.LogWarn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Sender{
		bot:     bot,
		chatID:  id,
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		breaker: breaker,
		retry: retry.Options{
			MaxRetries: maxRetries,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   30 * time.Second,
			Retryable:  isTransient,
		},
	}, nil
}

// ParseChatID accepts numeric ids, including negative group ids.
func ParseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid telegram chat id %q", chatID)
	}
	return id, nil
}

// SendChart uploads the PNG at path to the configured chat.
func (s *Sender) SendChart(ctx context.Context, path, caption string) error {
	requestID := log.GenerateRequestID()
	start := time.Now()

	photo := tgbotapi.NewPhoto(s.chatID, tgbotapi.FilePath(path))
	photo.Caption = caption

	attempts := 0
	err := retry.Do(ctx, s.retry, func() error {
		attempts++
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}
		_, err := s.breaker.Execute(func() (interface{}, error) {
			return s.bot.Send(photo)
		})
		if err != nil {
			log.LogDebug("Telegram send attempt failed",
				zap.String("request_id", requestID),
				zap.Int("attempt", attempts),
				zap.Error(err))
		}
		return classify(err)
	})

	duration := time.Since(start).Milliseconds()
	if err != nil {
		log.LogError("Failed to send chart to Telegram",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return fmt.Errorf("telegram delivery failed: %w", err)
	}

	log.LogSuccess("Chart sent to Telegram",
		zap.String("request_id", requestID),
		zap.Int64("chat_id", s.chatID),
		zap.Int("attempts", attempts),
		zap.Int64("duration_ms", duration))
	return nil
}

// classify maps Telegram API errors onto retry.HTTPError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return &retry.HTTPError{
			StatusCode: apiErr.Code,
			Body:       []byte(apiErr.Message),
			RetryAfter: time.Duration(apiErr.RetryAfter) * time.Second,
		}
	}
	return err
}

func isTransient(err error) bool {
	if retry.IsRetryable(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
