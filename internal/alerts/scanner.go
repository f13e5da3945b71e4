package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lucasmn/autocare-server/internal/config"
	"github.com/lucasmn/autocare-server/internal/models"
	"github.com/lucasmn/autocare-server/internal/service"
	"go.uber.org/zap"
)

// Scanner periodically walks every account, collects unacknowledged
// due maintenance and tax items and pushes them to a Telegram chat.
// Without a bot token the scan still runs but nothing is sent.
type Scanner struct {
	service  service.Service
	logger   *zap.SugaredLogger
	interval time.Duration
	chatID   int64
	bot      *tgbotapi.BotAPI
}

// NewScanner builds a Scanner from the alerts configuration. A Telegram
// connection failure disables delivery but not the scanner itself.
func NewScanner(svc service.Service, logger *zap.SugaredLogger, cfg config.AlertsConfig) *Scanner {
	s := &Scanner{
		service:  svc,
		logger:   logger,
		interval: cfg.ScanInterval,
		chatID:   cfg.ChatID,
	}

	if cfg.BotToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			logger.Warnf("telegram bot init failed, alert delivery disabled: %v", err)
		} else {
			s.bot = bot
		}
	}

	return s
}

// Run loops until the context is cancelled, scanning on a fixed
// interval. The first scan happens immediately.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scanOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scanOnce(ctx)
		}
	}
}

func (s *Scanner) scanOnce(ctx context.Context) {
	s.logger.Debug("running alert scan")

	accounts, err := s.service.ListAccounts(ctx)
	if err != nil {
		s.logger.Errorf("alert scan: listing accounts: %v", err)
		return
	}

	for _, account := range accounts {
		settings, err := s.service.GetSettings(ctx, account.ID)
		if err != nil {
			s.logger.Errorf("alert scan: settings for %s: %v", account.Username, err)
			continue
		}
		if !settings.NotificationsEnabled {
			continue
		}

		alerts, err := s.service.GetAlerts(ctx, account.ID)
		if err != nil {
			s.logger.Errorf("alert scan: alerts for %s: %v", account.Username, err)
			continue
		}

		unread := make([]models.Alert, 0, len(alerts))
		for _, alert := range alerts {
			if !alert.Read {
				unread = append(unread, alert)
			}
		}
		if len(unread) == 0 {
			continue
		}

		s.logger.Infow("due items found", "account", account.Username, "count", len(unread))
		s.notify(account, unread)
	}
}

func (s *Scanner) notify(account models.Account, alerts []models.Alert) {
	if s.bot == nil || s.chatID == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔧 %s has %d pending vehicle alerts:\n", account.Name, len(alerts))
	for _, alert := range alerts {
		switch {
		case alert.Kind == "maintenance" && alert.DueMileage != nil:
			fmt.Fprintf(&b, "• %s (%s at %d km)\n", alert.Title, alert.State, *alert.DueMileage)
		case alert.Kind == "tax" && alert.DaysUntilDue != nil:
			fmt.Fprintf(&b, "• %s (%s, %d days)\n", alert.Title, alert.State, *alert.DaysUntilDue)
		default:
			fmt.Fprintf(&b, "• %s (%s)\n", alert.Title, alert.State)
		}
	}

	msg := tgbotapi.NewMessage(s.chatID, b.String())
	if _, err := s.bot.Send(msg); err != nil {
		s.logger.Errorf("alert scan: sending telegram message: %v", err)
	}
}
