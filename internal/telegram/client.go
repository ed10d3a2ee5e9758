// Package telegram provides a client for pushing the top evaluated
// opportunities to a Telegram chat. It formats records into a MarkdownV2
// digest and handles delivery with retry for transient API failures.
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jmckib/predictit-longshot-fund/internal/models"
	"github.com/jmckib/predictit-longshot-fund/internal/report"
)

// Client handles Telegram notifications.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client.
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendTopOpportunities sends the topK most profitable evaluated contracts as a
// single digest message.
func (c *Client) SendTopOpportunities(records []models.EvaluatedContract, topK int) error {
	message := formatMessage(records, topK)

	msg := tgbotapi.NewMessage(c.chatID, message)
	msg.ParseMode = "MarkdownV2"
	msg.DisableWebPagePreview = true

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatMessage formats the top opportunities into a Telegram message.
func formatMessage(records []models.EvaluatedContract, topK int) string {
	top := report.TopByProfit(records, topK)

	var sb strings.Builder
	sb.WriteString("💰 *Top Debiased Opportunities*\n\n")

	if len(top) == 0 {
		sb.WriteString("No opportunities in this snapshot\\.\n")
		return sb.String()
	}

	for i, rec := range top {
		name := rec.MarketName
		if rec.ContractName != "" {
			name = fmt.Sprintf("%s — %s", rec.MarketName, rec.ContractName)
		}

		var title string
		if rec.URL != "" {
			// MarkdownV2 hyperlink: escape the text but not the URL.
			title = fmt.Sprintf("[%s](%s)", escapeMarkdownV2(name), rec.URL)
		} else {
			title = escapeMarkdownV2(name)
		}

		priceStr := escapeMarkdownV2(fmt.Sprintf("%.2f", rec.Price))
		debiasedStr := escapeMarkdownV2(fmt.Sprintf("%.2f", rec.DebiasedPrice))
		profitStr := escapeMarkdownV2(fmt.Sprintf("%.2f", rec.TotalProfit))
		netStr := escapeMarkdownV2(fmt.Sprintf("%.2f", rec.TotalProfitNetFees))

		sb.WriteString(fmt.Sprintf("%d\\. %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("   Buy *%s* at %s \\(debiased %s\\)\n", rec.Side, priceStr, debiasedStr))
		sb.WriteString(fmt.Sprintf("   Profit: *%s* \\(%s after fees\\)\n", profitStr, netStr))
		if rec.EndDate != nil {
			sb.WriteString(fmt.Sprintf("   Ends: %s\n", escapeMarkdownV2(rec.EndDate.Format("2006-01-02"))))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	var sb strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			sb.WriteByte('\\')
		}
		sb.WriteRune(char)
	}
	return sb.String()
}
