package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fxpulse/internal/domain"

	"github.com/sirupsen/logrus"
	tb "gopkg.in/tucnak/telebot.v2"
)

const DefaultAPIURL = "https://api.telegram.org"

// chatRecipient accepts numeric chat ids as well as @channel usernames.
type chatRecipient string

func (c chatRecipient) Recipient() string { return string(c) }

// Notifier delivers one message to every destination through the Bot API sendMessage method.
type Notifier struct {
	apiURL string
	http   *http.Client
}

// Notify attempts every destination once. A failed destination is logged and
// reported but never stops delivery to the others.
func (n *Notifier) Notify(ctx context.Context, message string, destinations []domain.Destination) domain.DeliveryReport {
	report := domain.DeliveryReport{Results: make([]domain.DeliveryResult, 0, len(destinations))}
	for _, dest := range destinations {
		err := n.send(ctx, dest, message)
		report.Results = append(report.Results, domain.DeliveryResult{Destination: dest.Name, Err: err})
		if err != nil {
			logrus.WithError(err).WithField("destination", dest.Name).Errorf("Error sending message to %s", dest.ChatID)
			continue
		}
		logrus.WithField("destination", dest.Name).Infof("Message sent successfully to chat ID: %s", dest.ChatID)
	}
	return report
}

func (n *Notifier) send(ctx context.Context, dest domain.Destination, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dest.Token == "" || dest.ChatID == "" {
		return errors.New("destination has no token or chat id")
	}

	bot, err := tb.NewBot(tb.Settings{
		URL:       n.apiURL,
		Token:     dest.Token,
		Client:    n.http,
		ParseMode: tb.ModeMarkdown,
		Offline:   true,
	})
	if err != nil {
		return redact(fmt.Errorf("failed to create telegram bot: %w", err), dest.Token)
	}

	if _, err = bot.Send(chatRecipient(dest.ChatID), message, tb.ModeMarkdown); err != nil {
		return redact(fmt.Errorf("send message: %w", err), dest.Token)
	}
	return nil
}

// redact keeps bot tokens, which are part of the request path, out of error messages.
func redact(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "<token>"))
}

func NewNotifier(httpClient *http.Client, apiURL string) *Notifier {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Notifier{apiURL: strings.TrimSuffix(apiURL, "/"), http: httpClient}
}
