package expopush

import (
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
	log "github.com/sirupsen/logrus"
)

// Client wraps the Expo push service, the second push-delivery path next to
// FCM. Expo tokens are distinguished from FCM tokens at registration time.
type Client struct {
	pushClient *expo.PushClient
}

func NewClient() *Client {
	return &Client{pushClient: expo.NewPushClient(nil)}
}

// SendToDevices publishes one message to every valid Expo token in tokens.
// Invalid tokens are skipped and returned so the caller can prune them.
func (c *Client) SendToDevices(tokens []string, title, body string, data map[string]string) ([]string, error) {
	var (
		expoTokens []expo.ExponentPushToken
		invalid    []string
	)
	for _, raw := range tokens {
		token, err := expo.NewExponentPushToken(raw)
		if err != nil {
			log.Warnf("[Expo] invalid expo token: %s", truncate(raw))
			invalid = append(invalid, raw)
			continue
		}
		expoTokens = append(expoTokens, token)
	}

	if len(expoTokens) == 0 {
		return invalid, nil
	}

	pushMessage := &expo.PushMessage{
		To:       expoTokens,
		Title:    title,
		Body:     body,
		Data:     data,
		Sound:    "default",
		Priority: expo.DefaultPriority,
	}

	response, err := c.pushClient.Publish(pushMessage)
	if err != nil {
		return invalid, err
	}

	if err := response.ValidateResponse(); err != nil {
		log.Warnf("[Expo] push rejected for %v", response.PushMessage.To)
	}

	return invalid, nil
}

func truncate(token string) string {
	if len(token) <= 20 {
		return token
	}
	return token[:20] + "..."
}
