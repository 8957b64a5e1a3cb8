package notifications

import (
	"fmt"

	"github.com/xconstruct/go-pushbullet"

	"streambox/internal/models"
	"streambox/internal/utils"
)

// PushbulletClient implements the Notifier interface for Pushbullet.
type PushbulletClient struct {
	apiKey string
	pb     *pushbullet.Client
	logger *utils.Logger
}

// NewPushbulletClient creates a new client for sending Pushbullet notifications.
func NewPushbulletClient(apiKey string, logger *utils.Logger) *PushbulletClient {
	pb := pushbullet.New(apiKey)
	return &PushbulletClient{
		apiKey: apiKey,
		pb:     pb,
		logger: logger,
	}
}

// sendPush sends a note to all of the user's devices.
func (c *PushbulletClient) sendPush(title, body string) error {
	// The first argument to PushNote is the device iden. Empty means all devices.
	return c.pb.PushNote("", title, body)
}

func (c *PushbulletClient) NotifyWatchlistAdd(title string, contentType models.MediaType) {
	subject := fmt.Sprintf("Added to Watchlist: %s", title)
	body := fmt.Sprintf("The %s %q was added to your watchlist", contentType, title)
	if err := c.sendPush(subject, body); err != nil {
		c.logger.Error("Error sending Pushbullet notification:", err)
	}
}

func (c *PushbulletClient) NotifyWatchlistRemove(title string, contentType models.MediaType) {
	subject := fmt.Sprintf("Removed from Watchlist: %s", title)
	body := fmt.Sprintf("The %s %q was removed from your watchlist", contentType, title)
	if err := c.sendPush(subject, body); err != nil {
		c.logger.Error("Error sending Pushbullet notification:", err)
	}
}

// Test verifies the API key is valid by fetching user info.
func (c *PushbulletClient) Test() error {
	if _, err := c.pb.Me(); err != nil {
		return fmt.Errorf("pushbullet authentication failed: %w", err)
	}
	return nil
}
