package notifications

import "streambox/internal/models"

type Notifier interface {
	NotifyWatchlistAdd(title string, contentType models.MediaType)
	NotifyWatchlistRemove(title string, contentType models.MediaType)
	Test() error
}

// Noop is used when no notification provider is configured.
type Noop struct{}

func (Noop) NotifyWatchlistAdd(string, models.MediaType)    {}
func (Noop) NotifyWatchlistRemove(string, models.MediaType) {}
func (Noop) Test() error                                    { return nil }
