package events

import (
	"context"
	"errors"
	"log"
	"strings"

	"newsdesk/reader"
	"newsdesk/types"
)

// RefreshRequest asks the reader to switch category, reload, or both
type RefreshRequest struct {
	Category string `json:"category,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`
}

// Refresher is the part of the reader controller driven by refresh requests
type Refresher interface {
	SelectCategory(ctx context.Context, name string) error
	Refresh(ctx context.Context) error
}

// NewRefreshHandler turns refresh requests into controller calls. Malformed
// or empty requests are committed and dropped.
func NewRefreshHandler(r Refresher) *TypedMessageHandler[RefreshRequest] {
	return &TypedMessageHandler[RefreshRequest]{
		Validate: func(msg *RefreshRequest) bool {
			if strings.TrimSpace(msg.Category) == "" {
				return msg.Refresh
			}
			if _, err := types.ParseCategory(msg.Category); err != nil {
				log.Printf("⚠️ Ignoring refresh request: %v", err)
				return false
			}
			return true
		},
		Process: func(ctx context.Context, msg *RefreshRequest) error {
			var err error
			if strings.TrimSpace(msg.Category) != "" {
				log.Printf("🔄 Refresh request: switching to %s", msg.Category)
				err = r.SelectCategory(ctx, msg.Category)
			} else {
				log.Println("🔄 Refresh request: reloading feed")
				err = r.Refresh(ctx)
			}
			if errors.Is(err, reader.ErrSuperseded) {
				return nil
			}
			return err
		},
		AlwaysMark: true,
	}
}
