//go:build integration

package telegram

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fogleman/gg"
)

// Requires TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID.
func TestSendChart_Live(t *testing.T) {
	token, chatID := os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatID == "" {
		t.Skip("TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID not set")
	}

	path := filepath.Join(t.TempDir(), "probe.png")
	dc := gg.NewContext(64, 64)
	dc.SetHexColor("#DA70D6")
	dc.Clear()
	if err := dc.SavePNG(path); err != nil {
		t.Fatal(err)
	}

	s, err := Connect(token, chatID, 1)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.SendChart(ctx, path, "integration probe"); err != nil {
		t.Fatalf("SendChart: %v", err)
	}
}
