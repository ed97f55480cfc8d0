package notify

import (
	"fmt"
	"io"
	"log"
	"os/exec"
	"runtime"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/session"
)

// ConsoleNotifier announces rest completion on the terminal and through
// the desktop notification service when one is around. The vibration
// preference is stored for the settings surface but has no console
// equivalent, it is never read here.
type ConsoleNotifier struct {
	settings models.Settings
	out      io.Writer
	logger   *log.Logger
}

var _ session.Notifier = (*ConsoleNotifier)(nil)

func NewConsoleNotifier(settings models.Settings, out io.Writer, logger *log.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{settings: settings, out: out, logger: logger}
}

func (n *ConsoleNotifier) RestComplete() {
	if n.settings.SoundEnabled {
		fmt.Fprint(n.out, "\a")
	}
	if !n.settings.NotificationsEnabled {
		return
	}

	title := "Rest complete"
	body := "Time for the next set"

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("notify-send", title, body)
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		cmd = exec.Command("osascript", "-e", script)
	}

	if cmd == nil {
		fmt.Fprintf(n.out, "⏰ %s: %s\n", title, body)
		return
	}
	if err := cmd.Run(); err != nil {
		n.logger.Printf("notify: desktop notification failed: %v", err)
		fmt.Fprintf(n.out, "⏰ %s: %s\n", title, body)
	}
}

// Silent drops every notification.
type Silent struct{}

var _ session.Notifier = Silent{}

func (Silent) RestComplete() {}
