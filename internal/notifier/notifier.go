// Package notifier hands the day's pending-task digest to the tray
// companion app over its local webhook. The core only produces the feed;
// scheduling and rendering of reminders belongs to the tray app.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/models"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

type Notifier struct{}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{}
}

// NotifyPending sends a reminder listing the given pending tasks. A day
// with nothing pending sends nothing.
func (n *Notifier) NotifyPending(tasks []models.TaskItem) error {
	if len(tasks) == 0 {
		return nil
	}

	trayConfigDir, err := trayAppConfigDir()
	if err != nil {
		return err
	}
	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayConfigDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	return sendNotification(port, secret, WebhookPayload{
		Text:       Digest(tasks),
		DurationMs: constants.NotificationDurationMs,
	})
}

// Digest formats pending tasks as a single reminder line.
func Digest(tasks []models.TaskItem) string {
	texts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		texts = append(texts, strings.TrimSpace(t.Text))
	}
	if len(texts) == 1 {
		return "1 task still open: " + texts[0]
	}
	return fmt.Sprintf("%d tasks still open: %s", len(texts), strings.Join(texts, ", "))
}

func trayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.TrayAppIdentifier), nil
}

// findAndValidateTrayProcess reads the tray app's lockfile (port|pid|secret)
// and verifies the recorded process is actually the tray app before talking
// to it.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("dayplan-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return "", "", errors.New("invalid port number in lockfile")
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("dayplan-tray process not running")
	}
	if !strings.HasPrefix(process.Executable(), "dayplan-tray") {
		return "", "", fmt.Errorf("process with PID %d is not dayplan-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

func sendNotification(port, secret string, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:"+port, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Dayplan-Secret", secret)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
