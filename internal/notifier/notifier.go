// Package notifier delivers desktop notifications through the studytrack
// tray companion's local webhook. Delivery is best-effort: when the tray
// app is not running the caller gets ErrNotSupported and is expected to
// degrade silently.
package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/studytrack/studytrack/internal/constants"
	apperrors "github.com/studytrack/studytrack/internal/errors"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

type Notifier struct{}

type WebhookPayload struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{}
}

// Notify sends a notification with a title and body. Returns
// ErrNotSupported when the tray companion is unavailable.
func (n *Notifier) Notify(title, text string) error {
	trayConfigDir, err := trayAppConfigDir()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNotSupported, err)
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayConfigDir, constants.NotifierLockfileName))
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNotSupported, err)
	}

	payload := WebhookPayload{
		Title:      title,
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	return sendNotification(port, secret, payload)
}

// trayAppConfigDir returns the configuration directory used by the tray
// application.
func trayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.TrayAppIdentifier), nil
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", fmt.Errorf("tray app is not running")
	}

	port, secret, pid, err := parseLockfile(string(content))
	if err != nil {
		return "", "", err
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", fmt.Errorf("tray app process not running")
	}

	if !strings.HasPrefix(process.Executable(), "studytrack-tray") {
		return "", "", fmt.Errorf("process with PID %d is not studytrack-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

// parseLockfile splits the "port|pid|secret" lockfile contents and
// validates each field.
func parseLockfile(content string) (port, secret string, pid int, err error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return "", "", 0, fmt.Errorf("lockfile is malformed")
	}

	port = strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", 0, fmt.Errorf("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", 0, fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid process ID in lockfile")
	}

	secret = parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", 0, fmt.Errorf("secret in lockfile is empty")
	}

	return port, secret, pid, nil
}

func sendNotification(port string, secret string, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Studytrack-Secret", secret)

	client := &http.Client{}
	res, err := client.Do(req)
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
