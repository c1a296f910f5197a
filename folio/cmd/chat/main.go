// Terminal chat client: drives the widget session controller against a
// running folio server.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"folio/folio/services/telemetry"
	"folio/folio/utils/color"
	"folio/folio/utils/logging"
	"folio/folio/utils/types"
	"folio/folio/widget"
	"folio/folio/widget/consent"
)

func main() {
	logging.InitLogger()

	baseURL := os.Getenv("FOLIO_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	store, err := consent.Open(consentPath())
	if err != nil {
		fmt.Println(color.ColorError("cannot open consent store: " + err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	if _, ok := store.Current(); !ok {
		// First run: same two choices the site's cookie banner offers.
		fmt.Println("Allow analytics cookies? [y/N]")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		level := consent.LevelNecessary
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			level = consent.LevelAll
		}
		if err := store.Set(level); err != nil {
			fmt.Println(color.ColorWarning("could not save consent choice: " + err.Error()))
		}
	}

	tracker := telemetry.NewTracker(
		telemetry.NewHTTPSink(baseURL),
		func() bool { return store.Level() != consent.LevelNecessary },
	)
	stop := tracker.Start()
	defer stop()

	w := widget.New(widget.NewHTTPProxyClient(baseURL), store, tracker, false)
	w.Open()
	defer w.End()

	fmt.Println(color.ColorInfo("Connected to " + baseURL))
	fmt.Println(color.ColorInfo("Session: " + w.SessionID()))
	fmt.Println()
	printLast(w)
	fmt.Println("\nType your question, 'consent all'/'consent necessary' to change cookies, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(color.ColorPrompt("you> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}
		if lvl, ok := strings.CutPrefix(line, "consent "); ok {
			if err := store.Set(consent.Level(lvl)); err != nil {
				fmt.Println(color.ColorWarning("could not save consent: " + err.Error()))
			}
			continue
		}
		w.Send(context.Background(), line)
		printLast(w)
	}
}

func printLast(w *widget.Widget) {
	transcript := w.Transcript()
	if len(transcript) == 0 {
		return
	}
	last := transcript[len(transcript)-1]
	if last.Role == types.RoleAssistant {
		fmt.Println(color.ColorAssistant("assistant> " + last.Content))
	}
}

func consentPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	dir = filepath.Join(dir, "folio")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "consent.db")
}
