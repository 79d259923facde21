// Command sessiongate is a diagnostic shell around the session subsystem:
// it restores a persisted session against the configured backend, runs a
// navigation target through the authorization gate, and reports what the
// application would have done.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/harvestly/go-session-gate/authgate"
	"github.com/harvestly/go-session-gate/httpapi"
	"github.com/harvestly/go-session-gate/internal/config"
	"github.com/harvestly/go-session-gate/navigator"
	"github.com/harvestly/go-session-gate/session"
	"github.com/harvestly/go-session-gate/tokenstore"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()
	c := config.New()
	setLogLevel(c.GetLogLevel())
	displayAppname(c.GetAppName())

	store := tokenstore.NewFile(c.GetTokenFile())
	backend := httpapi.New(c)
	manager, err := session.NewManager(backend, store)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*c.GetRequestTimeout())
	defer cancel()

	if manager.Session().State == session.StateRestoring {
		if err := manager.Restore(ctx); err != nil {
			fmt.Printf("Session restore failed: %s\n", err)
		}
	}
	printSession(manager.Session())

	targetPath := "/dashboard"
	if len(os.Args) > 1 {
		targetPath = os.Args[1]
	}

	gate := authgate.New(authgate.DefaultRules())
	coordinator := navigator.NewCoordinator(stdoutNavigator{}, stdoutNotifier{})
	decision := gate.Evaluate(targetPath, manager.Session())
	outcome := coordinator.Apply(targetPath, decision)
	fmt.Printf("Evaluated %s -> %s\n", targetPath, outcome)

	if manager.RefreshDue(5 * time.Minute) {
		fmt.Println("Token expires soon, a refresh is advisable")
	}
	return nil
}

func printSession(snap session.Snapshot) {
	fmt.Printf("Session state: %s\n", snap.State)
	if snap.User != nil {
		fmt.Printf("Signed in as %s (%s)\n", snap.User.Email, snap.User.Role)
	}
	if snap.Err != nil {
		fmt.Printf("Last error: %s\n", snap.Err)
	}
}

func setLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

type stdoutNavigator struct{}

func (stdoutNavigator) Navigate(path string) { fmt.Printf("Navigate -> %s\n", path) }
func (stdoutNavigator) Replace(path string)  { fmt.Printf("Redirect -> %s\n", path) }

type stdoutNotifier struct{}

func (stdoutNotifier) Notify(message string) { fmt.Printf("Notice: %s\n", message) }
