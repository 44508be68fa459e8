package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/faqdesk/faqconsole/cmd/faqconsole/commands"
)

// @title        FAQ Console API
// @version      1.0
// @description  Session, language and resource proxy endpoints of the FAQ admin console.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
