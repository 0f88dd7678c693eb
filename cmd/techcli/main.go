// techcli is a terminal front end for field technicians: log in, list
// assigned service requests and submit status/comment/signature updates.
//
// Usage:
//
//	techcli -email tech@example.com -password secret list
//	techcli -email tech@example.com -password secret update <id> \
//	    -status Completed -comments "Done" -strokes strokes.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fieldserve/backend/internal/capture"
	"github.com/fieldserve/backend/internal/client"
	"github.com/fieldserve/backend/internal/models"
)

type terminalNotifier struct{}

func (terminalNotifier) Success(message string) {
	fmt.Printf("✅ %s\n", message)
}

func (terminalNotifier) Error(message string) {
	fmt.Printf("❌ %s\n", message)
}

func (terminalNotifier) Alert(title, message string) {
	fmt.Printf("❌ %s: %s\n", title, message)
}

type terminalNavigator struct{}

func (terminalNavigator) GoHome() {
	fmt.Println("↩️  Back to service request list")
}

func main() {
	server := flag.String("server", "http://localhost:3002", "backend base URL")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("❌ -email and -password are required")
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Println("❌ Missing command: list | update <id> [flags]")
		os.Exit(1)
	}

	ctx := context.Background()
	api := client.New(*server)

	if _, err := api.Login(ctx, *email, *password); err != nil {
		fmt.Printf("❌ Login failed: %v\n", err)
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		listRequests(ctx, api)
	case "update":
		if len(args) < 2 {
			fmt.Println("❌ update requires a service request id")
			os.Exit(1)
		}
		updateRequest(ctx, api, args[1], args[2:])
	default:
		fmt.Printf("❌ Unknown command: %s\n", args[0])
		os.Exit(1)
	}
}

func listRequests(ctx context.Context, api *client.Client) {
	items, err := api.ListServiceRequests(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to fetch service requests: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("📋 %d service request(s)\n", len(items))
	for _, item := range items {
		fmt.Printf("  %s | %-12s | %s for %s (%s) | created by %s\n",
			item.ID, item.Status, item.ServiceName, item.CustomerName,
			item.ScheduledDateTime, item.CreatedByName)
	}
}

func updateRequest(ctx context.Context, api *client.Client, id string, extra []string) {
	updateFlags := flag.NewFlagSet("update", flag.ExitOnError)
	status := updateFlags.String("status", string(models.StatusPending), "new status")
	comments := updateFlags.String("comments", "", "technician comments")
	strokesFile := updateFlags.String("strokes", "", "JSON file with signature strokes")
	if err := updateFlags.Parse(extra); err != nil {
		os.Exit(1)
	}

	form := capture.NewForm(models.ServiceRequest{ID: id}, api, terminalNotifier{}, terminalNavigator{})
	form.SelectStatus(models.ServiceRequestStatus(*status))
	form.SetComments(*comments)

	if *strokesFile != "" {
		if err := drawStrokes(form, *strokesFile); err != nil {
			fmt.Printf("❌ Failed to read strokes: %v\n", err)
			os.Exit(1)
		}
		form.SaveSignature()
	}

	if err := form.Submit(ctx); err != nil {
		os.Exit(1)
	}
}

func drawStrokes(form *capture.Form, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var strokes [][]capture.Point
	if err := json.Unmarshal(data, &strokes); err != nil {
		return err
	}

	for _, stroke := range strokes {
		for i, pt := range stroke {
			if i == 0 {
				form.BeginStroke(pt.X, pt.Y)
				continue
			}
			form.MoveStroke(pt.X, pt.Y)
		}
		form.EndStroke()
	}
	return nil
}
