// README: Interactive demo for the intent pipeline; classifies messages without calling any provider.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"voyago/internal/agent"
)

func main() {
	fmt.Println("voyago intent demo — type a travel request, empty line to quit")

	var prior *agent.Intent
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			break
		}

		intent := agent.Classify(message, prior)
		prior = &intent

		fmt.Printf("intent: %s\n", intent.Type)
		printSlots(intent.Info)

		if patch := agent.DetectPreferenceSignals(message); !patch.IsZero() {
			fmt.Printf("preference signals: %+v\n", patch)
		}

		check := agent.Validate(intent)
		if check.Ready {
			fmt.Println("ready: would dispatch a data fetch")
		} else {
			fmt.Printf("needs %v\n", check.Missing)
			fmt.Printf("would ask: %s\n", check.Clarification)
		}
		fmt.Println()
	}
}

func printSlots(info agent.ExtractedInfo) {
	if info.Origin != "" {
		fmt.Printf("  origin:      %s\n", info.Origin)
	}
	if info.Destination != "" {
		fmt.Printf("  destination: %s\n", info.Destination)
	}
	if len(info.Destinations) > 0 {
		fmt.Printf("  comparing:   %s\n", strings.Join(info.Destinations, ", "))
	}
	if info.Country != "" {
		fmt.Printf("  country:     %s\n", info.Country)
	}
	if info.Region != "" {
		fmt.Printf("  region:      %s\n", info.Region)
	}
	if info.DepartureDate != "" {
		fmt.Printf("  depart:      %s\n", info.DepartureDate)
	}
	if info.ReturnDate != "" {
		fmt.Printf("  return:      %s\n", info.ReturnDate)
	}
	if info.DurationDays > 0 {
		fmt.Printf("  duration:    %d days\n", info.DurationDays)
	}
}
