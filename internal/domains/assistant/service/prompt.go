package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"nutrisur/internal/domains/assistant/model"
)

const promptClockLayout = "Monday 2006-01-02 15:04"

const bookingSystemPrompt = `You are the booking assistant of NutriSur, a nutrition clinic. You help the user choose a date, a time and optional notes for an appointment.

Rules:
- Reply in the language the user writes in. Keep replies short and friendly.
- Dates use YYYY-MM-DD and times use HH:MM (24h), both in the clinic's local time.
- Never offer or accept a date and time in the past, nor one listed as occupied.
- Only fill a slot the user stated in this message. Leave every other slot null.
- Use intent "confirm" only when the user explicitly agrees to book the date and time gathered so far.
- Use intent "cancel" and set resetFlag to true when the user wants to abandon or start over.
- Otherwise use intent "continue" and ask for whatever is still missing.

Answer with a single JSON object and nothing else:
{"textReply": string, "extractedSlots": {"date": string|null, "time": string|null, "notes": string|null}, "intent": "continue"|"cancel"|"confirm", "resetFlag": boolean}`

const orderSystemPrompt = `You are the ordering assistant of NutriSur, a shop selling healthy food products. You help the user build an order from the catalogue.

Rules:
- Reply in the language the user writes in. Keep replies short and friendly.
- Only products listed in the catalogue can be ordered. Use their names exactly as listed.
- Quantities are positive whole numbers. Default to 1 when the user gives none.
- Use an "add" action for products to add and a "remove" action for products to take out.
- Set finalize to true only when the user explicitly confirms the order is complete.

Answer with a single JSON object and nothing else:
{"textReply": string, "actions": [{"type": "add"|"remove", "productName": string, "quantity": number}], "finalize": boolean}`

func withInstructions(system, extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return system
	}

	return system + "\n\nAdditional business rules:\n" + extra
}

func bookingPrompt(now time.Time, message string, slots model.BookingSlots, occupied string) string {
	var builder strings.Builder

	encodedSlots, _ := json.Marshal(slots)

	fmt.Fprintf(&builder, "Current date and time: %s (%s)\n", now.Format(promptClockLayout), now.Location())
	fmt.Fprintf(&builder, "Current slots: %s\n", encodedSlots)

	builder.WriteString("Occupied slots:\n")

	if strings.TrimSpace(occupied) == "" {
		builder.WriteString("none\n")
	} else {
		builder.WriteString(occupied + "\n")
	}

	fmt.Fprintf(&builder, "User message: %s", message)

	return builder.String()
}

func orderPrompt(
	now time.Time,
	message string,
	catalog []model.CatalogItem,
	order model.OrderState,
	history []model.HistoryEntry,
) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "Current date and time: %s\n", now.Format(promptClockLayout))

	builder.WriteString("Catalogue:\n")

	for _, item := range catalog {
		fmt.Fprintf(&builder, "- %s (%.2f)", item.Name, item.Price)

		if item.Description != "" {
			builder.WriteString(": " + item.Description)
		}

		builder.WriteString("\n")
	}

	builder.WriteString("Current order:\n")

	if len(order.Lines) == 0 {
		builder.WriteString("empty\n")
	}

	for _, line := range order.Lines {
		fmt.Fprintf(&builder, "- %d x %s = %.2f\n", line.Quantity, line.ProductName, line.Subtotal)
	}

	fmt.Fprintf(&builder, "Total: %.2f\n", order.Total)

	if len(history) > 0 {
		builder.WriteString("Conversation so far:\n")

		for _, entry := range history {
			fmt.Fprintf(&builder, "%s: %s\n", entry.Role, entry.Content)
		}
	}

	fmt.Fprintf(&builder, "User message: %s", message)

	return builder.String()
}
