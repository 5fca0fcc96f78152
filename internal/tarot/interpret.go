package tarot

import (
	"fmt"
	"strings"

	"tarotbot/internal/models"
)

// Defaults used when the backend record omits the advice fields.
const (
	defaultAdvice         = "Trust your intuition"
	defaultReversedAdvice = "Accept the situation as it is"
	defaultDescription    = "No description available"
)

// Interpret builds the full textual interpretation of a drawn spread.
// Deterministic: one block per slot, in slot order, under the spread
// title.
func Interpret(def Definition, cards []models.Card, reversed []bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 Interpretation: %s\n\n", def.Title)

	parts := make([]string, 0, len(cards))
	for i, card := range cards {
		parts = append(parts, interpretSlot(def.SlotLabels[i], card, reversed[i]))
	}
	b.WriteString(strings.Join(parts, "\n"))
	return b.String()
}

// FormatCaption builds the short caption shown with the spread image:
// title, optional question, then per slot the card name and the
// orientation-appropriate description.
func FormatCaption(def Definition, cards []models.Card, reversed []bool, question string) string {
	var b strings.Builder
	b.WriteString(def.Title)
	if question != "" {
		fmt.Fprintf(&b, "\n💭 Question: %s", question)
	}
	b.WriteString("\n\n")

	for i, card := range cards {
		marker := "⬆️"
		desc := card.Description
		if reversed[i] {
			marker = "🔄"
			desc = card.ReversedDesc
		}
		if desc == "" {
			desc = defaultDescription
		}
		fmt.Fprintf(&b, "%s:\n%s %s\n%s\n\n", def.SlotLabels[i], marker, card.Name, desc)
	}
	return strings.TrimRight(b.String(), "\n")
}

func interpretSlot(label string, card models.Card, isReversed bool) string {
	desc := card.Description
	advice := card.Advice
	marker := "⬆️ Upright"
	if isReversed {
		desc = card.ReversedDesc
		advice = card.ReversedAdvice
		marker = "🔄 Reversed"
	}
	if desc == "" {
		desc = defaultDescription
	}
	if advice == "" {
		if isReversed {
			advice = defaultReversedAdvice
		} else {
			advice = defaultAdvice
		}
	}
	return fmt.Sprintf("%s: %s\n%s:\n%s\n💡 Advice: %s\n", label, card.Name, marker, desc, advice)
}
