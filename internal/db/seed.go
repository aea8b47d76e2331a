package db

import (
	"database/sql"
	"fmt"
	"time"
)

// seedEntries is the starter knowledge base for a fresh install. Questions
// are stored normalized (lower case, no punctuation).
var seedEntries = []struct{ question, answer string }{
	{"what are your hours", "We're open Monday to Friday 9AM-7PM, Saturday 10AM-5PM"},
	{"when are you open", "Our hours are Monday-Friday 9AM-7PM, Saturday 10AM-5PM"},
	{"where are you located", "We're at 123 Beauty Street, Glamour City"},
	{"what services do you offer", "We offer haircuts, coloring, styling, and spa treatments"},
	{"how much is a haircut", "Haircuts start at $45"},
	{"do you accept walk ins", "Yes, we accept walk-ins based on availability"},
	{"do you take walk ins", "Yes, we accept walk-ins based on availability"},
	{"how to book appointment", "You can book by calling us or through our website"},
	{"what is your cancellation policy", "We require 24 hours notice for cancellations"},
	{"do you offer hair coloring", "Yes, we offer professional hair coloring services"},
	{"what brands do you use", "We use premium brands like Redken and Olaplex"},
}

// SeedKnowledge populates an empty knowledge base with the starter entries.
// A non-empty knowledge base is left untouched so reseeding never duplicates
// or clobbers learned answers.
func SeedKnowledge(database *sql.DB) (int, error) {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM knowledge_base").Scan(&count); err != nil {
		return 0, fmt.Errorf("seed knowledge: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now()
	for i, e := range seedEntries {
		// Spread creation times so tie-breaks by earliest entry stay stable.
		createdAt := now.Add(time.Duration(i) * time.Millisecond)
		if _, err := database.Exec(
			"INSERT INTO knowledge_base (question, answer, created_at) VALUES (?, ?, ?)",
			e.question, e.answer, createdAt,
		); err != nil {
			return 0, fmt.Errorf("seed knowledge: %w", err)
		}
	}

	return len(seedEntries), nil
}
