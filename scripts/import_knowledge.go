//go:build ignore

// One-off importer: loads question/answer pairs from a JSON file into the
// knowledge base. Used when onboarding a business that already has an FAQ
// document.
//
// Usage:
//
//	go run scripts/import_knowledge.go -db ~/.frontdesk/frontdesk.db -file faq.json
//
// The file is a JSON array of {"question": "...", "answer": "..."} objects.
// Questions are normalized the same way the application normalizes them, and
// entries whose normalized question already exists are skipped.
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	_ "github.com/mattn/go-sqlite3"
)

type faqEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func main() {
	dbPath := flag.String("db", "", "path to the frontdesk database")
	filePath := flag.String("file", "", "path to the FAQ JSON file")
	flag.Parse()

	if *dbPath == "" || *filePath == "" {
		fmt.Fprintln(os.Stderr, "both -db and -file are required")
		os.Exit(1)
	}

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", *filePath, err)
		os.Exit(1)
	}

	var entries []faqEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse %s: %v\n", *filePath, err)
		os.Exit(1)
	}

	database, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	existing := make(map[string]bool)
	rows, err := database.Query("SELECT question FROM knowledge_base")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read existing entries: %v\n", err)
		os.Exit(1)
	}
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			fmt.Fprintf(os.Stderr, "failed to scan entry: %v\n", err)
			os.Exit(1)
		}
		existing[q] = true
	}
	rows.Close()

	imported, skipped := 0, 0
	now := time.Now()
	for i, e := range entries {
		q := normalize(e.Question)
		if q == "" || strings.TrimSpace(e.Answer) == "" {
			fmt.Fprintf(os.Stderr, "skipping entry %d: empty question or answer\n", i)
			skipped++
			continue
		}
		if existing[q] {
			skipped++
			continue
		}

		createdAt := now.Add(time.Duration(i) * time.Millisecond)
		if _, err := database.Exec(
			"INSERT INTO knowledge_base (question, answer, created_at) VALUES (?, ?, ?)",
			q, e.Answer, createdAt,
		); err != nil {
			fmt.Fprintf(os.Stderr, "failed to insert entry %d: %v\n", i, err)
			os.Exit(1)
		}
		existing[q] = true
		imported++
	}

	fmt.Printf("Imported %d entries, skipped %d.\n", imported, skipped)
}

// normalize mirrors the application's question normalization: lower case,
// punctuation stripped, whitespace collapsed.
func normalize(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimRight(b.String(), " ")
}
