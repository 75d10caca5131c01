// Command ragsearchctl is a thin demo client for the RAGSearch Engine HTTP
// API: it drives the create-library, ingest, and search subcommands
// against a running ragsearchd instance.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	baseURL := os.Getenv("RAGSEARCH_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	switch os.Args[1] {
	case "create-library":
		createLibrary(baseURL, os.Args[2:])
	case "ingest":
		ingest(baseURL, os.Args[2:])
	case "search":
		search(baseURL, os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ragsearchctl <create-library|ingest|search> [flags]")
}

func createLibrary(baseURL string, args []string) {
	fs := flag.NewFlagSet("create-library", flag.ExitOnError)
	name := fs.String("name", "", "library name")
	indexType := fs.String("index-type", "naive", "naive | lsh | vptree")
	fs.Parse(args)

	body := map[string]interface{}{
		"name":       *name,
		"index_type": *indexType,
	}
	out, err := post(baseURL+"/api/v1/libraries", body)
	check(err)
	fmt.Println(out)
}

func ingest(baseURL string, args []string) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	libraryID := fs.String("library", "", "library id")
	docID := fs.String("doc-id", "", "document id")
	text := fs.String("text", "", "document text")
	chunkSize := fs.Int("chunk-size", 500, "chunk size in characters")
	fs.Parse(args)

	body := map[string]interface{}{
		"id":         *docID,
		"text":       *text,
		"chunk_size": *chunkSize,
	}
	out, err := post(baseURL+"/api/v1/libraries/"+*libraryID+"/documents", body)
	check(err)
	fmt.Println(out)
}

func search(baseURL string, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	libraryID := fs.String("library", "", "library id")
	query := fs.String("query", "", "query text")
	k := fs.Int("k", 5, "number of results")
	minSim := fs.Float64("min-similarity", 0, "minimum cosine similarity")
	fs.Parse(args)

	body := map[string]interface{}{
		"query_text":     *query,
		"k":              *k,
		"min_similarity": *minSim,
	}
	out, err := post(baseURL+"/api/v1/libraries/"+*libraryID+"/search", body)
	check(err)
	fmt.Println(out)
}

func post(url string, body map[string]interface{}) (string, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return string(raw), nil
	}
	return pretty.String(), nil
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
