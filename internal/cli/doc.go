// Package cli implements the command-line interface for curiousmails.
//
// The cli package provides the Cobra-based CLI with subcommands for each
// pipeline pass: scraping project listings, searching for winner contact
// details, offline categorization and enrichment, and exporting the winners
// table (text/TSV/JSON). It coordinates the fetch, crawl, dataset, and
// progress packages so interrupted runs resume from their saved state.
package cli
