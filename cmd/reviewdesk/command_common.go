package main

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	"reviewdesk/internal/types"
)

const version = "dev"

func printSitemaps(output io.Writer, sitemaps []*types.Sitemap) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tLABEL\tCADENCE\tPAGES/REVIEW\tURL")
	for _, sitemap := range sitemaps {
		if sitemap == nil {
			continue
		}
		label := sitemap.ClientLabel
		if label == "" {
			label = "-"
		}
		cadence := string(sitemap.ReviewCadence)
		if cadence == "" {
			cadence = "-"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%s\n", sitemap.ID, label, cadence, sitemap.PagesPerReview, sitemap.URL)
	}
	_ = writer.Flush()
}

func printPages(output io.Writer, pages []*types.Page) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tREVIEW\tREVIEWED\tURL")
	for _, page := range pages {
		if page == nil {
			continue
		}
		review := "-"
		if page.NeedsReview {
			review = "needed"
		}
		reviewed := "-"
		if page.ReviewedAt != nil {
			reviewed = page.ReviewedAt.Format("2006-01-02")
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", page.ID, review, reviewed, page.URL)
	}
	_ = writer.Flush()
}

func printEmails(output io.Writer, emails []*types.EmailPreference) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tENABLED\tADDRESS")
	for _, email := range emails {
		if email == nil {
			continue
		}
		enabled := "no"
		if email.Enabled {
			enabled = "yes"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", email.ID, enabled, email.EmailAddress)
	}
	_ = writer.Flush()
}

func parseIDs(args []string) []types.ItemID {
	ids := make([]types.ItemID, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, types.ItemID(part))
			}
		}
	}
	return ids
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	}
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}

	return version
}
