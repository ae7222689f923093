package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pixgrip/internal/domain"
	"pixgrip/internal/session"
)

var (
	printIndex = color.New(color.Faint)
	printTags  = color.New(color.FgCyan, color.Bold)
	printMeta  = color.New(color.FgYellow)
	printURL   = color.New(color.FgBlue, color.Underline)
	printInfo  = color.New(color.FgGreen)
)

// printResults runs the same submit/load-more flow as the UI and writes every image to w
func printResults(controller *session.Controller, query string, pages int, w io.Writer) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("-print needs a query (-q or trailing arguments)")
	}
	if pages < 1 {
		pages = 1
	}

	res := controller.Fetch(controller.SubmitQuery(query))
	controller.Settle(res)
	if res.Err != nil {
		return fmt.Errorf("searching %q: %w", query, res.Err)
	}

	for loaded := 1; loaded < pages; loaded++ {
		call, ok := controller.LoadMore()
		if !ok {
			break
		}
		res := controller.Fetch(call)
		controller.Settle(res)
		if res.Err != nil {
			// Keep what was already fetched
			fmt.Fprintf(w, "page %d failed: %v\n", call.Page, res.Err)
			break
		}
	}

	s := controller.Session()
	if len(s.Results) == 0 {
		fmt.Fprintf(w, "No images found for %q.\n", s.Query)
		return nil
	}
	for i, img := range s.Results {
		printImage(w, i+1, img)
	}

	more := "end of results"
	if s.HasMore {
		more = fmt.Sprintf("more with -pages %d", s.Page+1)
	}
	printInfo.Fprintf(w, "%d of %d images · page %d · %s\n", len(s.Results), s.TotalHits, s.Page, more)
	return nil
}

func printImage(w io.Writer, n int, img domain.Image) {
	tags := strings.Join(img.TagList(), ", ")
	if tags == "" {
		tags = fmt.Sprintf("image %d", img.ID)
	}
	printIndex.Fprintf(w, "%3d. ", n)
	printTags.Fprint(w, tags)
	printMeta.Fprintf(w, "  %dx%d", img.Width, img.Height)
	if img.User != "" {
		printMeta.Fprintf(w, " by %s", img.User)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "     ")
	printURL.Fprint(w, img.FullImageURL)
	fmt.Fprintln(w)
}
