//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitialQueryShowsFirstPage(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	api := tf.NewFakeAPI(7)
	_, err := tf.WriteConfig(api)
	require.NoError(t, err)

	require.NoError(t, tf.StartWithConfig("-q", "cats"))
	require.True(t, tf.Ready(), "Should render the first frame")

	require.True(t, tf.OutputContainsPlain("3 of 7 images", 5*time.Second), "Should show page 1 status")
	require.True(t, tf.SeePlain("photo 3"), "Should show the third tile")
	require.True(t, tf.SeePlain("Load more (m)"), "Should offer more results")
}

func TestLoadMoreUntilEnd(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	api := tf.NewFakeAPI(7)
	_, err := tf.WriteConfig(api)
	require.NoError(t, err)

	require.NoError(t, tf.StartWithConfig("-q", "cats"))
	require.True(t, tf.OutputContainsPlain("3 of 7 images", 5*time.Second))

	tf.LoadMore()
	require.True(t, tf.OutputContainsPlain("6 of 7 images", 5*time.Second), "Second page should be appended")

	tf.LoadMore()
	require.NoError(t, tf.WaitForE(func(s string) bool {
		return containsPlain(s, "7 of 7 images") && containsPlain(s, "end of results")
	}, 5*time.Second, "Last page should end the results"))

	// Nothing left to load: no further requests
	calls := api.Calls.Load()
	tf.LoadMore()
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, calls, api.Calls.Load())
}

func TestSearchPromptReplacesResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	api := tf.NewFakeAPI(5)
	_, err := tf.WriteConfig(api)
	require.NoError(t, err)

	require.NoError(t, tf.StartWithConfig())
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("Press / to search"))

	require.NoError(t, tf.Search("dogs"))
	require.True(t, tf.OutputContainsPlain("Query: dogs", 5*time.Second))
	require.True(t, tf.OutputContainsPlain("3 of 5 images", 5*time.Second))

	require.NoError(t, tf.Search(QueryEmpty))
	require.True(t, tf.OutputContainsPlain(`No images found for "zzqx".`, 5*time.Second))
}

func TestFailedSearchOffersRetry(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	api := tf.NewFakeAPI(5)
	_, err := tf.WriteConfig(api)
	require.NoError(t, err)

	require.NoError(t, tf.StartWithConfig("-q", QueryBroken))
	require.True(t, tf.OutputContainsPlain("Search failed", 5*time.Second), "Should report the failure")
	require.True(t, tf.SeePlain("r to retry"))

	// The app keeps running
	require.NoError(t, tf.Search("cats"))
	require.True(t, tf.OutputContainsPlain("3 of 5 images", 5*time.Second))
}

func TestModalOpensAndCloses(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	api := tf.NewFakeAPI(4)
	_, err := tf.WriteConfig(api)
	require.NoError(t, err)

	require.NoError(t, tf.StartWithConfig("-q", "cats"))
	require.True(t, tf.OutputContainsPlain("3 of 4 images", 5*time.Second))

	tf.Enter()
	require.True(t, tf.OutputContainsPlain("click outside to dismiss", 3*time.Second), "Modal should open")
	require.True(t, tf.OutputContainsPlain("by tester", 3*time.Second), "Modal should show the caption")

	// Keys other than close are swallowed while the modal is open
	tf.LoadMore()
	time.Sleep(300 * time.Millisecond)
	require.NotContains(t, tf.SnapshotPlain(), "4 of 4 images")

	tf.Esc()
	time.Sleep(300 * time.Millisecond)
	tf.LoadMore()
	require.True(t, tf.OutputContainsPlain("4 of 4 images", 5*time.Second), "Grid should take keys again after closing")
}

func containsPlain(s, text string) bool {
	return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
}
