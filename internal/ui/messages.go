package ui

import (
	"time"
)

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// activityPagerMsg contains the result of showing the activity log in the pager
type activityPagerMsg struct {
	content string
	err     error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
