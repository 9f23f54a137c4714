package ui

// AppendItemsMsg delivers items read from a source after startup
type AppendItemsMsg struct {
	Items []string
}

// SourceDoneMsg signals that the item source is exhausted
type SourceDoneMsg struct {
	Err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
