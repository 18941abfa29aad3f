package outline2html

// Interceptor transforms Markdown before it reaches the transcoder.
// A nil Interceptor is an absent stage.
type Interceptor func(markdown string) string

// ChainInterceptors runs stages in order, skipping nil ones.
// Returns nil when no stage remains.
func ChainInterceptors(stages ...Interceptor) Interceptor {
	var active []Interceptor
	for _, s := range stages {
		if s != nil {
			active = append(active, s)
		}
	}

	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}

	return func(markdown string) string {
		for _, s := range active {
			markdown = s(markdown)
		}
		return markdown
	}
}
