package prepare

import "log/slog"

// Selected is the text chosen for one study.
type Selected struct {
	Study string
	Text  string
	// Sectioned holds the last text of each Priority section. It is nil
	// when an override decided the text.
	Sectioned map[string]*string
}

// Select picks the labeler input for a report. A span override wins, then a
// section override, then the last section of the first Priority name found.
func Select(stem, text string, sectioner Sectioner, ov Overrides) Selected {
	if span, ok := ov.Spans[stem]; ok {
		lo, hi := clamp(span[0], len(text)), clamp(span[1], len(text))
		if hi < lo {
			hi = lo
		}
		return Selected{Study: stem, Text: text[lo:hi]}
	}

	secs := sectioner.Section(text)

	if name, ok := ov.Sections[stem]; ok {
		t, _ := secs.Last(name)
		return Selected{Study: stem, Text: t}
	}

	sel := Selected{Study: stem, Sectioned: make(map[string]*string, len(Priority))}
	found := false
	for _, name := range Priority {
		t, ok := secs.Last(name)
		if !ok {
			continue
		}
		sel.Sectioned[name] = &t
		if !found {
			sel.Text = t
			found = true
		}
	}
	if !found {
		slog.Warn("no impression or findings", "study", stem)
	}
	return sel
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// StudyID drops the one-letter prefix of a report stem: s50414267 -> 50414267.
func StudyID(stem string) string {
	if len(stem) < 2 {
		return stem
	}
	return stem[1:]
}
