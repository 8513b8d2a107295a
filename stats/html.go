package stats

import (
	"html/template"
	"io"
	"sync"

	"github.com/ayoisaiah/focusflow/internal/static"
	"github.com/ayoisaiah/focusflow/internal/timeutil"
)

var (
	tplOnce sync.Once
	tpl     *template.Template
	tplErr  error
)

var funcs = template.FuncMap{
	"hoursAndMins": timeutil.FormatMinutes,
	"maxMinutes": func(days []Day) int {
		var most int
		for _, d := range days {
			most = max(most, d.FocusMinutes)
		}

		return most
	},
	"barWidth": func(mins, most int) int {
		if most == 0 {
			return 0
		}

		return mins * percent / most
	},
}

func dashboard() (*template.Template, error) {
	tplOnce.Do(func() {
		tpl, tplErr = static.Dashboard(funcs)
	})

	return tpl, tplErr
}

// RenderHTML writes the progress dashboard page for s.
func RenderHTML(w io.Writer, s *Summary) error {
	t, err := dashboard()
	if err != nil {
		return err
	}

	return t.Execute(w, s)
}
