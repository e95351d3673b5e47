package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the infoboard banner and version to w.
func PrintBanner(w io.Writer, version string) {
	o := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{` _        __       _                         _ `, "#38bdf8"},
		{`(_)_ __  / _| ___ | |__   ___   __ _ _ __ __| |`, "#60a5fa"},
		{`| | '_ \| |_ / _ \| '_ \ / _ \ / _' | '__/ _' |`, "#818cf8"},
		{`| | | | |  _| (_) | |_) | (_) | (_| | | | (_| |`, "#a78bfa"},
		{`|_|_| |_|_|  \___/|_.__/ \___/ \__,_|_|  \__,_|`, "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(w, o.String("  "+version).Faint())
	fmt.Fprintln(w)
}
