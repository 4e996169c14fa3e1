package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nibzard/kvconf/internal/scan"
	"github.com/nibzard/kvconf/internal/utils"
)

// findCommand prints the index of needle in line, or -1.
func (a *app) findCommand(args []string) error {
	fs := a.newSubcommand("find", "[options] <line> <needle>")
	backward := fs.Bool("backward", false, "Report the last match instead of the first")
	evenCommented := fs.Bool("even-commented", false, "Keep searching past comment delimiters")
	comment := fs.String("comment", a.cfg.CommentDelimiter, "Comment delimiter")
	start := fs.Int("start", 0, "First index to search")
	end := fs.Int("end", scan.ToEnd, "End of the search window (-1 for end of line)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 2, 2)
	if err != nil {
		return err
	}

	i := scan.Find(pos[0], pos[1], scan.FindOptions{
		Start:          *start,
		End:            *end,
		Backward:       *backward,
		Comment:        *comment,
		IgnoreComments: *evenCommented,
	})
	fmt.Fprintln(a.out, i)
	return nil
}

// identCommand prints the index of the first whole occurrence of name.
func (a *app) identCommand(args []string) error {
	fs := a.newSubcommand("ident", "[-start n] <line> <name>")
	start := fs.Int("start", 0, "First index to search")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 2, 2)
	if err != nil {
		return err
	}
	if !scan.IsIdentifier(pos[1], true) {
		a.logger.Warn("Not an identifier", "name", pos[1])
	}
	fmt.Fprintln(a.out, scan.FindIdentifier(pos[0], pos[1], *start))
	return nil
}

// chunkCommand prints the length of the balanced span at start.
func (a *app) chunkCommand(args []string) error {
	fs := a.newSubcommand("chunk", "[-backward] <line> <start>")
	backward := fs.Bool("backward", false, "Scan toward the beginning of the line")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 2, 2)
	if err != nil {
		return err
	}
	start, err := strconv.Atoi(pos[1])
	if err != nil {
		return fmt.Errorf("invalid start index %q: %w", pos[1], err)
	}
	fmt.Fprintln(a.out, scan.OperationChunkLen(pos[0], start, *backward))
	return nil
}

// splitCommand prints the parts of line between unquoted delimiters, one
// per output line.
func (a *app) splitCommand(args []string) error {
	fs := a.newSubcommand("split", "[-delim s] [-trim] <line>")
	delim := fs.String("delim", ",", "Delimiter")
	trim := fs.Bool("trim", false, "Trim whitespace around each part")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 1, 1)
	if err != nil {
		return err
	}
	if *delim == "" {
		return fmt.Errorf("delimiter must not be empty")
	}
	for _, part := range scan.ExplodeUnquoted(pos[0], *delim) {
		if *trim {
			part = strings.TrimSpace(part)
		}
		fmt.Fprintln(a.out, part)
	}
	return nil
}

// dupsCommand reports the first duplicated line of a file or stdin.
func (a *app) dupsCommand(args []string) error {
	fs := a.newSubcommand("dups", "[-ignore-numbers] [-keep-blank] [-ignore a,b] [file]")
	ignoreNumbers := fs.Bool("ignore-numbers", false, "Skip lines that are numbers")
	keepBlank := fs.Bool("keep-blank", false, "Treat blank lines as duplicates of each other")
	ignore := fs.String("ignore", "", "Comma-separated values that are never reported")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos, err := positional(fs, 0, 1)
	if err != nil {
		return err
	}

	var data []byte
	source := "stdin"
	if len(pos) == 1 {
		source = pos[0]
		data, err = os.ReadFile(source)
	} else {
		data, err = io.ReadAll(a.in)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}

	lines := splitLines(string(data))
	i := scan.FindDup(lines, scan.DupOptions{
		KeepBlank:     *keepBlank,
		Ignore:        utils.SplitAndTrim(*ignore, ","),
		IgnoreNumbers: *ignoreNumbers,
	})
	if i < 0 {
		fmt.Fprintf(a.out, "no duplicates in %s\n", utils.CountNoun(len(lines), "line", "lines"))
		return nil
	}
	fmt.Fprintf(a.out, "%s:%d: duplicate %q\n", source, i+1, strings.TrimSpace(lines[i]))
	return nil
}

// splitLines splits data on its own newline convention. A trailing newline
// does not start another line.
func splitLines(data string) []string {
	if data == "" {
		return nil
	}
	nl := scan.DetectNewline(data)
	if nl == "" {
		return []string{data}
	}
	return strings.Split(strings.TrimSuffix(data, nl), nl)
}
