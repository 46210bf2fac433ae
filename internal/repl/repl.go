// Package repl implements the interactive shell over a store: command
// dispatch plus the meta-commands for watching, pausing and journaling.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/emberkv/ember/pkg/store"
)

// Repl drives one store from a line-oriented session. Store commands are
// dispatched through store.Do; lines starting with '.' are meta-commands
// handled by the shell itself.
type Repl struct {
	store  *store.Store
	out    io.Writer
	logger *slog.Logger

	watches   map[int]*watch
	nextWatch int
}

// watch is one live observer registered through the .watch meta-command.
type watch struct {
	pattern string
	handle  *store.Handle
}

// Option configures a Repl.
type Option func(*Repl)

// WithLogger sets a structured logger for session-level events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repl) {
		r.logger = l
	}
}

// New creates a shell over the given store, writing output to out.
func New(s *store.Store, out io.Writer, opts ...Option) *Repl {
	r := &Repl{
		store:   s,
		out:     out,
		watches: make(map[int]*watch),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines from in until EOF, the context ends, or the .quit
// meta-command.
func (r *Repl) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "ember> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Eval(ctx, scanner.Text()) {
			return nil
		}
	}
}

// Eval executes one input line, writing its result to the session output.
// Returns false when the session should end.
func (r *Repl) Eval(ctx context.Context, line string) bool {
	args, err := tokenize(line)
	if err != nil {
		r.printError(err)
		return true
	}
	if len(args) == 0 {
		return true
	}

	if strings.HasPrefix(args[0], ".") {
		return r.meta(args[0], args[1:])
	}

	name := args[0]
	cmdArgs := args[1:]

	// hmset accepts a JSON object as shorthand for the field list
	if strings.EqualFold(name, "hmset") && len(cmdArgs) == 2 && gjson.Valid(cmdArgs[1]) {
		if obj := gjson.Parse(cmdArgs[1]); obj.IsObject() {
			cmdArgs = hmsetArgsFromJSON(cmdArgs[0], obj)
		}
	}

	result, err := r.store.Do(ctx, name, cmdArgs...)
	if err != nil {
		r.printError(err)
		return true
	}
	fmt.Fprintln(r.out, formatResult(result))
	return true
}

// hmsetArgsFromJSON flattens a JSON object into hmset positional arguments.
// Fields land in sorted order so the command is deterministic.
func hmsetArgsFromJSON(key string, obj gjson.Result) []string {
	fields := map[string]string{}
	obj.ForEach(func(k, v gjson.Result) bool {
		fields[k.String()] = v.String()
		return true
	})

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	args := []string{key}
	for _, name := range names {
		args = append(args, name, fields[name])
	}
	return args
}

// meta dispatches a '.'-prefixed shell command. Returns false to end the
// session.
func (r *Repl) meta(name string, args []string) bool {
	switch name {
	case ".quit", ".exit":
		return false
	case ".help":
		r.printHelp()
	case ".watch":
		r.metaWatch(args)
	case ".unwatch":
		r.metaUnwatch(args)
	case ".watches":
		r.metaWatches()
	case ".pause":
		r.store.PauseObservers()
		fmt.Fprintln(r.out, "paused")
	case ".resume":
		r.store.ResumeObservers()
		fmt.Fprintln(r.out, "resumed")
	case ".save-originals":
		if err := r.store.SaveOriginals(); err != nil {
			r.printError(err)
			return true
		}
		fmt.Fprintln(r.out, "journal open")
	case ".retrieve-originals":
		originals, err := r.store.RetrieveOriginals()
		if err != nil {
			r.printError(err)
			return true
		}
		fmt.Fprint(r.out, formatOriginals(originals))
	case ".fetch":
		r.metaFetch(args)
	case ".count":
		r.metaCount(args)
	default:
		r.printError(fmt.Errorf("unknown meta-command %q (try .help)", name))
	}
	return true
}

func (r *Repl) metaWatch(args []string) {
	if len(args) != 1 {
		r.printError(fmt.Errorf("usage: .watch <pattern>"))
		return
	}
	pat := args[0]
	c, err := r.store.Find(pat)
	if err != nil {
		r.printError(err)
		return
	}

	r.nextWatch++
	id := r.nextWatch
	handle := c.Observe(store.ObserveCallbacks{
		Added: func(e store.Entry) {
			fmt.Fprintf(r.out, "[watch %d] added %s = %s\n", id, e.Key, formatValue(e.Value))
		},
		Changed: func(newE, _ store.Entry) {
			fmt.Fprintf(r.out, "[watch %d] changed %s = %s\n", id, newE.Key, formatValue(newE.Value))
		},
		Removed: func(e store.Entry) {
			fmt.Fprintf(r.out, "[watch %d] removed %s\n", id, e.Key)
		},
	})
	r.watches[id] = &watch{pattern: pat, handle: handle}
	if r.logger != nil {
		r.logger.Debug("watch registered", "id", id, "pattern", pat)
	}
	fmt.Fprintf(r.out, "watch %d on %s\n", id, pat)
}

func (r *Repl) metaUnwatch(args []string) {
	if len(args) != 1 {
		r.printError(fmt.Errorf("usage: .unwatch <id>"))
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		r.printError(fmt.Errorf("bad watch id %q", args[0]))
		return
	}
	w, ok := r.watches[id]
	if !ok {
		r.printError(fmt.Errorf("no watch %d", id))
		return
	}
	w.handle.Stop()
	delete(r.watches, id)
	fmt.Fprintf(r.out, "watch %d stopped\n", id)
}

func (r *Repl) metaWatches() {
	if len(r.watches) == 0 {
		fmt.Fprintln(r.out, "(no watches)")
		return
	}
	ids := make([]int, 0, len(r.watches))
	for id := range r.watches {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(r.out, "%d: %s\n", id, r.watches[id].pattern)
	}
}

func (r *Repl) metaFetch(args []string) {
	if len(args) != 1 {
		r.printError(fmt.Errorf("usage: .fetch <pattern>"))
		return
	}
	c, err := r.store.Find(args[0])
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprint(r.out, formatEntries(c.Fetch()))
}

func (r *Repl) metaCount(args []string) {
	if len(args) != 1 {
		r.printError(fmt.Errorf("usage: .count <pattern>"))
		return
	}
	c, err := r.store.Find(args[0])
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "(integer) %d\n", c.Count())
}

func (r *Repl) printError(err error) {
	fmt.Fprintf(r.out, "(error) %s\n", err)
}

func (r *Repl) printHelp() {
	fmt.Fprint(r.out, `store commands are entered directly: set k v, get k, lrange l 0 -1, ...

meta-commands:
  .watch <pattern>      print change events for keys matching the pattern
  .unwatch <id>         stop a watch
  .watches              list active watches
  .pause                pause observers; writes coalesce until resume
  .resume               resume observers, delivering net changes
  .save-originals       open the originals journal
  .retrieve-originals   close the journal and print captured originals
  .fetch <pattern>      print matching entries as JSON
  .count <pattern>      count matching keys
  .help                 this text
  .quit                 end the session
`)
}
