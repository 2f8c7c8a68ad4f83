package procexec

import (
	"strings"
	"sync"
)

// Call records one invocation seen by Fake.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line renders the call as "name arg1 arg2".
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Fake is a scripted Runner for tests. Responses are keyed by the command
// line ("git worktree prune"); a key registered with Queue returns its
// results in order and then keeps returning the last one.
type Fake struct {
	mu        sync.Mutex
	responses map[string][]Result
	missing   map[string]bool
	// Default is returned for unscripted commands.
	Default Result
	Calls   []Call
}

func NewFake() *Fake {
	return &Fake{responses: map[string][]Result{}, missing: map[string]bool{}}
}

// On scripts a single result for the command line.
func (f *Fake) On(line string, res Result) *Fake {
	return f.Queue(line, res)
}

// Queue scripts successive results for the command line.
func (f *Fake) Queue(line string, results ...Result) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[line] = append(f.responses[line], results...)
	return f
}

// Missing makes every call to the tool fail with ToolNotFoundError.
func (f *Fake) Missing(tool string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing[tool] = true
	return f
}

func (f *Fake) Run(dir string, name string, args ...string) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	f.Calls = append(f.Calls, call)
	if f.missing[name] {
		return Result{}, &ToolNotFoundError{Tool: name}
	}
	queue, ok := f.responses[call.Line()]
	if !ok || len(queue) == 0 {
		return f.Default, nil
	}
	res := queue[0]
	if len(queue) > 1 {
		f.responses[call.Line()] = queue[1:]
	}
	return res, nil
}

// Lines returns every recorded call as a command line.
func (f *Fake) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.Line())
	}
	return out
}

// Count returns how many times the command line was run.
func (f *Fake) Count(line string) int {
	n := 0
	for _, l := range f.Lines() {
		if l == line {
			n++
		}
	}
	return n
}

// Fail is a shorthand for a failing Result.
func Fail(code int, stderr string) Result {
	return Result{ExitCode: code, Stderr: stderr}
}

// Out is a shorthand for a successful Result with stdout.
func Out(stdout string) Result {
	return Result{Stdout: stdout}
}
