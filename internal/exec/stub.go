package exec

import (
	"context"
	"strings"
)

// Call records one invocation made through a StubRunner.
type Call struct {
	Name string
	Args []string
	Opts RunOpts
}

// StubRunner is a scripted CommandRunner for tests. Results are matched by
// command name plus arguments; unmatched commands succeed with empty output.
type StubRunner struct {
	Calls   []Call
	Results map[string]CmdResult
	Errs    map[string]error
	Missing map[string]bool // names LookPath should report as absent
}

var _ CommandRunner = (*StubRunner)(nil)

// NewStubRunner creates an empty StubRunner.
func NewStubRunner() *StubRunner {
	return &StubRunner{
		Results: make(map[string]CmdResult),
		Errs:    make(map[string]error),
		Missing: make(map[string]bool),
	}
}

func key(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// Stub registers a result for the exact command line.
func (s *StubRunner) Stub(name string, args []string, res CmdResult) {
	s.Results[key(name, args)] = res
}

// StubErr registers a spawn failure for the exact command line.
func (s *StubRunner) StubErr(name string, args []string, err error) {
	s.Errs[key(name, args)] = err
}

// Run records the call and returns the scripted result, preferring an exact
// command-line match over a bare command-name match.
func (s *StubRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	s.Calls = append(s.Calls, Call{Name: name, Args: args, Opts: opts})

	if err := ctx.Err(); err != nil {
		return CmdResult{}, err
	}
	for _, k := range []string{key(name, args), name} {
		if err, ok := s.Errs[k]; ok {
			return CmdResult{}, err
		}
		if res, ok := s.Results[k]; ok {
			return res, nil
		}
	}
	return CmdResult{}, nil
}

// LookPath consults the Missing set; everything else is reported present.
func (s *StubRunner) LookPath(name string) bool {
	return !s.Missing[name]
}
