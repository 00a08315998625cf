// Package scripts runs the auxiliary figure-generating scripts from the
// configuration, one after another, against the shared output directory.
package scripts

import (
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"

	"parsec/internal/config"
)

// Params is the standardized positional contract every script receives:
// all snapshots, all catalogues, all input directories, all run names, the
// output directory, and the configuration directory — in that order, then
// the task's own extra arguments verbatim.
type Params struct {
	Snapshots  []string
	Catalogues []string
	InputDirs  []string
	RunNames   []string
	OutputDir  string
	ConfigDir  string
}

// Args renders the positional contract for one task.
func (p Params) Args(extra []string) []string {
	args := make([]string, 0, len(p.Snapshots)+len(p.Catalogues)+len(p.InputDirs)+len(p.RunNames)+2+len(extra))
	args = append(args, p.Snapshots...)
	args = append(args, p.Catalogues...)
	args = append(args, p.InputDirs...)
	args = append(args, p.RunNames...)
	args = append(args, p.OutputDir, p.ConfigDir)
	args = append(args, extra...)
	return args
}

// Result records one script invocation. ExitCode is -1 when the process
// could not be started (or its arguments could not be parsed); Output is
// the combined stdout+stderr.
type Result struct {
	Path     string
	Args     []string
	ExitCode int
	Output   string
	Err      string
	Duration time.Duration
}

// OK reports whether the script ran and exited zero.
func (r Result) OK() bool {
	return r.ExitCode == 0 && r.Err == ""
}

// Dispatch executes the tasks strictly in order, one process at a time:
// later scripts may assume earlier ones have finished writing to the
// output directory. A failing script never halts the sequence — its exit
// status and output are captured in the Result for the caller to judge.
func Dispatch(tasks []config.ScriptTask, cfg config.Config, p Params, log *slog.Logger) []Result {
	results := make([]Result, 0, len(tasks))
	for _, task := range tasks {
		results = append(results, runOne(task, cfg, p, log))
	}
	return results
}

func runOne(task config.ScriptTask, cfg config.Config, p Params, log *slog.Logger) Result {
	path := cfg.ScriptPath(task)
	res := Result{Path: path}

	extra, err := shellquote.Split(task.ExtraArgs)
	if err != nil {
		res.ExitCode = -1
		res.Err = fmt.Sprintf("parse extra arguments: %v", err)
		log.Warn("script arguments unparseable", "script", path, "error", err)
		return res
	}
	res.Args = p.Args(extra)

	log.Debug("dispatching script", "script", path, "args", len(res.Args))
	start := time.Now()
	cmd := exec.Command(path, res.Args...)
	out, err := cmd.CombinedOutput()
	res.Duration = time.Since(start)
	res.Output = string(out)

	switch e := err.(type) {
	case nil:
		res.ExitCode = 0
		log.Debug("script finished", "script", path, "duration", res.Duration)
	case *exec.ExitError:
		res.ExitCode = e.ExitCode()
		log.Warn("script exited non-zero", "script", path, "exit", res.ExitCode)
	default:
		res.ExitCode = -1
		res.Err = err.Error()
		log.Warn("script did not start", "script", path, "error", err)
	}
	return res
}
