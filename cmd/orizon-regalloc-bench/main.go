// Command orizon-regalloc-bench watches a directory of golden LIR function
// dumps and re-runs register allocation against each one whenever a file
// changes, printing the resulting throughput stats. It exists for
// interactive allocator development: edit a golden file, save, see the new
// split/spill/move counts without re-running the whole compiler.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/orizon-lang/orizon/internal/codegen"
	"github.com/orizon-lang/orizon/internal/lir"
)

func main() {
	var (
		dir     = flag.String("dir", "", "directory of *.lir.json golden function dumps to watch")
		oneShot = flag.Bool("run-once", false, "run every golden file once and exit instead of watching")
	)

	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "usage: orizon-regalloc-bench -dir <golden-dir> [-run-once]")
		os.Exit(2)
	}

	if *oneShot {
		runAll(*dir)
		return
	}

	watch(*dir)
}

func runAll(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("read %s: %v", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lir.json") {
			continue
		}

		runGolden(filepath.Join(dir, e.Name()))
	}
}

// watch mirrors internal/codegen/x64regalloc_adapter.go's layered-on-fsnotify
// design the same way the VFS watcher's loop does: a single goroutine
// draining Events/Errors, translated here into an immediate re-run instead
// of a forwarded channel event, since this tool has no consumer beyond its
// own stdout.
func watch(dir string) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("fsnotify: %v", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		log.Fatalf("watch %s: %v", dir, err)
	}

	fmt.Fprintf(os.Stderr, "watching %s for *.lir.json changes (ctrl-c to quit)\n", dir)
	runAll(dir)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}

			if !strings.HasSuffix(ev.Name, ".lir.json") {
				continue
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			runGolden(ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}

			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// goldenFunction is the on-disk JSON shape of one golden LIR function dump.
// It mirrors lir.Function/BasicBlock/Insn closely enough to round-trip the
// handful of instruction kinds the allocator cares about, without pulling a
// generic IR-serialization format into the picture for what is a
// development-only tool.
type goldenFunction struct {
	Name   string        `json:"name"`
	Blocks []goldenBlock `json:"blocks"`
}

type goldenBlock struct {
	Label string       `json:"label"`
	Insns []goldenInsn `json:"insns"`
}

type goldenInsn struct {
	Op         string   `json:"op"`
	Dst        string   `json:"dst,omitempty"`
	Src        string   `json:"src,omitempty"`
	LHS        string   `json:"lhs,omitempty"`
	RHS        string   `json:"rhs,omitempty"`
	Pred       string   `json:"pred,omitempty"`
	Addr       string   `json:"addr,omitempty"`
	Val        string   `json:"val,omitempty"`
	Target     string   `json:"target,omitempty"`
	Cond       string   `json:"cond,omitempty"`
	True       string   `json:"true,omitempty"`
	False      string   `json:"false,omitempty"`
	Callee     string   `json:"callee,omitempty"`
	Args       []string `json:"args,omitempty"`
	ArgClasses []string `json:"argClasses,omitempty"`
	RetClass   string   `json:"retClass,omitempty"`
}

func (g goldenInsn) toLIR() (lir.Insn, error) {
	switch g.Op {
	case "mov":
		return lir.Mov{Dst: g.Dst, Src: g.Src}, nil
	case "add":
		return lir.Add{Dst: g.Dst, LHS: g.LHS, RHS: g.RHS}, nil
	case "sub":
		return lir.Sub{Dst: g.Dst, LHS: g.LHS, RHS: g.RHS}, nil
	case "mul":
		return lir.Mul{Dst: g.Dst, LHS: g.LHS, RHS: g.RHS}, nil
	case "div":
		return lir.Div{Dst: g.Dst, LHS: g.LHS, RHS: g.RHS}, nil
	case "cmp":
		return lir.Cmp{Dst: g.Dst, Pred: g.Pred, LHS: g.LHS, RHS: g.RHS}, nil
	case "br":
		return lir.Br{Target: g.Target}, nil
	case "brcond":
		return lir.BrCond{Cond: g.Cond, True: g.True, False: g.False}, nil
	case "call":
		return lir.Call{Dst: g.Dst, Callee: g.Callee, Args: g.Args, ArgClasses: g.ArgClasses, RetClass: g.RetClass}, nil
	case "ret":
		return lir.Ret{Src: g.Src}, nil
	case "load":
		return lir.Load{Dst: g.Dst, Addr: g.Addr}, nil
	case "store":
		return lir.Store{Addr: g.Addr, Val: g.Val}, nil
	default:
		return nil, fmt.Errorf("unknown golden op %q", g.Op)
	}
}

func (g goldenFunction) toLIR() (*lir.Function, error) {
	fn := &lir.Function{Name: g.Name}

	for _, gb := range g.Blocks {
		bb := &lir.BasicBlock{Label: gb.Label}

		for _, gi := range gb.Insns {
			ins, err := gi.toLIR()
			if err != nil {
				return nil, fmt.Errorf("block %s: %w", gb.Label, err)
			}

			bb.Insns = append(bb.Insns, ins)
		}

		fn.Blocks = append(fn.Blocks, bb)
	}

	return fn, nil
}

func runGolden(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: read: %v\n", path, err)
		return
	}

	var gf goldenFunction
	if err := json.Unmarshal(raw, &gf); err != nil {
		fmt.Fprintf(os.Stderr, "%s: parse: %v\n", path, err)
		return
	}

	fn, err := gf.toLIR()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return
	}

	asm, err := codegen.EmitX64WithRegisterAllocation(&lir.Module{Name: gf.Name, Functions: []*lir.Function{fn}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: allocate: %v\n", path, err)
		return
	}

	fmt.Printf("=== %s ===\n", filepath.Base(path))

	for _, line := range strings.Split(asm, "\n") {
		if strings.Contains(line, "splits=") {
			fmt.Println(line)
		}
	}
}
