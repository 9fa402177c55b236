// Package main is the demo driver for the gokernel process lifecycle
// and scheduling core: it boots a Kernel, drives its clock off a real
// time.Ticker, runs a fixed set of scenarios as initproc's workload,
// and reports the outcome as a table, and optionally CSV/JSON/HTML.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/arashi-labs/gokernel/pkg/kernel"
)

type opts struct {
	configPath string
	tickEvery  time.Duration
	timeout    time.Duration

	csvPath  string
	jsonPath string
	htmlPath string
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "gokernel",
		Short: "Process lifecycle and scheduling core demo",
		Long: `gokernel boots a small, self-contained process scheduler and runs a
fixed set of scenarios against it: idle dispatch, round-robin fairness,
sleep and wake, fork/wait/exit, reparenting on exit, and kill
interrupting a blocked semaphore wait.

Examples:
  gokernel
  gokernel --tick 5ms --csv out.csv --json out.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}

	root.Flags().StringVar(&o.configPath, "config", "", "YAML file overriding the default kernel tunables")
	root.Flags().DurationVar(&o.tickEvery, "tick", 0, "clock tick interval (0 = use the config's timer_interval)")
	root.Flags().DurationVar(&o.timeout, "timeout", 10*time.Second, "abort if the demo workload has not finished by then")
	root.Flags().StringVar(&o.csvPath, "csv", "", "write the scenario report to this CSV file")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write the scenario report to this JSON file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write the scenario report to this HTML file")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts) error {
	fmt.Print(_console)

	cfg, err := kernel.LoadConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.tickEvery > 0 {
		cfg.TimerInterval = o.tickEvery
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	pages := kernel.NewSlabPageAllocator(cfg.MaxProcess*cfg.KStackPages, cfg.KStackSize/cfg.KStackPages)
	registry := kernel.NewProgramRegistry()

	var results []scenarioResult
	registry.Register("workload", func(argv []string) (kernel.ProcFunc, error) {
		return func(k *kernel.Kernel, self *kernel.Process, arg any) int {
			results = runScenarios(k, self)
			return 0
		}, nil
	})

	k := kernel.New(cfg, pages, registry, logger)

	done := make(chan struct{})
	initMain := func(k *kernel.Kernel, self *kernel.Process, arg any) int {
		if _, err := k.KernelThread(func(k *kernel.Kernel, self *kernel.Process, arg any) int {
			return k.DoExecve("workload", nil)
		}, nil); err != nil {
			logger.Error("fork userMain", "err", err)
		}
		// The two-generation boot sequence: initproc just waits for
		// every child (userMain, plus anything reparented to it) to
		// exit, exactly as init_main's own `while (do_wait(0, NULL) ==
		// 0) schedule();` loop does.
		for self.Cptr != nil {
			if err := k.DoWait(0, nil); err != nil {
				break
			}
		}
		close(done)
		// initproc exiting is a fatal kernel condition, so it blocks
		// forever here rather than returning once quiescent.
		select {}
	}

	if err := k.ProcInit(initMain); err != nil {
		return fmt.Errorf("proc_init: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.TimerInterval)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ticker.C:
				k.ClockTick()
			case <-ctx.Done():
				return
			}
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("interrupted before the demo workload finished")
	case <-time.After(o.timeout):
		return fmt.Errorf("demo workload did not finish within %s", o.timeout)
	}

	k.AssertQuiescent()

	fmt.Printf("\nquiescent after %d clock ticks\n\n", k.Ticks())
	printTable(results)

	if o.csvPath != "" {
		if err := writeCSV(o.csvPath, results); err != nil {
			slog.Error("write csv", "err", err)
		}
	}
	if o.jsonPath != "" {
		if err := writeJSON(o.jsonPath, results); err != nil {
			slog.Error("write json", "err", err)
		}
	}
	if o.htmlPath != "" {
		if err := writeHTML(o.htmlPath, results, k.Ticks()); err != nil {
			slog.Error("write html", "err", err)
		}
	}

	return nil
}

func printTable(results []scenarioResult) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tTICKS\tDETAIL")
	fmt.Fprintln(tw, "--------\t-----\t------")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Name, r.Ticks, r.Detail)
	}
	tw.Flush()
}

func writeCSV(path string, results []scenarioResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"scenario", "ticks", "detail"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{r.Name, strconv.FormatUint(r.Ticks, 10), r.Detail}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, results []scenarioResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeHTML(path string, results []scenarioResult, ticks uint64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	data := struct {
		Results []scenarioResult
		Ticks   uint64
	}{results, ticks}
	if err := reportTpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err = f.Write(buf.Bytes())
	return err
}

var reportTpl = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>gokernel scenario report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:left}
</style>
<h1>gokernel scenario report</h1>
<p>Quiescent after {{.Ticks}} clock ticks.</p>
<table>
<thead><tr><th>scenario</th><th>ticks</th><th>detail</th></tr></thead>
<tbody>
{{range .Results}}
<tr><td>{{.Name}}</td><td>{{.Ticks}}</td><td>{{.Detail}}</td></tr>
{{end}}
</tbody>
</table>
</html>`))

const _console = `gokernel - process lifecycle and preemptive scheduling core

`
