package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coopkern/internal/job"
	"coopkern/internal/sched"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		policy     string
		testcase   int
		tracePath  string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:          "coopkern",
		Short:        "cooperative single-processor scheduler demo kernel",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd, configPath, policy, testcase, tracePath, debug)
			k, log, err := bootKernel(cfg)
			if err != nil {
				return err
			}
			defer k.Close()
			defer log.Sync()

			k.SelfTest(cfg.TestCase)
			k.RunUntilIdle()
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().StringVarP(&policy, "policy", "p", "", "scheduling policy: fcfs, sjf or priority")
	cmd.Flags().IntVarP(&testcase, "testcase", "t", 0, "self-test scenario selector")
	cmd.PersistentFlags().StringVar(&tracePath, "trace", "", "write a CSV event trace to this path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable kernel debug logging")

	cmd.AddCommand(newDozeCmd(&configPath, &policy, &tracePath, &debug))
	return cmd
}

// newDozeCmd wires the timed sleep/wake path: two threads doze between
// work units while two others spin, all under the configured policy.
func newDozeCmd(configPath, policy, tracePath *string, debug *bool) *cobra.Command {
	var dozeTicks int64

	cmd := &cobra.Command{
		Use:          "doze",
		Short:        "demo of timed sleeps mixed with busy threads",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd.Root(), *configPath, *policy, 0, *tracePath, *debug)
			k, log, err := bootKernel(cfg)
			if err != nil {
				return err
			}
			defer k.Close()
			defer log.Sync()

			bodies := []sched.ThreadFunc{
				job.DozeLoop(k, dozeTicks),
				job.DozeLoop(k, dozeTicks),
				job.BurstLoop(k),
				job.BurstLoop(k),
			}
			for i, name := range []string{"A", "B", "C", "D"} {
				t := k.NewThread(name)
				t.SetPriority(i + 1)
				t.SetBurstTime(3)
				t.Fork(bodies[i])
			}
			k.CurrentThread().Yield()
			k.RunUntilIdle()
			return nil
		},
	}
	cmd.Flags().Int64Var(&dozeTicks, "ticks", 2, "ticks each dozing thread sleeps between work units")
	return cmd
}

func loadConfig(cmd *cobra.Command, path, policy string, testcase int, tracePath string, debug bool) sched.Config {
	cfg := sched.Load(path)
	if policy != "" {
		cfg.Policy = policy
	}
	if cmd.Flags().Changed("testcase") {
		cfg.TestCase = testcase
	}
	if tracePath != "" {
		cfg.TracePath = tracePath
	}
	if debug {
		cfg.Debug = true
	}
	return cfg
}

func bootKernel(cfg sched.Config) (*sched.Kernel, *zap.Logger, error) {
	log := zap.NewNop()
	if cfg.Debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
		log = l
	}
	k, err := sched.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return k, log, nil
}
