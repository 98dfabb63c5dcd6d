// file: cmd/check.go
// version: 1.0.0
// guid: c8f6a0d4-2a8b-48cf-9d08-02cc9915d9fc

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jdfalk/bookstreamer/internal/config"
	"github.com/spf13/cobra"
)

const defaultCheckTimeout = 15 * time.Second

func newCheckCmd(cfg *config.Config) *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check connectivity to the summary and cover providers",
		Long: `Send a minimal request to each configured upstream and report whether it
answered. Exits non-zero if any check fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")
			return runCheck(cmd.Context(), cmd.OutOrStdout(), *cfg, timeout)
		},
	}

	checkCmd.Flags().Duration("timeout", defaultCheckTimeout, "timeout per upstream check")
	return checkCmd
}

func runCheck(ctx context.Context, out io.Writer, cfg config.Config, timeout time.Duration) error {
	summarizer, err := newSummarizer(ctx, cfg)
	if err != nil {
		return err
	}
	covers, err := newCoverSource(cfg)
	if err != nil {
		return err
	}

	checks := []struct {
		kind   string
		client connectionTester
	}{
		{kind: "summary", client: summarizer},
		{kind: "cover", client: covers},
	}

	failed := 0
	for _, check := range checks {
		start := time.Now()
		err := testWithTimeout(ctx, check.client, timeout)
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%-8s %-28s FAILED (%s): %v\n", check.kind, check.client.Name(), elapsed, err)
			continue
		}
		fmt.Fprintf(out, "%-8s %-28s ok (%s)\n", check.kind, check.client.Name(), elapsed)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d upstream checks failed", failed, len(checks))
	}
	return nil
}

func testWithTimeout(ctx context.Context, client connectionTester, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return client.TestConnection(ctx)
}
