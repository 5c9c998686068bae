package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"StockKit/internal/bundle"
	"StockKit/internal/notifier"
)

func newCheckCmd(a *app) *cobra.Command {
	var yes, verify bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Inventory OpenBB packages and check version consistency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), a, yes, verify)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "reinstall without asking when the check fails")
	cmd.Flags().BoolVar(&verify, "verify", false, "verify the install without asking")
	return cmd
}

func newReconcileCmd(a *app) *cobra.Command {
	var yes, verify bool
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Uninstall every OpenBB package and install " + bundle.DefaultTarget.String(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReconcile(cmd.Context(), a, yes, verify)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&verify, "verify", false, "verify the install without asking")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that openbb imports and lists its data providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := a.doctor().Verify(cmd.Context())
			a.printf("%s", notifier.FormatVerification(v))
			if !v.Importable {
				return fmt.Errorf("openbb is not importable")
			}
			return nil
		},
	}
}

func runCheck(ctx context.Context, a *app, yes, verify bool) error {
	d := a.doctor()
	pv, err := d.CheckInterpreter(ctx)
	if err != nil {
		return err
	}
	a.printf("Python %s\n\n", pv)

	inv, verdict := d.Diagnose(ctx)
	a.printf("%s\n%s", notifier.FormatInventory(inv), notifier.FormatVerdict(verdict))
	if verdict.Compatible() {
		return maybeVerify(ctx, a, d, verify)
	}

	ok, err := confirm(fmt.Sprintf("OpenBB is %s. Reinstall %s?", verdict.Status, d.Reconciler.Target), yes)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Skipping reinstall.\n")
		return maybeVerify(ctx, a, d, verify)
	}
	return reconcile(ctx, a, d, verify)
}

func runReconcile(ctx context.Context, a *app, yes, verify bool) error {
	d := a.doctor()
	if _, err := d.CheckInterpreter(ctx); err != nil {
		return err
	}
	ok, err := confirm(fmt.Sprintf("This uninstalls every OpenBB package and installs %s. Continue?", d.Reconciler.Target), yes)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled.\n")
		return nil
	}
	return reconcile(ctx, a, d, verify)
}

func reconcile(ctx context.Context, a *app, d *bundle.Doctor, verify bool) error {
	out, err := d.Reconcile(ctx)
	a.printf("%s", notifier.FormatOutcome(out))
	if err != nil {
		return err
	}
	return maybeVerify(ctx, a, d, verify)
}

func maybeVerify(ctx context.Context, a *app, d *bundle.Doctor, verify bool) error {
	ok, err := confirm("Verify the installation now? Restarting Python first gives the most reliable result.", verify)
	if err != nil || !ok {
		return err
	}
	a.printf("%s", notifier.FormatVerification(d.Verify(ctx)))
	return nil
}
